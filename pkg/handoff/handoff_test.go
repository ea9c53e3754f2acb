package handoff

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	fragment   string
	content    string
	setCalls   int
	closeCalls int
}

func (p *fakePage) Fragment() string { return p.fragment }

func (p *fakePage) SetContent(content string) {
	p.content = content
	p.setCalls++
}

func (p *fakePage) Close() { p.closeCalls++ }

func TestExtractToken(t *testing.T) {
	data := []struct {
		name     string
		fragment string
		token    string
		ok       bool
	}{
		{"single pair", "token=abc123", "abc123", true},
		{"first pair wins", "token=abc123&other=xyz", "abc123", true},
		{"empty fragment", "", "", false},
		{"no equals sign", "garbage", "", false},
		{"empty value", "token=", "", true},
		{"value with equals", "token=a=b", "a=b", true},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			token, ok := ExtractToken(d.fragment)
			assert.Equal(t, d.token, token)
			assert.Equal(t, d.ok, ok)
		})
	}
}

func TestRunSuccess(t *testing.T) {
	requests := 0
	var body []byte
	var contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		contentType = r.Header.Get("Content-Type")
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = b
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	page := &fakePage{fragment: "token=abc123&other=xyz"}
	err := New(page, srv.URL).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, `{"token":"abc123"}`, string(body))
	assert.Equal(t, SuccessContent, page.content)
	assert.Equal(t, 1, page.closeCalls)
}

func TestRunEmptyFragmentStillSubmits(t *testing.T) {
	requests := 0
	var body []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = b
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	page := &fakePage{fragment: ""}
	err := New(page, srv.URL).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, `{"token":""}`, string(body))
}

func TestRunFailureIsSilent(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(status)
		}))

		page := &fakePage{fragment: "token=abc123"}
		err := New(page, srv.URL).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, requests, "no retry on failure")
		assert.Empty(t, page.content)
		assert.Zero(t, page.setCalls)
		assert.Zero(t, page.closeCalls)

		srv.Close()
	}
}

func TestRunTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	page := &fakePage{fragment: "token=abc123"}
	err := New(page, srv.URL).Run(context.Background())
	require.Error(t, err)

	assert.Zero(t, page.setCalls)
	assert.Zero(t, page.closeCalls)
}
