// Package handoff implements the fragment-token handoff: the one-shot flow
// that reads an OAuth access token out of a page location's fragment and
// posts it to the local capture endpoint. The browser rendition of the same
// flow lives in [Script]; this package is the testable form of the contract.
package handoff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	// TokenPath is the capture endpoint path the token is posted to.
	TokenPath = "/token"
	// SuccessContent is the content shown in the session view after the
	// token has been accepted.
	SuccessContent = "yippee!"
)

// Page is the session view the handoff runs in: something with an
// addressable location fragment, a mutable content surface, and a way to
// terminate itself.
type Page interface {
	// Fragment returns the location's fragment identifier, without the
	// leading '#'. An absent fragment is the empty string.
	Fragment() string
	// SetContent replaces the entire visible content of the view.
	SetContent(content string)
	// Close terminates the view.
	Close()
}

// Handoff performs the extraction-and-submit flow against a capture server.
type Handoff struct {
	page     Page
	endpoint string
	client   *http.Client
}

// New creates a Handoff posting to the capture server at endpoint.
func New(page Page, endpoint string, opts ...Opt) *Handoff {
	h := &Handoff{
		page:     page,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Opt represents an option that can be passed to New.
type Opt func(*Handoff)

// WithHTTPClient sets the HTTP client used for the token submission.
func WithHTTPClient(client *http.Client) Opt {
	return func(h *Handoff) {
		h.client = client
	}
}

// ExtractToken parses a location fragment as an '&'-delimited list of
// key=value pairs and returns the first pair's value. The boolean reports
// whether the fragment actually carried a value; on a fragment with no '='
// the token is empty and ok is false, and callers submit the empty value
// rather than fail.
func ExtractToken(fragment string) (token string, ok bool) {
	pair, _, _ := strings.Cut(fragment, "&")
	_, token, ok = strings.Cut(pair, "=")
	return token, ok
}

type tokenBody struct {
	Token string `json:"token"`
}

// Run performs the handoff exactly once: extract the token from the page's
// fragment, post it as JSON to the capture endpoint and, on a 2xx response,
// replace the page content with [SuccessContent] and close the view.
//
// A non-2xx response is a silent no-op: the page is left untouched and nil
// is returned. There is no retry in either case. Only a transport failure
// is reported, so the caller can observe it; the browser rendition lets the
// same failure vanish with the promise chain.
func (h *Handoff) Run(ctx context.Context) error {
	token, _ := ExtractToken(h.page.Fragment())

	body, err := json.Marshal(tokenBody{Token: token})
	if err != nil {
		return fmt.Errorf("failed to marshal token body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+TokenPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit token: %w", err)
	}
	// The response body is never read.
	resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil
	}

	h.page.SetContent(SuccessContent)
	h.page.Close()

	return nil
}
