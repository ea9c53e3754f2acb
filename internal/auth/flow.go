package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mwronski/ttvchat/pkg/logger"
	"github.com/pkg/browser"
)

const (
	twitchAuthorizeURL = "https://id.twitch.tv/oauth2/authorize"
	clientID           = "m0y30jcckwn2a7m7hh0djrg47wvbuk"
	scopes             = "chat:read chat:edit"
	redirectURI        = "http://localhost:4537"

	shutdownTimeout = 5 * time.Second
)

// AuthorizeURL returns the Twitch implicit-flow authorize URL the user has
// to visit. The granted token comes back in the redirect's location
// fragment, which the served handoff script relays to this server.
func AuthorizeURL() string {
	query := url.Values{}
	query.Set("response_type", "token")
	query.Set("client_id", clientID)
	query.Set("scope", scopes)
	query.Set("redirect_uri", redirectURI)

	return twitchAuthorizeURL + "?" + query.Encode()
}

// Capture runs the token capture flow: start the local capture server, send
// the user's browser to the authorize URL and block until the handoff
// delivers the token or ctx is done. The server is shut down before
// returning.
func Capture(ctx context.Context, opts ...ServerOption) (string, error) {
	server := NewServer(opts...)

	serveErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()

	authorizeURL := AuthorizeURL()
	logger.Info(fmt.Sprintf("Complete authentication at %s", authorizeURL))
	if err := browser.OpenURL(authorizeURL); err != nil {
		logger.Info("Failed to open browser automatically, please navigate manually")
	}

	logger.Info("Waiting for token...")

	select {
	case token := <-server.Token():
		shutdown(server)
		return token, nil
	case err := <-serveErrCh:
		return "", fmt.Errorf("failed to run capture server: %w", err)
	case <-ctx.Done():
		shutdown(server)
		return "", ctx.Err()
	}
}

func shutdown(server *Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(fmt.Sprintf("Failed to shut down capture server: %s", err))
	}
}
