// Package chat implements the Twitch IRC-over-websocket transport and the
// controller that supervises it.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/mwronski/ttvchat/pkg/logger"
	"github.com/mwronski/ttvchat/pkg/rand"
)

const (
	// ServerURL is the Twitch IRC websocket endpoint.
	ServerURL = "ws://irc-ws.chat.twitch.tv:80"

	// anonymousOAuth is the placeholder credential sent when no token is
	// configured. Twitch accepts any PASS for read-only justinfan nicks.
	anonymousOAuth      = "blah"
	anonymousNickPrefix = "justinfan"

	// dedupeMarker is appended to a message identical to the previous one so
	// the server does not drop it as a duplicate. The character is an
	// invisible tag character, rendered as nothing by chat clients.
	dedupeMarker = " \U000E0000"
)

// ErrNoChannel is returned when a connection is attempted without a channel.
var ErrNoChannel = errors.New("no channel configured")

// ConnectConfig holds the parameters for a single connection.
type ConnectConfig struct {
	// Channel is the channel to join. Required.
	Channel string
	// OAuth is the access token, without the "oauth:" prefix. When empty an
	// anonymous read-only login is used.
	OAuth string
	// Nick is the IRC nick. When empty a random justinfan nick is used.
	Nick string
	// URL overrides the chat server endpoint. Defaults to ServerURL.
	URL string
}

// Connect dials the chat server, authenticates, joins the configured
// channel and pumps messages until ctx is done or the connection drops.
// Incoming PRIVMSGs are delivered on incoming; strings received from
// outgoing are sent to the channel as PRIVMSGs.
func Connect(ctx context.Context, cfg ConnectConfig, incoming chan<- Message, outgoing <-chan string) error {
	if cfg.Channel == "" {
		return ErrNoChannel
	}

	oauth := cfg.OAuth
	if oauth == "" {
		oauth = anonymousOAuth
	}
	nick := cfg.Nick
	if nick == "" {
		nick = anonymousNickPrefix + rand.Digits(6)
	}
	serverURL := cfg.URL
	if serverURL == "" {
		serverURL = ServerURL
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to chat server: %w", err)
	}
	defer conn.Close()

	handshake := []string{
		"PASS oauth:" + oauth,
		"NICK " + nick,
		"CAP REQ :twitch.tv/tags",
		"JOIN #" + cfg.Channel,
	}
	for _, line := range handshake {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return fmt.Errorf("failed to send %q: %w", strings.Fields(line)[0], err)
		}
	}

	logger.Info(fmt.Sprintf("Joined channel #%s", cfg.Channel))

	frames := make(chan string)
	readErrCh := make(chan error, 1)
	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				readErrCh <- err
				return
			}
			select {
			case frames <- string(payload):
			case <-ctx.Done():
				return
			}
		}
	}()

	tagsAllowed := false
	lastSent := ""
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErrCh:
			return fmt.Errorf("connection closed: %w", err)
		case frame := <-frames:
			if err := handleFrame(ctx, conn, frame, incoming, &tagsAllowed); err != nil {
				return err
			}
		case text := <-outgoing:
			if text == "" {
				text = lastSent
			}
			if text == lastSent {
				if strings.HasSuffix(text, dedupeMarker) {
					text = strings.TrimSuffix(text, dedupeMarker)
				} else {
					text += dedupeMarker
				}
			}
			lastSent = text

			line := fmt.Sprintf("PRIVMSG #%s :%s", cfg.Channel, text)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}
		}
	}
}

// handleFrame dispatches the lines of a single websocket frame. A frame may
// carry several IRC lines.
func handleFrame(ctx context.Context, conn *websocket.Conn, frame string, incoming chan<- Message, tagsAllowed *bool) error {
	for _, line := range strings.Split(strings.TrimRight(frame, "\r\n"), "\r\n") {
		switch {
		case strings.HasPrefix(line, "PING"):
			pong := "PONG" + strings.TrimPrefix(line, "PING")
			if err := conn.WriteMessage(websocket.TextMessage, []byte(pong)); err != nil {
				return fmt.Errorf("failed to send pong: %w", err)
			}
		case strings.Contains(line, "ACK :twitch.tv/tags"):
			*tagsAllowed = true
		case strings.Contains(line, "PRIVMSG"):
			var msg Message
			var ok bool
			if *tagsAllowed {
				msg, ok = ParseTaggedMessage(line)
			} else {
				msg, ok = ParseMessage(line)
			}
			if !ok {
				continue
			}
			select {
			case incoming <- msg:
			case <-ctx.Done():
				return ctx.Err()
			}
		default:
			logger.Debug(line)
		}
	}

	return nil
}
