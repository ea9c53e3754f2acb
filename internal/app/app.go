// Package app wires the client together: persistent state, the token
// capture flow and the chat session bridged to the terminal.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mwronski/ttvchat/internal/auth"
	"github.com/mwronski/ttvchat/internal/chat"
	"github.com/mwronski/ttvchat/internal/config"
	"github.com/mwronski/ttvchat/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ErrNoChannel is returned when no channel is configured and none was given
// on the command line.
var ErrNoChannel = errors.New("no channel configured: pass one as the first argument")

func Run() error {
	statePath, err := config.DefaultPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(statePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load state: %w", err)
		}
		cfg = config.Default()
	}

	if err := cfg.SetInitialChannel(os.Args); err != nil {
		return err
	}
	if cfg.Channel == "" {
		return ErrNoChannel
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.OAuth == "" {
		token, err := auth.Capture(ctx)
		if err != nil {
			return fmt.Errorf("failed to capture auth token: %w", err)
		}
		cfg.OAuth = token

		if err := cfg.Save(statePath); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		logger.Info("Auth token has been set")
	}

	controller := chat.NewController()
	incoming := controller.TakeReceiver()

	controller.Join(chat.ConnectConfig{
		Channel: cfg.Channel,
		OAuth:   cfg.OAuth,
		Nick:    cfg.Nick,
	})
	defer controller.Leave()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return printMessages(ctx, incoming)
	})
	g.Go(func() error {
		return readAndSendMessages(controller)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func printMessages(ctx context.Context, incoming <-chan chat.Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-incoming:
			fmt.Printf("[%s]: %s\n", msg.Author, msg.Text)
		}
	}
}

func readAndSendMessages(controller *chat.Controller) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		controller.Send(strings.Trim(line, "\r\n"))
	}
}
