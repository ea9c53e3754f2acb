package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mwronski/ttvchat/pkg/logger"
)

const (
	queueSize      = 128
	reconnectDelay = time.Second
)

// Controller owns a supervised chat connection. It fans incoming messages
// into a single receiver channel across reconnects and forwards sent text to
// whichever connection is currently alive.
type Controller struct {
	incoming chan Message

	mu            sync.Mutex
	receiverTaken bool
	outgoing      chan string
	cancel        context.CancelFunc
}

// NewController creates a new Controller.
func NewController() *Controller {
	return &Controller{
		incoming: make(chan Message, queueSize),
	}
}

// TakeReceiver returns the channel incoming messages are delivered on.
// Only the first call returns a non-nil channel.
func (c *Controller) TakeReceiver() <-chan Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.receiverTaken {
		return nil
	}
	c.receiverTaken = true

	return c.incoming
}

// Send forwards text to the active connection. It is a no-op when no
// connection is alive, and drops the message when the outgoing queue is
// full.
func (c *Controller) Send(text string) {
	c.mu.Lock()
	outgoing := c.outgoing
	c.mu.Unlock()

	if outgoing == nil {
		return
	}

	select {
	case outgoing <- text:
	default:
	}
}

// Join starts a supervised connection with the provided config, replacing
// any previous connection.
func (c *Controller) Join(cfg ConnectConfig) {
	c.Leave()
	c.supervise(cfg)
}

// Leave stops the active connection, if any.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// supervise runs the connect loop, reconnecting whenever the connection
// drops, until Leave cancels it.
func (c *Controller) supervise(cfg ConnectConfig) {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		for {
			outgoing := make(chan string, queueSize)
			c.mu.Lock()
			c.outgoing = outgoing
			c.mu.Unlock()

			err := Connect(ctx, cfg, c.incoming, outgoing)
			if errors.Is(err, context.Canceled) {
				return
			}
			if err != nil {
				logger.Error(fmt.Sprintf("Connection to #%s lost: %s", cfg.Channel, err))
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
		}
	}()
}
