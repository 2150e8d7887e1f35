// Package console implements a local development transport: stdin lines
// become message events, "/press <value>" lines become button actions, and
// outbound bodies are printed to stdout. It intentionally exposes only the
// ChannelSender surface so the delivery chain negotiates exactly as it would
// against a real client build.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"keybot/core"
	"keybot/delivery"
	"keybot/transport"
)

const pressPrefix = "/press "

// Options configure the console transport.
type Options struct {
	In  io.Reader
	Out io.Writer
	// UserID/ChannelID are stamped onto every inbound event.
	UserID    string
	ChannelID string
}

// Client is a loopback transport for one local user.
type Client struct {
	in        io.Reader
	out       io.Writer
	userID    string
	channelID string
	events    chan transport.Event
}

// New constructs a console transport with optional overrides.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{In: os.Stdin, Out: os.Stdout, UserID: "console", ChannelID: "console"}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		in:        opts.In,
		out:       opts.Out,
		userID:    opts.UserID,
		channelID: opts.ChannelID,
		events:    make(chan transport.Event, 16),
	}
}

// Events returns the inbound event stream.
func (c *Client) Events() <-chan transport.Event { return c.events }

// Run reads input lines until EOF or context cancellation, emitting events.
// It closes the event channel on return.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ev := c.parse(line)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c.events <- ev:
		}
	}
	return scanner.Err()
}

// parse maps one input line to an inbound event.
func (c *Client) parse(line string) transport.Event {
	if value, ok := strings.CutPrefix(line, pressPrefix); ok {
		ev := core.NewActionEvent(c.userID, c.channelID, value)
		return transport.Event{Action: &ev}
	}
	ev := core.NewMessageEvent(c.userID, c.channelID, line)
	return transport.Event{Message: &ev}
}

// SendToChannel implements delivery.ChannelSender by pretty-printing the body.
func (c *Client) SendToChannel(_ context.Context, channelID string, body delivery.Body) error {
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	_, err = fmt.Fprintf(c.out, "[%s] %s\n", channelID, data)
	return err
}

// Interface compliance (compile-time assertions)
var (
	_ transport.Source       = (*Client)(nil)
	_ delivery.ChannelSender = (*Client)(nil)
)
