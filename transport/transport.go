// Package transport defines the consumed boundary to the chat platform. The
// platform protocol itself is out of scope; keybot only needs a stream of
// inbound events and, on the outbound side, whatever send surface the client
// happens to expose (negotiated by the delivery package).
package transport

import (
	"context"

	"keybot/core"
)

// Event is one inbound transport event: exactly one of Message or Action is
// set.
type Event struct {
	Message *core.MessageEvent
	Action  *core.ActionEvent
}

// Source produces inbound events. The channel is closed when the source shuts
// down.
type Source interface {
	Events() <-chan Event
}

// Handler consumes inbound events. Implemented by the bot façade.
type Handler interface {
	HandleMessage(ctx context.Context, ev core.MessageEvent) error
	HandleAction(ctx context.Context, ev core.ActionEvent) error
}
