// Package delivery implements the resilient outbound adapter. The underlying
// transport client's capability set is not statically known — different SDK
// builds expose different send entry points and accept different body shapes —
// so the adapter combines two explicit, testable mechanisms:
//
//   - capability negotiation: an ordered probe of narrow send interfaces,
//     each candidate surface tried at most once per logical call
//   - an ordered list of Strategy values, each encoding the payload under a
//     different call shape, folded to the first success
//
// A plain-text fallback with a degradation notice closes the chain; only its
// failure propagates to the caller.
package delivery

import (
	"context"
	"errors"

	"keybot/core"
)

// Body is the wire-shaped message body handed to the transport client.
type Body map[string]any

// SendFunc delivers one encoded body to a channel.
type SendFunc func(ctx context.Context, channelID string, body Body) error

// ChannelSender is the preferred transport surface: a direct send keyed by
// channel id.
type ChannelSender interface {
	SendToChannel(ctx context.Context, channelID string, body Body) error
}

// ChannelFetcher resolves a channel handle first and sends through it. Some
// client builds only expose this two-step surface.
type ChannelFetcher interface {
	FetchChannel(ctx context.Context, channelID string) (ChannelHandle, error)
}

// ChannelHandle is a resolved channel that can receive message bodies.
type ChannelHandle interface {
	Send(ctx context.Context, body Body) error
}

// DirectSender addresses the recipient rather than a channel. Last-resort
// surface kept for client builds predating channel objects.
type DirectSender interface {
	SendMessage(ctx context.Context, recipientID string, body Body) error
}

// ErrNoSendSurface is returned by Negotiate when the client exposes none of
// the known send surfaces.
var ErrNoSendSurface = errors.New("transport client exposes no known send surface")

// Negotiate probes the client for the known send surfaces in preference order
// and returns a SendFunc backed by the first one supported. This is pure
// capability negotiation, not a retry loop.
func Negotiate(client any) (SendFunc, error) {
	if cs, ok := client.(ChannelSender); ok {
		return cs.SendToChannel, nil
	}
	if cf, ok := client.(ChannelFetcher); ok {
		return func(ctx context.Context, channelID string, body Body) error {
			ch, err := cf.FetchChannel(ctx, channelID)
			if err != nil {
				return err
			}
			return ch.Send(ctx, body)
		}, nil
	}
	if ds, ok := client.(DirectSender); ok {
		return ds.SendMessage, nil
	}
	return nil, ErrNoSendSurface
}

// encodeGrid flattens a button grid into the transport's component list shape.
func encodeGrid(g *core.Grid) []any {
	if g == nil {
		return nil
	}
	components := make([]any, 0, len(g.Rows))
	for _, row := range g.Rows {
		items := make([]any, 0, len(row.Buttons))
		for _, b := range row.Buttons {
			items = append(items, map[string]any{
				"type":  "BUTTON",
				"title": b.Label,
				"action": map[string]any{
					"type":  "REPLY",
					"value": b.Value,
				},
			})
		}
		components = append(components, map[string]any{"type": "GRID", "items": items})
	}
	return components
}

// encodeAttachment maps the card descriptor to its wire form.
func encodeAttachment(a *core.Attachment) map[string]any {
	if a == nil {
		return nil
	}
	card := map[string]any{"title": a.Title, "url": a.URL}
	if a.Width > 0 {
		card["width"] = a.Width
	}
	if a.Height > 0 {
		card["height"] = a.Height
	}
	return card
}
