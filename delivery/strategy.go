package delivery

import (
	"context"

	"keybot/core"
)

// Strategy is one candidate call shape for pushing a payload to a channel. A
// strategy fails iff its Send returns an error; the adapter never retries the
// same strategy within a delivery.
type Strategy struct {
	Name string
	Send func(ctx context.Context, channelID string, payload core.Payload) error
}

// DefaultStrategies declares the fixed, ordered list of structured call
// shapes tried by the adapter. Older transport builds read the text body from
// "t", newer ones from "content"; structured components ride either under top
// level keys or inside a nested MESSAGE wrapper. The adapter itself appends
// the plain-text fallback, so it is not part of this list.
func DefaultStrategies(send SendFunc) []Strategy {
	return []Strategy{
		{Name: "flat-t", Send: func(ctx context.Context, channelID string, p core.Payload) error {
			return send(ctx, channelID, encodeFlat(p, "t"))
		}},
		{Name: "wrapped-t", Send: func(ctx context.Context, channelID string, p core.Payload) error {
			return send(ctx, channelID, encodeWrapped(p, "t"))
		}},
		{Name: "flat-content", Send: func(ctx context.Context, channelID string, p core.Payload) error {
			return send(ctx, channelID, encodeFlat(p, "content"))
		}},
		{Name: "wrapped-content", Send: func(ctx context.Context, channelID string, p core.Payload) error {
			return send(ctx, channelID, encodeWrapped(p, "content"))
		}},
	}
}

// PlainStrategy builds the terminal fallback: text only, no structured parts.
func PlainStrategy(send SendFunc) Strategy {
	return Strategy{Name: "plain-text", Send: func(ctx context.Context, channelID string, p core.Payload) error {
		return send(ctx, channelID, Body{"t": p.Text})
	}}
}

// encodeFlat places text and structured parts under top level keys, with the
// text key name depending on the client generation.
func encodeFlat(p core.Payload, textKey string) Body {
	body := Body{textKey: p.Text}
	if c := encodeGrid(p.Grid); c != nil {
		body["components"] = c
	}
	if a := encodeAttachment(p.Attachment); a != nil {
		body["embed"] = []any{a}
	}
	return body
}

// encodeWrapped nests the flat encoding inside a typed MESSAGE envelope.
func encodeWrapped(p core.Payload, textKey string) Body {
	return Body{
		"type":    "MESSAGE",
		"payload": map[string]any(encodeFlat(p, textKey)),
	}
}
