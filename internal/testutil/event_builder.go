package testutil

import (
	"keybot/core"
)

// MessageBuilder provides a fluent helper for constructing message events in
// tests.
// Example:
//
//	ev := NewMessageBuilder().From("u1").Channel("ch1").Text("keyboard").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MessageBuilder struct {
	senderID  string
	channelID string
	text      string
}

// NewMessageBuilder creates a builder with default sender "user" and channel "ch".
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{senderID: "user", channelID: "ch"}
}

// From sets the sender id (chainable).
func (b *MessageBuilder) From(id string) *MessageBuilder { b.senderID = id; return b }

// Channel sets the channel id (chainable).
func (b *MessageBuilder) Channel(id string) *MessageBuilder { b.channelID = id; return b }

// Text sets the message text (chainable).
func (b *MessageBuilder) Text(t string) *MessageBuilder { b.text = t; return b }

// Build constructs the core.MessageEvent value.
func (b *MessageBuilder) Build() core.MessageEvent {
	return core.NewMessageEvent(b.senderID, b.channelID, b.text)
}

// ActionBuilder provides a fluent helper for constructing button actions in
// tests.
type ActionBuilder struct {
	from      string
	channelID string
	value     string
}

// NewActionBuilder creates a builder with default presser "user" and channel "ch".
func NewActionBuilder() *ActionBuilder {
	return &ActionBuilder{from: "user", channelID: "ch"}
}

// From sets the pressing user id (chainable).
func (b *ActionBuilder) From(id string) *ActionBuilder { b.from = id; return b }

// Channel sets the channel id (chainable).
func (b *ActionBuilder) Channel(id string) *ActionBuilder { b.channelID = id; return b }

// Value sets the pressed value (chainable).
func (b *ActionBuilder) Value(v string) *ActionBuilder { b.value = v; return b }

// Delete sets the delete control token (chainable).
func (b *ActionBuilder) Delete() *ActionBuilder { b.value = core.ActionDelete; return b }

// Enter sets the enter control token (chainable).
func (b *ActionBuilder) Enter() *ActionBuilder { b.value = core.ActionEnter; return b }

// Build constructs the core.ActionEvent value.
func (b *ActionBuilder) Build() core.ActionEvent {
	return core.NewActionEvent(b.from, b.channelID, b.value)
}
