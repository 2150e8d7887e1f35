package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Control tokens carried in a button action's Value. Any other value is a
// literal composable string appended to the user's buffer.
const (
	// ActionDelete removes the last rune of the composition buffer.
	ActionDelete = "DELETE"
	// ActionEnter submits the composition buffer and resets it.
	ActionEnter = "ENTER"
	// ActionSpace appends a single space to the composition buffer.
	ActionSpace = " "
)

// MessageEvent is an inbound free-text channel message. Events missing a
// usable text body are treated as no-ops by the router, never as errors.
type MessageEvent struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	ChannelID string    `json:"channel_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessageEvent constructs a message event with a fresh id and UTC timestamp.
func NewMessageEvent(senderID, channelID, text string) MessageEvent {
	return MessageEvent{
		ID:        NewID(),
		SenderID:  senderID,
		ChannelID: channelID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// HasText reports whether the event carries non-whitespace text.
func (e MessageEvent) HasText() bool { return strings.TrimSpace(e.Text) != "" }

// ActionEvent is an inbound keyboard button press. Value fully determines the
// state transition: one of the control tokens above or a literal string.
type ActionEvent struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	ChannelID string    `json:"channel_id,omitempty"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActionEvent constructs an action event with a fresh id and UTC timestamp.
func NewActionEvent(from, channelID, value string) ActionEvent {
	return ActionEvent{
		ID:        NewID(),
		From:      from,
		ChannelID: channelID,
		Value:     value,
		Timestamp: time.Now().UTC(),
	}
}

// Destination returns the channel the reply should go to, falling back to the
// pressing user when the transport did not attach a channel id.
func (e ActionEvent) Destination() string {
	if e.ChannelID != "" {
		return e.ChannelID
	}
	return e.From
}

// NewID generates a new unique identifier for events.
func NewID() string { return uuid.NewString() }
