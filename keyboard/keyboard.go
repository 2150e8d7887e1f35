// Package keyboard implements the per-user virtual-keyboard composition state
// machine. Each user owns one text buffer; button-press values mutate it and
// every mutation yields a re-rendered keyboard prompt. The machine itself is
// stateless — all state lives in the injected buffer store, whose per-user
// critical section keeps interleaved presses from racing.
package keyboard

import (
	"unicode/utf8"

	"keybot/core"
	"keybot/logging"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	rowWidth = 7
)

// DefaultMaxBufferLen caps composition buffers. Appends past the cap are
// dropped silently; the original behavior was unbounded.
const DefaultMaxBufferLen = 1024

// Submission carries the finalized buffer content produced when a user
// confirms composition with the enter control.
type Submission struct {
	UserID string
	Text   string
}

// Options configure a Machine.
type Options struct {
	// Store holds the per-user buffers. Defaults are supplied by the caller;
	// the machine requires a non-nil store.
	Store core.BufferStore
	// PromptPrefix precedes the echoed buffer in the rendered prompt text.
	PromptPrefix string
	// MaxBufferLen caps the buffer in runes, 0 disables the cap.
	MaxBufferLen int
	// Logger receives state transition diagnostics.
	Logger logging.Logger
}

// Machine owns the composition sessions of all active users, keyed by user
// id. Its methods are safe for concurrent use across users; same-user calls
// are serialized by the store.
type Machine struct {
	store        core.BufferStore
	promptPrefix string
	maxBufferLen int
	logger       logging.Logger
}

// New constructs a Machine with optional overrides.
func New(store core.BufferStore, optFns ...func(o *Options)) *Machine {
	opts := Options{
		Store:        store,
		PromptPrefix: "Nhập: ",
		MaxBufferLen: DefaultMaxBufferLen,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Machine{
		store:        opts.Store,
		promptPrefix: opts.PromptPrefix,
		maxBufferLen: opts.MaxBufferLen,
		logger:       opts.Logger,
	}
}

// Open creates or resets the user's session to an empty buffer and returns
// the rendered keyboard prompt. Calling it twice in a row simply re-clears.
func (m *Machine) Open(userID string) core.Payload {
	m.store.Put(userID, "")
	m.logger.Debug("keyboard opened", "user_id", userID)
	return m.Render("")
}

// Apply mutates the user's buffer according to the pressed value and returns
// the re-rendered prompt. On the enter control it additionally returns the
// submission carrying the pre-reset buffer verbatim. A session is created
// lazily (empty buffer) if the user never opened the keyboard.
func (m *Machine) Apply(userID, value string) (core.Payload, *Submission) {
	var sub *Submission
	var buffer string

	switch value {
	case core.ActionDelete:
		buffer = m.store.Update(userID, trimLastRune)
	case core.ActionEnter:
		buffer = m.store.Update(userID, func(cur string) string {
			sub = &Submission{UserID: userID, Text: cur}
			return ""
		})
	default:
		buffer = m.store.Update(userID, func(cur string) string {
			if m.maxBufferLen > 0 && utf8.RuneCountInString(cur)+utf8.RuneCountInString(value) > m.maxBufferLen {
				m.logger.Warn("buffer cap reached, append dropped", "user_id", userID)
				return cur
			}
			return cur + value
		})
	}

	return m.Render(buffer), sub
}

// Render builds the keyboard prompt for a buffer value: the fixed alphabet
// partitioned into rows plus a trailing control row. It is a pure function of
// the buffer and never mutates shared state.
func (m *Machine) Render(buffer string) core.Payload {
	rows := make([]core.Row, 0, len(alphabet)/rowWidth+2)
	for i := 0; i < len(alphabet); i += rowWidth {
		end := i + rowWidth
		if end > len(alphabet) {
			end = len(alphabet)
		}
		buttons := make([]core.Button, 0, rowWidth)
		for _, ch := range alphabet[i:end] {
			buttons = append(buttons, core.Button{Label: string(ch), Value: string(ch)})
		}
		rows = append(rows, core.Row{Buttons: buttons})
	}
	rows = append(rows, core.Row{Buttons: []core.Button{
		{Label: "Space", Value: core.ActionSpace},
		{Label: "Delete", Value: core.ActionDelete},
		{Label: "Enter", Value: core.ActionEnter},
	}})

	return core.Payload{
		Text: m.promptPrefix + buffer,
		Grid: &core.Grid{Rows: rows},
	}
}

// trimLastRune drops the final rune of s, a no-op on the empty string.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
