package core

// Payload is the abstract outbound message body handed to the delivery
// adapter. It is immutable once constructed; the same value may be re-encoded
// and re-attempted under different transport call shapes.
type Payload struct {
	Text       string      `json:"text"`
	Grid       *Grid       `json:"grid,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// NewTextPayload constructs a plain-text payload with no UI components.
func NewTextPayload(text string) Payload { return Payload{Text: text} }

// HasComponents reports whether the payload carries structured UI content
// beyond plain text.
func (p Payload) HasComponents() bool { return p.Grid != nil || p.Attachment != nil }

// Plain returns a copy of the payload stripped down to its text body.
func (p Payload) Plain() Payload { return Payload{Text: p.Text} }

// Grid is an ordered sequence of button rows rendered as an on-screen
// keyboard or action menu.
type Grid struct {
	Rows []Row `json:"rows"`
}

// Row is one ordered row of buttons.
type Row struct {
	Buttons []Button `json:"buttons"`
}

// Button is a single pressable element. Pressing it makes the transport emit
// an ActionEvent whose Value equals the button's Value.
type Button struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Attachment is a card descriptor (title, URL, sizing hint) optionally sent
// alongside the text body.
type Attachment struct {
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}
