package entity

// Embed colors used by the event templates (24-bit RGB).
const (
	ColorGreen  = 3066993
	ColorBlue   = 3447003
	ColorPurple = 10181046
	ColorRed    = 15158332
	ColorOrange = 15105570
)

// Field is one labeled value of a Message. Inline fields are rendered side by side.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Message is the structured chat message produced for a single event.
// It is built fresh per event and handed to exactly one Deliver call.
type Message struct {
	Title       string
	Description string
	Color       int
	fields      []Field
}

// NewMessage builds a Message. The field slice is copied so later changes
// by the caller do not leak into the message.
func NewMessage(title, description string, color int, fields ...Field) Message {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Message{
		Title:       title,
		Description: description,
		Color:       color,
		fields:      cp,
	}
}

// Fields returns a copy of the ordered field list.
func (m Message) Fields() []Field {
	cp := make([]Field, len(m.fields))
	copy(cp, m.fields)
	return cp
}

// FieldCount returns the number of fields without copying them.
func (m Message) FieldCount() int {
	return len(m.fields)
}
