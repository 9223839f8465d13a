// Package format turns resolved event payloads into chat messages.
//
// Every event type has exactly one static template. Formatting is pure: the
// same type and payload always produce the same message, and time-valued
// fields come from the payload, never from the wall clock.
package format

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"discord-logger/internal/domain/entity"
)

// TimeLayout is the display layout of time-valued fields.
const TimeLayout = "2006-01-02 15:04:05"

const (
	commentExcerptBytes = 100
	errorExcerptBytes   = 200
	notAvailable        = "N/A"
)

type render func(entity.Payload) (string, []entity.Field, error)

type template struct {
	title  string
	color  int
	render render
}

// typed adapts a payload-specific builder to the generic template signature.
func typed[P entity.Payload](build func(P) (string, []entity.Field)) render {
	return func(p entity.Payload) (string, []entity.Field, error) {
		v, ok := p.(P)
		if !ok {
			return "", nil, fmt.Errorf("%w: got %T", entity.ErrPayloadMismatch, p)
		}
		desc, fields := build(v)
		return desc, fields, nil
	}
}

// Format renders the message for eventType. It fails with
// entity.ErrUnknownEventType for tags without a template and with
// entity.ErrPayloadMismatch when payload is of the wrong kind.
func Format(eventType entity.EventType, payload entity.Payload) (entity.Message, error) {
	tpl, ok := templates[eventType]
	if !ok {
		return entity.Message{}, fmt.Errorf("%w: %q", entity.ErrUnknownEventType, eventType)
	}
	desc, fields, err := tpl.render(payload)
	if err != nil {
		return entity.Message{}, fmt.Errorf("format %s: %w", eventType, err)
	}
	return entity.NewMessage(tpl.title, desc, tpl.color, fields...), nil
}

// Supports reports whether eventType has a template.
func Supports(eventType entity.EventType) bool {
	_, ok := templates[eventType]
	return ok
}

// Title returns the fixed title of eventType, or "" when unsupported.
func Title(eventType entity.EventType) string {
	return templates[eventType].title
}

func inline(name, value string) entity.Field {
	return entity.Field{Name: name, Value: value, Inline: true}
}

func block(name, value string) entity.Field {
	return entity.Field{Name: name, Value: value}
}

/* ──── 値の整形 ──── */

func orderID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// excerpt cuts s to at most max bytes without splitting a character.
func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func when(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func stockQuantity(q *int) string {
	if q == nil || *q == 0 {
		return notAvailable
	}
	return strconv.Itoa(*q)
}

func discount(c entity.CouponPayload) string {
	if c.DiscountType == "percent" {
		return c.Amount + "%"
	}
	return c.Amount
}
