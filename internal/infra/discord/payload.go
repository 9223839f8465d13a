// Package discord builds Discord webhook envelopes and posts them.
// It knows nothing about retries or logging; the delivery engine owns those.
package discord

import (
	"time"
	"unicode/utf8"

	"discord-logger/internal/domain/entity"
)

// WebhookPayload represents the JSON payload sent to a Discord webhook.
type WebhookPayload struct {
	Embeds    []Embed `json:"embeds"`
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
}

// Embed represents a Discord embed message.
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
	Footer      EmbedFooter  `json:"footer"`
}

// EmbedField is one name/value pair of an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter represents the footer of a Discord embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// ErrorResponse is the JSON body Discord returns with 4xx statuses.
type ErrorResponse struct {
	Message    string  `json:"message"`
	Code       int     `json:"code"`
	RetryAfter float64 `json:"retry_after"`
}

const (
	// Discord limits
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldNameLength   = 256
	maxFieldValueLength  = 1024
	maxFields            = 25
	maxFooterLength      = 2048
	truncationSuffix     = "..."

	// 空の値は Discord が拒否する
	emptyFieldValue = "-"
)

// BuildPayload wraps msg in a single-embed envelope stamped with now and the
// site footer. Oversized parts are cut to Discord's limits.
func BuildPayload(msg entity.Message, cfg entity.DeliveryConfig, site entity.Site, now time.Time) WebhookPayload {
	src := msg.Fields()
	if len(src) > maxFields {
		src = src[:maxFields]
	}
	fields := make([]EmbedField, 0, len(src))
	for _, f := range src {
		value := f.Value
		if value == "" {
			value = emptyFieldValue
		}
		fields = append(fields, EmbedField{
			Name:   truncate(f.Name, maxFieldNameLength),
			Value:  truncate(value, maxFieldValueLength),
			Inline: f.Inline,
		})
	}

	embed := Embed{
		Title:       truncate(msg.Title, maxTitleLength),
		Description: truncate(msg.Description, maxDescriptionLength),
		Color:       msg.Color,
		Fields:      fields,
		Timestamp:   now.UTC().Format(time.RFC3339),
		Footer: EmbedFooter{
			Text: truncate(site.Footer(), maxFooterLength),
		},
	}

	cfg = cfg.WithDefaults()
	return WebhookPayload{
		Embeds:    []Embed{embed},
		Username:  cfg.BotName,
		AvatarURL: cfg.AvatarURL,
	}
}

// truncate cuts s to at most max bytes on a rune boundary, appending the
// suffix when something was removed.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - len(truncationSuffix)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationSuffix
}
