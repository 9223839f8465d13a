package entity

import (
	"regexp"
	"strings"
)

var (
	// Discord webhook endpoints, including the canary and ptb staging hosts
	// and the legacy discordapp.com domain.
	webhookPattern = regexp.MustCompile(`^https://(canary\.|ptb\.)?discord(app)?\.com/api/webhooks/\d+/[\w-]+$`)

	secureURLPattern = regexp.MustCompile(`^https://.+`)

	// トークン部分のみマスクする
	webhookTokenPattern = regexp.MustCompile(`(/api/webhooks/\d+/)[\w-]+`)
)

// IsValidEndpoint reports whether url is an accepted Discord webhook endpoint.
// It is a pure string match and performs no network access.
func IsValidEndpoint(url string) bool {
	return webhookPattern.MatchString(url)
}

// IsSecureURL reports whether url uses the https scheme and has something after it.
func IsSecureURL(url string) bool {
	return secureURLPattern.MatchString(url)
}

// MaskWebhookURL hides the token segment of a webhook URL so it can be logged.
// Strings that do not look like webhook URLs are returned unchanged.
func MaskWebhookURL(url string) string {
	if url == "" {
		return ""
	}
	return webhookTokenPattern.ReplaceAllString(url, "${1}****")
}

// ValidateWebhookURL returns a ValidationError suitable for showing to an administrator.
func ValidateWebhookURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return &ValidationError{Field: "webhook_url", Message: "webhook URL is required"}
	}
	if !IsValidEndpoint(url) {
		return &ValidationError{
			Field:   "webhook_url",
			Message: "invalid Discord webhook URL format, must be a valid Discord webhook URL",
		}
	}
	return nil
}

// ValidateAvatarURL accepts an empty avatar or one served over https.
func ValidateAvatarURL(url string) error {
	if url == "" || IsSecureURL(url) {
		return nil
	}
	return &ValidationError{Field: "avatar_url", Message: "avatar URL must start with https://"}
}
