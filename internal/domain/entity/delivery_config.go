package entity

// DefaultBotName is used when no bot display name has been saved.
const DefaultBotName = "WordPress Logger"

// DeliveryConfig is the per-call view of the persisted webhook settings.
// It is loaded fresh for every delivery and never mutated by the engine.
type DeliveryConfig struct {
	// WebhookURL is the Discord webhook endpoint. Empty means delivery is disabled.
	WebhookURL string

	// BotName overrides the webhook's display name.
	BotName string

	// AvatarURL overrides the webhook's avatar. Optional, https only.
	AvatarURL string
}

// Configured reports whether a webhook URL has been set.
func (c DeliveryConfig) Configured() bool {
	return c.WebhookURL != ""
}

// WithDefaults fills in the bot name when it is blank.
func (c DeliveryConfig) WithDefaults() DeliveryConfig {
	if c.BotName == "" {
		c.BotName = DefaultBotName
	}
	return c
}

// Site identifies the platform instance in the embed footer.
type Site struct {
	Name string
	URL  string
}

// Footer renders the footer text stamped on every embed.
func (s Site) Footer() string {
	switch {
	case s.Name != "" && s.URL != "":
		return s.Name + " | " + s.URL
	case s.Name != "":
		return s.Name
	default:
		return s.URL
	}
}
