package entity

// Persisted option keys. Only these three may be written from the admin surface.
const (
	SettingWebhookURL = "wpdl_webhook_url"
	SettingBotName    = "wpdl_bot_name"
	SettingAvatarURL  = "wpdl_avatar_url"
)

// SettingKeys is the allow-list of writable option keys.
var SettingKeys = []string{SettingWebhookURL, SettingBotName, SettingAvatarURL}

// IsSettingKey reports whether key is on the allow-list.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DeliveryConfigFromOptions maps stored options onto a DeliveryConfig.
// Missing keys read as empty and the bot name falls back to the default.
func DeliveryConfigFromOptions(opts map[string]string) DeliveryConfig {
	return DeliveryConfig{
		WebhookURL: opts[SettingWebhookURL],
		BotName:    opts[SettingBotName],
		AvatarURL:  opts[SettingAvatarURL],
	}.WithDefaults()
}
