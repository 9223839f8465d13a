package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewMessage_CopiesFields(t *testing.T) {
	fields := []Field{
		{Name: "Username", Value: "alice", Inline: true},
		{Name: "Email", Value: "a@example.com", Inline: true},
	}
	m := NewMessage("👤 New User Registered", "", ColorGreen, fields...)

	fields[0].Value = "mallory"
	assert.Equal(t, "alice", m.Fields()[0].Value)

	got := m.Fields()
	got[1].Value = "changed"
	assert.Equal(t, "a@example.com", m.Fields()[1].Value)

	want := []Field{
		{Name: "Username", Value: "alice", Inline: true},
		{Name: "Email", Value: "a@example.com", Inline: true},
	}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, m.FieldCount())
}

func TestNewMessage_NoFields(t *testing.T) {
	m := NewMessage("title", "desc", ColorBlue)
	assert.Equal(t, 0, m.FieldCount())
	assert.Empty(t, m.Fields())
}

func TestDeliveryConfig(t *testing.T) {
	assert.False(t, DeliveryConfig{}.Configured())
	assert.True(t, DeliveryConfig{WebhookURL: "x"}.Configured())

	assert.Equal(t, DefaultBotName, DeliveryConfig{}.WithDefaults().BotName)
	assert.Equal(t, "Ops Bot", DeliveryConfig{BotName: "Ops Bot"}.WithDefaults().BotName)
}

func TestSite_Footer(t *testing.T) {
	assert.Equal(t, "My Blog | https://blog.example.com", Site{Name: "My Blog", URL: "https://blog.example.com"}.Footer())
	assert.Equal(t, "My Blog", Site{Name: "My Blog"}.Footer())
	assert.Equal(t, "https://blog.example.com", Site{URL: "https://blog.example.com"}.Footer())
	assert.Equal(t, "", Site{}.Footer())
}

func TestOutcomeKind_LogType(t *testing.T) {
	assert.Equal(t, LogTypeSuccess, OutcomeSuccess.LogType())
	for _, k := range []OutcomeKind{OutcomeNotConfigured, OutcomeInvalidURL, OutcomeTransportError, OutcomeHTTPError, OutcomeException} {
		assert.Equal(t, LogTypeError, k.LogType(), k)
	}
	assert.True(t, Outcome{Kind: OutcomeSuccess}.Success())
	assert.False(t, Outcome{Kind: OutcomeHTTPError}.Success())
}

func TestEventTypes(t *testing.T) {
	assert.Len(t, AllEventTypes, 31)

	seen := map[EventType]bool{}
	for _, et := range AllEventTypes {
		assert.False(t, seen[et], "duplicate %s", et)
		seen[et] = true
	}
	assert.True(t, EventOrderCreated.IsCommerce())
	assert.True(t, EventStockChanged.IsCommerce())
	assert.False(t, EventUserLogin.IsCommerce())
	assert.Equal(t, "", RawEvent{}.Attr("x"))
	assert.Equal(t, "v", RawEvent{Attrs: map[string]string{"x": "v"}}.Attr("x"))
}

func TestSettingKeys(t *testing.T) {
	assert.True(t, IsSettingKey(SettingWebhookURL))
	assert.True(t, IsSettingKey(SettingAvatarURL))
	assert.False(t, IsSettingKey("siteurl"))

	cfg := DeliveryConfigFromOptions(map[string]string{SettingWebhookURL: "https://discord.com/api/webhooks/1/a"})
	assert.Equal(t, "https://discord.com/api/webhooks/1/a", cfg.WebhookURL)
	assert.Equal(t, DefaultBotName, cfg.BotName)
	assert.Equal(t, "", cfg.AvatarURL)
}
