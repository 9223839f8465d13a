package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/usecase/settings"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubRepo struct {
	data map[string]string
	err  error
}

func newStub() *stubRepo { return &stubRepo{data: map[string]string{}} }

func (s *stubRepo) Get(_ context.Context, key string) (string, error) {
	return s.data[key], s.err
}
func (s *stubRepo) Set(_ context.Context, key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	return nil
}
func (s *stubRepo) SetIfAbsent(_ context.Context, key, value string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[key]; !ok {
		s.data[key] = value
	}
	return nil
}
func (s *stubRepo) All(context.Context) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

const validHook = "https://discord.com/api/webhooks/123/abc_DEF-9"

/*────────────────────  テスト  ────────────────────*/

func TestSave_RejectsUnknownKey(t *testing.T) {
	repo := newStub()
	svc := &settings.Service{Repo: repo}

	err := svc.Save(context.Background(), "siteurl", "https://evil")
	assert.True(t, errors.Is(err, settings.ErrInvalidSetting))
	assert.Empty(t, repo.data)
}

func TestSave_WebhookURL(t *testing.T) {
	repo := newStub()
	svc := &settings.Service{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, entity.SettingWebhookURL, "  "+validHook+" "))
	assert.Equal(t, validHook, repo.data[entity.SettingWebhookURL])

	err := svc.Save(ctx, entity.SettingWebhookURL, "http://discord.com/api/webhooks/1/x")
	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "webhook_url", verr.Field)
	assert.Equal(t, "", repo.data[entity.SettingWebhookURL])

	// empty clears delivery without an error
	require.NoError(t, svc.Save(ctx, entity.SettingWebhookURL, ""))
}

func TestSave_AvatarURL(t *testing.T) {
	repo := newStub()
	svc := &settings.Service{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, entity.SettingAvatarURL, ""))
	require.NoError(t, svc.Save(ctx, entity.SettingAvatarURL, "https://cdn.example/a.png"))
	assert.Equal(t, "https://cdn.example/a.png", repo.data[entity.SettingAvatarURL])

	err := svc.Save(ctx, entity.SettingAvatarURL, "ftp://cdn.example/a.png")
	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "", repo.data[entity.SettingAvatarURL])
}

func TestSave_BotNameSanitized(t *testing.T) {
	repo := newStub()
	svc := &settings.Service{Repo: repo}

	require.NoError(t, svc.Save(context.Background(), entity.SettingBotName, "<b>Site</b>\n  Bot\x00"))
	assert.Equal(t, "Site Bot", repo.data[entity.SettingBotName])
}

func TestSave_StoreError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("down")
	svc := &settings.Service{Repo: repo}

	err := svc.Save(context.Background(), entity.SettingBotName, "x")
	assert.ErrorIs(t, err, repo.err)
}

func TestLoad_DefaultsBotName(t *testing.T) {
	repo := newStub()
	repo.data[entity.SettingWebhookURL] = validHook
	svc := &settings.Service{Repo: repo}

	cfg, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryConfig{WebhookURL: validHook, BotName: entity.DefaultBotName}, cfg)

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBotName, all[entity.SettingBotName])
	assert.Len(t, all, 3)

	name, err := svc.Get(context.Background(), entity.SettingBotName)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBotName, name)
}

func TestSeedDefaults_KeepsExisting(t *testing.T) {
	repo := newStub()
	svc := &settings.Service{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	assert.Equal(t, entity.DefaultBotName, repo.data[entity.SettingBotName])

	repo.data[entity.SettingBotName] = "Custom"
	require.NoError(t, svc.SeedDefaults(ctx))
	assert.Equal(t, "Custom", repo.data[entity.SettingBotName])
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"plain":                 "plain",
		"  a \t b  ":            "a b",
		"<script>x</script>y":   "xy",
		"bad\xffutf8":           "badutf8",
		"line1\r\nline2":        "line1 line2",
		"ctl\x07char":           "ctlchar",
	}
	for in, want := range cases {
		assert.Equal(t, want, settings.Sanitize(in), "%q", in)
	}
}
