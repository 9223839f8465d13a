package settings

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/repository"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Service reads and writes the three webhook options.
type Service struct {
	Repo repository.SettingsRepository
}

// Save sanitizes and stores one option. An invalid webhook or avatar URL is
// replaced by "" in the store and reported as a *entity.ValidationError.
func (s *Service) Save(ctx context.Context, key, value string) error {
	if !entity.IsSettingKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidSetting, key)
	}

	value = Sanitize(value)

	var verr error
	switch key {
	case entity.SettingWebhookURL:
		if value != "" {
			verr = entity.ValidateWebhookURL(value)
		}
	case entity.SettingAvatarURL:
		verr = entity.ValidateAvatarURL(value)
	}
	if verr != nil {
		value = ""
	}

	if err := s.Repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}

	slog.InfoContext(ctx, "setting saved",
		slog.String("key", key),
		slog.Bool("cleared", value == ""),
		slog.Bool("rejected", verr != nil))
	return verr
}

// Get returns one option, with the bot name defaulted.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if !entity.IsSettingKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSetting, key)
	}
	v, err := s.Repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	if key == entity.SettingBotName && v == "" {
		v = entity.DefaultBotName
	}
	return v, nil
}

// All returns every allow-listed option keyed by option name.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	opts, err := s.Repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	cfg := entity.DeliveryConfigFromOptions(opts)
	return map[string]string{
		entity.SettingWebhookURL: cfg.WebhookURL,
		entity.SettingBotName:    cfg.BotName,
		entity.SettingAvatarURL:  cfg.AvatarURL,
	}, nil
}

// Load builds a fresh DeliveryConfig from the store.
func (s *Service) Load(ctx context.Context) (entity.DeliveryConfig, error) {
	opts, err := s.Repo.All(ctx)
	if err != nil {
		return entity.DeliveryConfig{}, fmt.Errorf("load delivery config: %w", err)
	}
	return entity.DeliveryConfigFromOptions(opts), nil
}

// SeedDefaults writes the default bot name when none is stored yet.
func (s *Service) SeedDefaults(ctx context.Context) error {
	if err := s.Repo.SetIfAbsent(ctx, entity.SettingBotName, entity.DefaultBotName); err != nil {
		return fmt.Errorf("seed default settings: %w", err)
	}
	return nil
}

// Sanitize strips markup, control characters and invalid UTF-8, and
// collapses runs of whitespace into single spaces.
func Sanitize(v string) string {
	v = strings.ToValidUTF8(v, "")
	v = tagPattern.ReplaceAllString(v, "")
	v = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)
	return strings.Join(strings.Fields(v), " ")
}
