package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/infra/adapter/persistence/redis"
)

func TestSettingsRepo_UnreachableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	repo := redis.NewSettingsRepo(client, "")

	_, err := repo.Get(context.Background(), entity.SettingWebhookURL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "getting option wpdl_webhook_url")

	require.Error(t, repo.Set(context.Background(), entity.SettingBotName, "x"))
}
