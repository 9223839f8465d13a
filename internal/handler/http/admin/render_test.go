package admin

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDetails(t *testing.T) {
	assert.Equal(t, "short", truncateDetails("short"))
	assert.Equal(t, strings.Repeat("a", 50), truncateDetails(strings.Repeat("a", 50)))
	assert.Equal(t, strings.Repeat("a", 50)+"...", truncateDetails(strings.Repeat("a", 51)))

	got := truncateDetails(strings.Repeat("é", 60))
	assert.Equal(t, strings.Repeat("é", 50)+"...", got)
}

func TestHumanizeAge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "1 min ago"},
		{10 * time.Second, "1 min ago"},
		{5 * time.Minute, "5 mins ago"},
		{time.Hour, "1 hour ago"},
		{90 * time.Minute, "2 hours ago"},
		{26 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{45 * 24 * time.Hour, "2 months ago"},
		{400 * 24 * time.Hour, "1 year ago"},
		{-time.Minute, "1 min ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeAge(now.Add(-tt.ago), now))
		})
	}
}
