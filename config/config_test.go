package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.EmailSendDelay)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.DedupeMilestones)
	assert.Empty(t, cfg.LifecycleCron)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_SEND_DELAY", "2s")
	t.Setenv("LIFECYCLE_CRON", "0 * * * *")
	t.Setenv("LIFECYCLE_DEDUPE_MILESTONES", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("EMAIL_PROVIDER", "ses")
	t.Setenv("AWS_SES_REGION", "eu-west-1")
	t.Setenv("EVENT_TIMEZONE", "Europe/Berlin")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.EmailSendDelay)
	assert.Equal(t, "0 * * * *", cfg.LifecycleCron)
	assert.True(t, cfg.DedupeMilestones)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "eu-west-1", cfg.Email.SESRegion)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("EVENT_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("negative delay", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("EMAIL_SEND_DELAY", "-1s")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("REQUEST_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}
