package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Chat.APIKeyEnv)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Chat.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Chat.DefaultModel)
	assert.Equal(t, 20*time.Second, cfg.Chat.Timeout)
	assert.Empty(t, cfg.Lambda.Handler)
	assert.Equal(t, "mystic", cfg.Observability.ServiceName)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MYSTIC_PRIMARY__ENV", "production")
	t.Setenv("MYSTIC_SERVER__PORT", "9090")
	t.Setenv("MYSTIC_SERVER__READ_TIMEOUT", "5")
	t.Setenv("MYSTIC_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("MYSTIC_CHAT__TIMEOUT", "45s")
	t.Setenv("MYSTIC_CHAT__DEFAULT_MODEL", "gpt-4o")
	t.Setenv("MYSTIC_LAMBDA__HANDLER", "numerology")
	t.Setenv("MYSTIC_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, "gpt-4o", cfg.Chat.DefaultModel)
	assert.Equal(t, LambdaHandlerNumerology, cfg.Lambda.Handler)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown lambda handler", "MYSTIC_LAMBDA__HANDLER", "palm"},
		{"timeout below a second", "MYSTIC_CHAT__TIMEOUT", "10ms"},
		{"bad log level", "MYSTIC_OBSERVABILITY__LOGGING__LEVEL", "verbose"},
		{"bad log format", "MYSTIC_OBSERVABILITY__LOGGING__FORMAT", "xml"},
		{"base url is not a url", "MYSTIC_CHAT__BASE_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"https://a.example", []string{"https://a.example"}},
		{"https://a.example,https://b.example", []string{"https://a.example", "https://b.example"}},
		{" https://a.example , https://b.example ,", []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("MYSTIC_SERVER__CORS_ALLOWED_ORIGINS", tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Server.CORSAllowedOrigins)
		})
	}
}

func TestEnvValueLeavesScalarsAlone(t *testing.T) {
	key, value := envValue("MYSTIC_CHAT__DEFAULT_MODEL", "a,b")
	assert.Equal(t, "chat.default_model", key)
	assert.Equal(t, "a,b", value)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("MYSTIC_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("MYSTIC_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestGetLogLevelFallsBackPerEnvironment(t *testing.T) {
	obs := DefaultObservabilityConfig()
	obs.Logging.Level = ""

	obs.Environment = "development"
	assert.Equal(t, "debug", obs.GetLogLevel())

	obs.Environment = "production"
	assert.Equal(t, "info", obs.GetLogLevel())

	obs.Environment = "staging"
	assert.Equal(t, "info", obs.GetLogLevel())
}
