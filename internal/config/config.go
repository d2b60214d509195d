// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types on top of sane defaults, and
// validates the result so the process fails fast on bad config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on bad config.
//   - Provide defaults for every block (e.g. observability).
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into process env
	// *before* your code reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Env vars are read using a prefix: MYSTIC_
	- Keys are normalized (lowercased, prefix removed)
	- A double underscore marks nesting, single underscores stay part of the key
	  e.g. MYSTIC_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
*/

// EnvPrefix is the prefix every config env var carries.
const EnvPrefix = "MYSTIC_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Chat          ChatConfig           `koanf:"chat" validate:"required"`
	Lambda        LambdaConfig         `koanf:"lambda"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
// Usually used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// ChatConfig describes the upstream chat-completion API.
//
// The credential is not part of the config: it is read from the environment
// variable named by APIKeyEnv on every chat request.
type ChatConfig struct {
	APIKeyEnv    string        `koanf:"api_key_env" validate:"required"`
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	DefaultModel string        `koanf:"default_model" validate:"required"`
	Timeout      time.Duration `koanf:"timeout" validate:"required,min=1s"`
}

// Lambda handler names accepted by LambdaConfig.Handler.
const (
	LambdaHandlerChat          = "chat"
	LambdaHandlerHoroscope     = "horoscope"
	LambdaHandlerNumerology    = "numerology"
	LambdaHandlerTarot         = "tarot"
	LambdaHandlerZodiac        = "zodiac"
	LambdaHandlerReading       = "reading"
	LambdaHandlerCompatibility = "compatibility"
)

// LambdaConfig selects which handler a Lambda deployment of the binary serves.
// It is only consulted by `mystic lambda`.
type LambdaConfig struct {
	Handler string `koanf:"handler" validate:"omitempty,oneof=chat horoscope numerology tarot zodiac reading compatibility"`
}

// DefaultConfig returns the configuration used when no env var overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Chat: ChatConfig{
			APIKeyEnv:    "OPENAI_API_KEY",
			BaseURL:      "https://api.openai.com/v1",
			DefaultModel: "gpt-4o-mini",
			Timeout:      20 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// listKeys are config paths whose env value is a comma-separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envKey maps MYSTIC_CHAT__DEFAULT_MODEL to chat.default_model.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue maps an env var to its koanf key and value. List keys are split on
// commas, with blanks around each item trimmed and empty items dropped.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	items := make([]string, 0, strings.Count(value, ",")+1)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// Load loads configuration from environment variables on top of DefaultConfig,
// validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix MYSTIC_
//   - Unmarshals into a pre-filled Config (absent keys keep their defaults)
//   - Validates the whole tree with validator tags
//   - Forces observability environment to follow Primary.Env
//   - Validates observability config with its own rules
func Load() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	mainConfig := DefaultConfig()

	// koanf decodes with weak typing and a duration hook, so "20s" works as is.
	// Lists arrive already split by envValue.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal main config")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	// Tracing/logging should always see the environment the app runs in.
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return mainConfig, nil
}
