package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LocalStoreDir   string
	CropSessionTTL  time.Duration
	ImportDelay     time.Duration
	SuggestionDelay time.Duration
	LogJSON         bool
	LogDebug        bool
	RateLimit       RateLimit
}

// RateLimit configures the default and pointer-traffic token buckets.
type RateLimit struct {
	DefaultRate  float64
	DefaultBurst int
	PointerRate  float64
	PointerBurst int
}

var defaults = map[string]any{
	"PORT":                     "8080",
	"ENV":                      "dev",
	"CORS_ALLOW_ORIGINS":       "http://localhost:3000",
	"LOCAL_STORE_DIR":          "./data",
	"CROP_SESSION_TTL":         "15m",
	"IMPORT_DELAY":             "2s",
	"SUGGESTION_DELAY":         "2s",
	"LOG_JSON":                 true,
	"LOG_DEBUG":                false,
	"RATE_LIMIT_DEFAULT_RATE":  5.0,
	"RATE_LIMIT_DEFAULT_BURST": 20,
	"RATE_LIMIT_POINTER_RATE":  60.0,
	"RATE_LIMIT_POINTER_BURST": 120,
}

// Load reads configuration from the environment, an optional .env file, and defaults.
func Load() Config {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom populates Config using v. envFiles are merged best-effort for local
// development; process environment wins over file values.
func LoadFrom(v *viper.Viper, envFiles ...string) Config {
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("env")
		// Best-effort: a malformed file leaves env and defaults in charge.
		_ = v.MergeInConfig()
	}

	return Config{
		Port:            v.GetString("PORT"),
		Env:             normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		CropSessionTTL:  v.GetDuration("CROP_SESSION_TTL"),
		ImportDelay:     v.GetDuration("IMPORT_DELAY"),
		SuggestionDelay: v.GetDuration("SUGGESTION_DELAY"),
		LogJSON:         v.GetBool("LOG_JSON"),
		LogDebug:        v.GetBool("LOG_DEBUG"),
		RateLimit: RateLimit{
			DefaultRate:  v.GetFloat64("RATE_LIMIT_DEFAULT_RATE"),
			DefaultBurst: v.GetInt("RATE_LIMIT_DEFAULT_BURST"),
			PointerRate:  v.GetFloat64("RATE_LIMIT_POINTER_RATE"),
			PointerBurst: v.GetInt("RATE_LIMIT_POINTER_BURST"),
		},
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
