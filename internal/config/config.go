package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Immich   ImmichConfig
	Database DatabaseConfig
	Server   ServerConfig
	Defaults DefaultsConfig
}

type ImmichConfig struct {
	URL    string // Immich server base URL (e.g., http://immich:2283)
	APIKey string // Immich API key, sent as x-api-key
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type ServerConfig struct {
	Port int // HTTP listen port (default 8080)
}

// DefaultsConfig mirrors defaults.yaml: the scoring policy and exclusion
// filter used until the user persists their own settings.
type DefaultsConfig struct {
	Weights dedupe.ScoringConfig `yaml:"weights"`
	Exclude dedupe.ExcludeConfig `yaml:"exclude"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func Load() *Config {
	var defaults DefaultsConfig
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Immich: ImmichConfig{
			URL:    os.Getenv("IMMICH_URL"),
			APIKey: os.Getenv("IMMICH_API_KEY"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Server: ServerConfig{
			Port: envInt("PORT", 8080),
		},
		Defaults: defaults,
	}
}
