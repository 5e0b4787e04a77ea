// Package config loads client configuration from a yaml file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API   `yaml:"api"`
	Cache `yaml:"cache"`
	Local `yaml:"local"`
}

type API struct {
	BaseURL           string        `yaml:"base_url" env:"INKWELL_BASE_URL" env-default:"http://localhost:8000/api/v1/"`
	Timeout           time.Duration `yaml:"timeout" env:"INKWELL_TIMEOUT" env-default:"30s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"INKWELL_RPS" env-default:"0"`
}

type Cache struct {
	ListTTL time.Duration `yaml:"list_ttl" env:"INKWELL_CACHE_TTL" env-default:"5m"`
}

type Local struct {
	DataDir  string `yaml:"data_dir" env:"INKWELL_DATA_DIR"`
	LogLevel string `yaml:"log_level" env:"INKWELL_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from path when given, otherwise from the
// environment only. An empty DataDir falls back to the user config dir.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return &cfg, nil
}

// MustLoad is Load that panics, for main() wiring.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func defaultDataDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "inkwell")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "inkwell")
}
