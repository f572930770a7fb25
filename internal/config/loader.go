package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads the snake configuration.
// Search order: customPath -> ~/.snake/config.yaml -> ./configs/snake.yaml -> embedded default.
// A .env file in the working directory and SNAKE_* variables are applied on top.
func Load(customPath string) (Config, error) {
	cfg, err := loadYAML(customPath)
	if err != nil {
		return cfg, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config: failed to read .env: %w", err)
	}
	applyEnv(&cfg)

	cfg.Speed = cfg.Speed.Normalize()
	return cfg, nil
}

func loadYAML(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if path := userConfigPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "snake.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSnakeYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// parse decodes YAML over the hard-coded defaults so missing keys keep
// their default values.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "config.yaml")
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("SNAKE_STORAGE_BACKEND", &cfg.Storage.Backend)
	setString("SNAKE_SQLITE_PATH", &cfg.Storage.SQLite.Path)
	setString("SNAKE_REDIS_ADDR", &cfg.Storage.Redis.Addr)
	setString("SNAKE_POSTGRES_DSN", &cfg.Storage.Postgres.DSN)
	setString("SNAKE_WEB_ADDR", &cfg.Web.Addr)
	setString("SNAKE_ALLOWED_ORIGIN", &cfg.Web.AllowedOrigin)
	setString("SNAKE_SSH_ADDR", &cfg.SSH.Addr)
	setString("SNAKE_LOG_LEVEL", &cfg.Log.Level)
	setString("SNAKE_LOG_FORMAT", &cfg.Log.Format)

	if v := os.Getenv("SNAKE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
}
