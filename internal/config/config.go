// Package config provides YAML-based configuration loading and the
// speed curve used by the snake engine.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Speed   SpeedCurve    `yaml:"speed"`
	Storage StorageConfig `yaml:"storage"`
	Web     WebConfig     `yaml:"web"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
	Seed    int64         `yaml:"seed"` // 0 = time-based
}

// StorageConfig selects and configures the best-score backend.
type StorageConfig struct {
	Backend  string        `yaml:"backend"` // sqlite, redis, postgres, memory
	SQLite   SQLiteConfig  `yaml:"sqlite"`
	Redis    RedisConfig   `yaml:"redis"`
	Postgres PostgresCfg   `yaml:"postgres"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// PostgresCfg configures the postgres backend.
type PostgresCfg struct {
	DSN string `yaml:"dsn"`
}

// WebConfig configures the browser server.
type WebConfig struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin"` // empty = any origin
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json, logfmt
}

// Storage backend names.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)
