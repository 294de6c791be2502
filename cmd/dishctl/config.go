package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/dishstack/dishctl/internal/core/stack"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all dishctl configuration.
type Config struct {
	Compose    ComposeConfig    `mapstructure:"compose" yaml:"compose"`
	Docker     DockerConfig     `mapstructure:"docker" yaml:"docker"`
	Containers ContainersConfig `mapstructure:"containers" yaml:"containers"`
	Postgres   PostgresConfig   `mapstructure:"postgres" yaml:"postgres"`
	Redis      RedisConfig      `mapstructure:"redis" yaml:"redis"`
	Backend    BackendConfig    `mapstructure:"backend" yaml:"backend"`
	Frontend   FrontendConfig   `mapstructure:"frontend" yaml:"frontend"`
	History    HistoryConfig    `mapstructure:"history" yaml:"history"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// ComposeConfig holds the compose file layout.
type ComposeConfig struct {
	// File is the database stack compose file. Empty means the compose
	// CLI's implicit default, so no -f flag is passed.
	File string `mapstructure:"file" yaml:"file"`

	// FullFile is the full stack (db + backend + frontend) compose file.
	FullFile string `mapstructure:"full_file" yaml:"full_file"`

	// Project is an optional compose project name (-p).
	Project string `mapstructure:"project" yaml:"project"`
}

// DefaultFilePath returns the path of the database stack compose file for
// commands that read it from disk (validate, doctor).
func (c ComposeConfig) DefaultFilePath() string {
	if c.File != "" {
		return c.File
	}
	return "docker-compose.yml"
}

// DockerConfig holds docker binary and engine settings.
type DockerConfig struct {
	// Binary is the docker CLI invoked for delegated commands.
	Binary string `mapstructure:"binary" yaml:"binary"`

	// Host overrides the engine API endpoint for status/doctor.
	Host string `mapstructure:"host" yaml:"host"`
}

// ContainersConfig names the well-known containers shells attach to.
type ContainersConfig struct {
	Backend  string `mapstructure:"backend" yaml:"backend"`
	Postgres string `mapstructure:"postgres" yaml:"postgres"`
}

// PostgresConfig holds the dev Postgres connection parameters.
type PostgresConfig struct {
	User     string `mapstructure:"user" yaml:"user"`
	Database string `mapstructure:"database" yaml:"database"`
	Port     int    `mapstructure:"port" yaml:"port"`
}

// RedisConfig holds the dev Redis connection parameters.
type RedisConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// BackendConfig holds the dev backend endpoint.
type BackendConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// FrontendConfig holds the dev frontend endpoint.
type FrontendConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// HistoryConfig holds the run-history store settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// =============================================================================
// Derived Views
// =============================================================================

// DBStack returns the database-only stack definition.
func (c *Config) DBStack() stack.Stack {
	return stack.Stack{
		Name:        "db",
		ComposeFile: c.Compose.File,
		Project:     c.Compose.Project,
	}
}

// FullStack returns the full stack definition. Bringing it up always
// rebuilds images so local backend/frontend changes are picked up.
func (c *Config) FullStack() stack.Stack {
	return stack.Stack{
		Name:        "full",
		ComposeFile: c.Compose.FullFile,
		Project:     c.Compose.Project,
		BuildOnUp:   true,
	}
}

// Endpoints returns the connection parameters help prints.
func (c *Config) Endpoints() stack.Endpoints {
	return stack.Endpoints{
		PostgresPort:     c.Postgres.Port,
		PostgresUser:     c.Postgres.User,
		PostgresDatabase: c.Postgres.Database,
		RedisPort:        c.Redis.Port,
		BackendPort:      c.Backend.Port,
		FrontendPort:     c.Frontend.Port,
	}
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("compose.file", "")
	v.SetDefault("compose.full_file", "docker-compose.full.yml")
	v.SetDefault("compose.project", "")
	v.SetDefault("docker.binary", "docker")
	v.SetDefault("docker.host", "")
	v.SetDefault("containers.backend", "dish_backend")
	v.SetDefault("containers.postgres", "dish_postgres")
	v.SetDefault("postgres.user", "dish_user")
	v.SetDefault("postgres.database", "dish_db")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("redis.port", 6379)
	v.SetDefault("backend.port", 8000)
	v.SetDefault("frontend.port", 3000)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "./.dishctl/history.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		// Optional dishctl.yaml next to the compose files.
		v.SetConfigName("dishctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("DISHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Diagnostics go to stderr so delegated process output stays clean.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
