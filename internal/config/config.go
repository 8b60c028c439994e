// Path: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Static    StaticConfig
	Store     StoreConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	// APIPort starts a second, API-only listener. Empty disables it.
	APIPort         string        `mapstructure:"api_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"` // 0 keeps long streams alive
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StaticConfig holds the settings of the static file dispatcher.
type StaticConfig struct {
	PublicRoot string `mapstructure:"public_root"`
	// StreamingThresholdBytes is the size above which files are streamed
	// and Range requests are honored.
	StreamingThresholdBytes int64  `mapstructure:"streaming_threshold_bytes"`
	NotFoundPage            string `mapstructure:"not_found_page"`
	// FaultPattern forces a 500 for any path containing it. Empty disables the hook.
	FaultPattern string `mapstructure:"fault_pattern"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// DatabaseConfig holds the MongoDB connection settings, used by the mongo backend.
type DatabaseConfig struct {
	URI        string `mapstructure:"uri"`
	Name       string `mapstructure:"name"`
	Collection string `mapstructure:"collection"`
}

// RateLimitConfig throttles the song API. A zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	BurstLimit        int     `mapstructure:"burst_limit"`
}

// Load loads the configuration from file and environment variables.
func Load() (*Config, error) {
	return load(viper.New(), "./configs")
}

func load(v *viper.Viper, configPaths ...string) (*Config, error) {
	// Set default values
	v.SetDefault("SERVER.PORT", "3000")
	v.SetDefault("SERVER.API_PORT", "5501")
	v.SetDefault("SERVER.READ_TIMEOUT", 10*time.Second)
	v.SetDefault("SERVER.WRITE_TIMEOUT", 0)
	v.SetDefault("SERVER.IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("STATIC.PUBLIC_ROOT", "./public")
	v.SetDefault("STATIC.STREAMING_THRESHOLD_BYTES", 4*1024*1024)
	v.SetDefault("STATIC.NOT_FOUND_PAGE", "404.html")
	v.SetDefault("STATIC.FAULT_PATTERN", "error")
	v.SetDefault("STORE.BACKEND", BackendFile)
	v.SetDefault("STORE.PATH", "./songs.json")
	v.SetDefault("DATABASE.URI", "mongodb://localhost:27017")
	v.SetDefault("DATABASE.NAME", "music")
	v.SetDefault("DATABASE.COLLECTION", "songs")
	v.SetDefault("RATE_LIMIT.REQUESTS_PER_SECOND", 50)
	v.SetDefault("RATE_LIMIT.BURST_LIMIT", 100)

	// Load from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err // Only return error if it's not a "file not found" error
		}
	}

	// Load from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	if c.Static.PublicRoot == "" {
		return errors.New("static.public_root must be set")
	}
	if c.Static.StreamingThresholdBytes <= 0 {
		return fmt.Errorf("static.streaming_threshold_bytes must be positive, got %d", c.Static.StreamingThresholdBytes)
	}
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			return errors.New("store.path must be set for the file backend")
		}
	case BackendMongo:
		if c.Database.URI == "" || c.Database.Name == "" || c.Database.Collection == "" {
			return errors.New("database.uri, database.name and database.collection must be set for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.BurstLimit < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	return nil
}

// Addr returns the listen address for a port.
func Addr(port string) string {
	return ":" + port
}
