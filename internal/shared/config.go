package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Media   MediaConfig   `toml:"media"`
	Search  SearchConfig  `toml:"search"`
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
}

// MediaConfig locates the catalog and the player used outside the browser.
type MediaConfig struct {
	Path   string `toml:"path"`
	Player string `toml:"player"`
}

// SearchConfig contains matcher settings.
type SearchConfig struct {
	Limit  int    `toml:"limit"`
	Cutoff int    `toml:"cutoff"`
	Scorer string `toml:"scorer"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

// SessionConfig controls the browser session lifecycle.
type SessionConfig struct {
	CookieName    string   `toml:"cookie_name"`
	IdleTimeout   Duration `toml:"idle_timeout"`
	SweepInterval Duration `toml:"sweep_interval"`
}

// Duration wraps [time.Duration] so it can be written as "90s" or "2h" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalidConfig, text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Addr returns the host:port the server listens on.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Media.Path == "":
		return fmt.Errorf("%w: media.path is empty", ErrInvalidConfig)
	case c.Search.Limit <= 0:
		return fmt.Errorf("%w: search.limit must be positive, got %d", ErrInvalidConfig, c.Search.Limit)
	case c.Search.Cutoff < 0 || c.Search.Cutoff > 100:
		return fmt.Errorf("%w: search.cutoff must be within [0,100], got %d", ErrInvalidConfig, c.Search.Cutoff)
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port out of range: %d", ErrInvalidConfig, c.Server.Port)
	case c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0:
		return fmt.Errorf("%w: server.rate_limit and server.rate_burst must be positive", ErrInvalidConfig)
	case c.Session.CookieName == "":
		return fmt.Errorf("%w: session.cookie_name is empty", ErrInvalidConfig)
	case c.Session.IdleTimeout.Duration <= 0 || c.Session.SweepInterval.Duration <= 0:
		return fmt.Errorf("%w: session durations must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
