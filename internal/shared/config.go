package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Gateway modes accepted by [GatewayConfig.Mode].
const (
	GatewayAuto = "auto"
	GatewayLive = "live"
	GatewayMock = "mock"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Gateway     GatewayConfig     `toml:"gateway"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	TMDb TMDbConfig `toml:"tmdb"`
}

// TMDbConfig contains The Movie Database API settings.
type TMDbConfig struct {
	APIKey       string `toml:"api_key"`
	AccessToken  string `toml:"access_token"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
	Language     string `toml:"language"`
}

// HasCredentials reports whether either an API key or a bearer token is configured.
func (c TMDbConfig) HasCredentials() bool {
	return strings.TrimSpace(c.APIKey) != "" || strings.TrimSpace(c.AccessToken) != ""
}

// GatewayConfig selects the catalog gateway implementation.
type GatewayConfig struct {
	Mode    string `toml:"mode"`    // auto, live, or mock
	Timeout string `toml:"timeout"` // Go duration string applied to the HTTP client
}

// TimeoutDuration parses Timeout, returning 10s when unset or malformed.
func (g GatewayConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(g.Timeout))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // TUI log destination
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Gateway.Mode {
	case GatewayAuto, GatewayLive, GatewayMock:
	case "":
		c.Gateway.Mode = GatewayAuto
	default:
		return fmt.Errorf("%w: unknown gateway mode %q", ErrInvalidConfig, c.Gateway.Mode)
	}

	if c.Gateway.Mode == GatewayLive && !c.Credentials.TMDb.HasCredentials() {
		return fmt.Errorf("%w: live gateway requires api_key or access_token", ErrMissingCredentials)
	}

	return nil
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
