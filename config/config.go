package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the famvault services.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// BackendConfig points at the Windmill workspace that runs every workflow.
// The token is a workspace-scoped bearer token for the admin surface; the
// gateway propagates per-request user tokens instead.
type BackendConfig struct {
	URL       string `mapstructure:"url"`
	Workspace string `mapstructure:"workspace"`
	Token     string `mapstructure:"token"`
	// DevMode selects an empty base URL so requests flow through the local
	// reverse proxy instead of hitting the backend directly.
	DevMode bool `mapstructure:"dev_mode"`
}

// Validate checks backend reachability settings. Outside dev mode a base URL
// and workspace are required; same-origin resolution has no meaning here.
func (b BackendConfig) Validate() error {
	if strings.TrimSpace(b.Workspace) == "" {
		return fmt.Errorf("backend.workspace is required")
	}
	if b.DevMode {
		return nil
	}
	if strings.TrimSpace(b.URL) == "" {
		return fmt.Errorf("backend.url is required (or set backend.dev_mode)")
	}
	if _, err := url.Parse(b.URL); err != nil {
		return fmt.Errorf("backend.url is not a valid URL: %w", err)
	}
	return nil
}

// BaseURL resolves the request base: dev mode yields an empty base (reverse
// proxy), otherwise the configured URL without a trailing slash.
func (b BackendConfig) BaseURL() string {
	if b.DevMode {
		return ""
	}
	return strings.TrimRight(b.URL, "/")
}

// ServerConfig contains gateway HTTP settings.
type ServerConfig struct {
	Listen       string   `mapstructure:"listen"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
	CookieSecure bool     `mapstructure:"cookie_secure"`
}

// Normalize applies defaults for unset server values.
func (s ServerConfig) Normalize() ServerConfig {
	if strings.TrimSpace(s.Listen) == "" {
		s.Listen = ":8787"
	}
	if !strings.HasPrefix(s.Listen, ":") && !strings.Contains(s.Listen, ":") {
		s.Listen = ":" + s.Listen
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = []string{"*"}
	}
	return s
}

// TelemetryConfig controls prometheus metrics exposure.
type TelemetryConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Normalize applies defaults for unset telemetry values.
func (t TelemetryConfig) Normalize() TelemetryConfig {
	if strings.TrimSpace(t.Namespace) == "" {
		t.Namespace = "famvault"
	}
	return t
}

// LoadConfig reads configuration from the given file, or from the standard
// search paths when path is empty. Environment variables prefixed FAMVAULT_
// override file values (FAMVAULT_BACKEND_TOKEN, FAMVAULT_SERVER_LISTEN, ...).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", 30*time.Second)
	v.SetDefault("server.listen", ":8787")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.namespace", "famvault")

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		v.AddConfigPath(exeDir)
		v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("FAMVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about, so keys
	// without defaults must be bound explicitly or Unmarshal never sees
	// their env values.
	for _, key := range []string{
		"backend.url", "backend.workspace", "backend.token", "backend.dev_mode",
		"server.cookie_secure",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when the environment carries everything.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Server = cfg.Server.Normalize()
	cfg.Telemetry = cfg.Telemetry.Normalize()
	if cfg.General.DefaultTimeout <= 0 {
		cfg.General.DefaultTimeout = 30 * time.Second
	}

	if err := cfg.Backend.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
