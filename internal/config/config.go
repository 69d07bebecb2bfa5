// Package config loads and normalises auth-toggle configuration files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
)

const (
	defaultAddr         = "127.0.0.1"
	defaultPort         = ":4173"
	defaultTemplatesDir = "ui/templates"
	defaultAssetsDir    = "ui"
	defaultName         = "Sign in"
	defaultStorageKey   = "authView"
	defaultLogLevel     = "info"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr"`
	Port string `json:"port"`
}

// ListenAddr joins Addr and Port into a net.Listen address. IPv6 hosts are
// bracketed.
func (s ServerConfig) ListenAddr() string {
	host := strings.Trim(strings.TrimSpace(s.Addr), "[]")
	port := strings.TrimPrefix(strings.TrimSpace(s.Port), ":")
	if port == "" {
		return host
	}
	return net.JoinHostPort(host, port)
}

// SetListen replaces Addr and Port with a host:port listen address such as
// "127.0.0.1:4173", "[::1]:4173" or ":8080".
func (s *ServerConfig) SetListen(v string) error {
	host, port, err := net.SplitHostPort(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("parse listen address: %w", err)
	}
	if port == "" {
		return fmt.Errorf("parse listen address %q: missing port", v)
	}
	s.Addr = host
	s.Port = ":" + port
	return nil
}

// AppConfig points at server-rendered templates and static assets.
type AppConfig struct {
	Templates string `json:"templates"`
	Assets    string `json:"assets"`
	Name      string `json:"name"`
}

// WidgetConfig is injected into the page and read by the wasm client.
type WidgetConfig struct {
	StorageKey string `json:"storage_key"`
	LogLevel   string `json:"log_level"`
}

// LoggingConfig configures the server logger.
type LoggingConfig struct {
	Level string `json:"level"`
}

// Config represents the combined runtime settings parsed from config.json.
type Config struct {
	Server  ServerConfig  `json:"server"`
	App     AppConfig     `json:"app"`
	Widget  WidgetConfig  `json:"widget"`
	Logging LoggingConfig `json:"logging"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.normalise()
	return cfg
}

// Load reads the JSON config at path and fills in defaults. A missing file is
// not an error: the defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyEnv()
	cfg.normalise()
	return cfg, nil
}

// applyEnv lets AUTH_TOGGLE_PORT, then PORT, override an unset port.
func (c *Config) applyEnv() {
	if strings.TrimSpace(c.Server.Port) != "" {
		return
	}
	for _, key := range []string{"AUTH_TOGGLE_PORT", "PORT"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			c.Server.Port = v
			return
		}
	}
}

func (c *Config) normalise() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = defaultAddr
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		c.Server.Port = defaultPort
	}
	if c.App.Templates == "" {
		c.App.Templates = defaultTemplatesDir
	}
	if c.App.Assets == "" {
		c.App.Assets = defaultAssetsDir
	}
	if c.App.Name == "" {
		c.App.Name = defaultName
	}
	if strings.TrimSpace(c.Widget.StorageKey) == "" {
		c.Widget.StorageKey = defaultStorageKey
	}
	if c.Widget.LogLevel == "" {
		c.Widget.LogLevel = defaultLogLevel
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
