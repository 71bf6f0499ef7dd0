package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// Duration is a time.Duration spelled as "5s" or "1m30s" in config files.
type Duration struct{ time.Duration }

func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string such as \"5s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// ServerConfig configures the HTTP tool server.
type ServerConfig struct {
	Addr              string   `json:"addr"`
	MaxBodyBytes      int64    `json:"maxBodyBytes"`
	ReadHeaderTimeout Duration `json:"readHeaderTimeout"`
	ReadTimeout       Duration `json:"readTimeout"`
	WriteTimeout      Duration `json:"writeTimeout"`
	IdleTimeout       Duration `json:"idleTimeout"`
	ShutdownTimeout   Duration `json:"shutdownTimeout"`
}

// DefaultServerConfig mirrors the limits the server has always used.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              ":8080",
		MaxBodyBytes:      1 << 20, // 1 MiB
		ReadHeaderTimeout: Duration{5 * time.Second},
		ReadTimeout:       Duration{15 * time.Second},
		WriteTimeout:      Duration{15 * time.Second},
		IdleTimeout:       Duration{60 * time.Second},
		ShutdownTimeout:   Duration{10 * time.Second},
	}
}

// LoadServerConfig reads a YAML (or JSON) file over the defaults. Unknown
// fields are rejected. An empty path returns the defaults.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("maxBodyBytes must be positive, got %d", c.MaxBodyBytes)
	}
	for name, d := range map[string]Duration{
		"readHeaderTimeout": c.ReadHeaderTimeout,
		"readTimeout":       c.ReadTimeout,
		"writeTimeout":      c.WriteTimeout,
		"idleTimeout":       c.IdleTimeout,
		"shutdownTimeout":   c.ShutdownTimeout,
	} {
		if d.Duration < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, d.Duration)
		}
	}
	return nil
}
