package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DefaultsConfig holds fallback interval durations applied to plans that
// omit them.
type DefaultsConfig struct {
	ExerciseSecs  int `yaml:"exercise_secs"`
	BreakSecs     int `yaml:"break_secs"`
	SetBreakSecs  int `yaml:"set_break_secs"`
	CountdownSecs int `yaml:"countdown_secs"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix PACER_ and underscore-separated paths:
//
//	PACER_SERVER_HOST, PACER_SERVER_PORT,
//	PACER_DB_HOST, PACER_DB_PORT, PACER_DB_NAME,
//	PACER_DB_USER, PACER_DB_PASSWORD, PACER_DB_SSLMODE,
//	PACER_AUTH_API_KEY, PACER_TS_HOSTNAME, PACER_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaultDurations(&cfg.Defaults)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PACER_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PACER_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PACER_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("PACER_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("PACER_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("PACER_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("PACER_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PACER_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("PACER_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("PACER_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("PACER_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

// applyDefaultDurations fills unset fallback durations so plans can omit
// them entirely.
func applyDefaultDurations(d *DefaultsConfig) {
	if d.ExerciseSecs <= 0 {
		d.ExerciseSecs = 30
	}
	if d.BreakSecs <= 0 {
		d.BreakSecs = 10
	}
	if d.SetBreakSecs <= 0 {
		d.SetBreakSecs = 60
	}
	if d.CountdownSecs <= 0 {
		d.CountdownSecs = 5
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
