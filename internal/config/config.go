package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rpggio/workbench/internal/dates"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
	Activity  ActivityConfig  `yaml:"activity"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode           string        `yaml:"mode"` // "stdio" or "http"
	Stateless      bool          `yaml:"stateless"`
	SessionTimeout time.Duration `yaml:"session_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type SeedConfig struct {
	// ReferenceDate anchors generated data; empty means today.
	ReferenceDate string `yaml:"reference_date"`
	// Timezone is an IANA name; empty means the host zone.
	Timezone string `yaml:"timezone"`
}

// ErrHelp is returned by Load when -h or --help was given.
var ErrHelp = pflag.ErrHelp

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode:           "stdio",
			SessionTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Activity: ActivityConfig{
			Enabled: true,
			Path:    ":memory:",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// WORKBENCH_* environment variables and finally command-line flags.
func Load(args []string) (Config, error) {
	cfg := Default()

	flagSet, flags := newFlagSet()
	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintf(os.Stderr, "Usage of workbench:\n%s", flagSet.FlagUsages())
		return Config{}, ErrHelp
	}

	path := os.Getenv("WORKBENCH_CONFIG_PATH")
	if flagSet.Changed("config") {
		path = flags.configPath
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	flags.apply(flagSet, &cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q: want stdio or http", c.Transport.Mode)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Seed.ReferenceDate != "" {
		if _, err := dates.Normalize(c.Seed.ReferenceDate); err != nil {
			return fmt.Errorf("seed reference date: %w", err)
		}
	}
	if _, err := c.Seed.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (s SeedConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Reference returns the seed anchor day in loc, falling back to now.
func (s SeedConfig) Reference(now time.Time, loc *time.Location) (time.Time, error) {
	if s.ReferenceDate == "" {
		return dates.StartOfDay(now.In(loc)), nil
	}
	return dates.Parse(s.ReferenceDate, loc)
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("WORKBENCH_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WORKBENCH_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid WORKBENCH_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("WORKBENCH_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if v := os.Getenv("WORKBENCH_STATELESS"); v != "" {
		stateless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid WORKBENCH_STATELESS: %w", err)
		}
		cfg.Transport.Stateless = stateless
	}
	if level := os.Getenv("WORKBENCH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("WORKBENCH_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if dbPath := os.Getenv("WORKBENCH_ACTIVITY_DB"); dbPath != "" {
		cfg.Activity.Path = dbPath
	}
	if v := os.Getenv("WORKBENCH_ACTIVITY_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid WORKBENCH_ACTIVITY_ENABLED: %w", err)
		}
		cfg.Activity.Enabled = enabled
	}
	if date := os.Getenv("WORKBENCH_SEED_DATE"); date != "" {
		cfg.Seed.ReferenceDate = date
	}
	if tz := os.Getenv("WORKBENCH_TIMEZONE"); tz != "" {
		cfg.Seed.Timezone = tz
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// IsHelp reports whether err came from a help request.
func IsHelp(err error) bool {
	return errors.Is(err, ErrHelp)
}
