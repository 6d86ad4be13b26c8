// Package config loads the viewer configuration: defaults, then an optional
// YAML file, then a .env file and COULOMB_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/core/scene"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const envPrefix = "COULOMB_"

type Config struct {
	// Preset selects the slider ranges: "web" or "desktop".
	Preset string        `yaml:"preset"`
	Server ServerConfig  `yaml:"server"`
	Log    LogConfig     `yaml:"log"`
	Render scene.Options `yaml:"render"`
	// Controls, when set, replace the preset's slider specs.
	Controls []interaction.Control `yaml:"controls,omitempty"`
}

type ServerConfig struct {
	ListenAddr     string `yaml:"listen_addr"`
	MaxSessions    int    `yaml:"max_sessions"`
	MaxMessageSize int64  `yaml:"max_message_size"`
	// MessageRate caps client messages per second per session.
	MessageRate   int           `yaml:"max_messages_per_second"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	PingInterval  time.Duration `yaml:"ping_interval"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	// File redirects log output away from stderr.
	File string `yaml:"file"`
}

func Default() Config {
	return Config{
		Preset: interaction.PresetWeb,
		Server: ServerConfig{
			ListenAddr:     "127.0.0.1:8080",
			MaxSessions:    256,
			MaxMessageSize: 4 << 10,
			MessageRate:    120,
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   10 * time.Second,
			PingInterval:   25 * time.Second,
			ShutdownGrace:  5 * time.Second,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Render: scene.DefaultOptions(),
	}
}

// Load builds the configuration. path may be empty; a missing .env is ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err = cfg.decode(f); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Parse decodes YAML over the defaults without touching the environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays COULOMB_* variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("PRESET", &c.Preset)
	str("LISTEN_ADDR", &c.Server.ListenAddr)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_ENCODING", &c.Log.Encoding)
	str("LOG_FILE", &c.Log.File)

	if v, ok := lookup(envPrefix + "MAX_SESSIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_SESSIONS=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Server.MaxSessions = n
	}
	if v, ok := lookup(envPrefix + "SHOW_FORMULA"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sSHOW_FORMULA=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Render.ShowFormula = b
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.ResolvePreset(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	if strings.TrimSpace(c.Server.ListenAddr) == "" {
		return fmt.Errorf("%w: server.listen_addr is empty", ErrInvalidConfig)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("%w: server.max_sessions must be positive", ErrInvalidConfig)
	}
	if c.Server.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: server.max_message_size must be positive", ErrInvalidConfig)
	}
	if c.Server.MessageRate <= 0 {
		return fmt.Errorf("%w: server.max_messages_per_second must be positive", ErrInvalidConfig)
	}
	if c.Server.PingInterval <= 0 || c.Server.ReadTimeout <= c.Server.PingInterval {
		return fmt.Errorf("%w: server.read_timeout must exceed server.ping_interval", ErrInvalidConfig)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server.write_timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.ShutdownGrace <= 0 {
		return fmt.Errorf("%w: server.shutdown_grace must be positive", ErrInvalidConfig)
	}
	if c.Render.ArrowScale < 0 {
		return fmt.Errorf("%w: render.arrow_scale is negative", ErrInvalidConfig)
	}
	return nil
}

// ResolvePreset returns the named preset with any control overrides applied.
func (c Config) ResolvePreset() (interaction.Preset, error) {
	p, err := interaction.PresetByName(c.Preset)
	if err != nil {
		return p, err
	}
	for _, override := range c.Controls {
		replaced := false
		for i := range p.Controls {
			if p.Controls[i].ID == override.ID {
				if override.Label == "" {
					override.Label = p.Controls[i].Label
				}
				p.Controls[i] = override
				replaced = true
			}
		}
		if !replaced {
			return p, fmt.Errorf("%w: %q", interaction.ErrUnknownControl, override.ID)
		}
	}
	return p, p.Validate()
}

// Logger builds the zap-backed logger described by the log section.
func (c Config) Logger() (*log.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := log.Options{Encoding: c.Log.Encoding}
	if c.Log.File != "" {
		opts.OutputPaths = []string{c.Log.File}
	}
	return log.New(level, opts)
}
