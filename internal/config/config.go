// Package config loads the deck code service configuration.
//
// Configuration comes from a single YAML file named by the --config flag or
// the DECKCODE_CONFIG environment variable. Without a file the defaults
// apply. PORT, when set, overrides the listen port.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "DECKCODE_CONFIG"

// Config is the top level configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	QR     QRConfig     `yaml:"qr"`
	Image  ImageConfig  `yaml:"image"`
	Share  ShareConfig  `yaml:"share"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

// QRConfig configures QR rendering of deck codes.
type QRConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
	// Level is the error recovery level: low, medium, high or highest.
	Level string `yaml:"level"`
}

// ImageConfig configures composed deck images.
type ImageConfig struct {
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	MaxCardImages int           `yaml:"max_card_images"`
}

// ShareConfig configures what a QR code points at.
type ShareConfig struct {
	// BaseURL is prepended to the deck code. Empty means the QR holds the bare code.
	BaseURL string `yaml:"base_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", Mode: "release"},
		QR:     QRConfig{DefaultSize: 400, MaxSize: 2048, Level: "medium"},
		Image:  ImageConfig{FetchTimeout: 10 * time.Second, MaxCardImages: 10},
	}
}

// Load reads the file at path over the defaults. An empty path falls back
// to DECKCODE_CONFIG, and to the defaults alone when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.QR.DefaultSize <= 0 {
		errs = append(errs, fmt.Errorf("qr.default_size must be positive, got %d", c.QR.DefaultSize))
	}
	if c.QR.MaxSize < c.QR.DefaultSize {
		errs = append(errs, fmt.Errorf("qr.max_size %d is below qr.default_size %d", c.QR.MaxSize, c.QR.DefaultSize))
	}
	switch strings.ToLower(c.QR.Level) {
	case "low", "medium", "high", "highest":
	default:
		errs = append(errs, fmt.Errorf("qr.level %q must be low, medium, high or highest", c.QR.Level))
	}
	if c.Image.FetchTimeout <= 0 {
		errs = append(errs, errors.New("image.fetch_timeout must be positive"))
	}
	if c.Image.MaxCardImages < 0 {
		errs = append(errs, errors.New("image.max_card_images cannot be negative"))
	}
	return errors.Join(errs...)
}

// ShareText is what a QR code for code should contain.
func (c *Config) ShareText(code string) string {
	return c.Share.BaseURL + code
}
