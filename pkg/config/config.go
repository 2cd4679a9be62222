package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/printmock/internal/id"
)

// Defaults.
const (
	DefaultPort            = 4000
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSlicerMinDelay  = 2 * time.Second
	DefaultSlicerMaxDelay  = 5 * time.Second
	DefaultMaxLogEntries   = 1000
	DefaultWebhookTimeout  = 10 * time.Second
	DefaultUserAgent       = "Slant3D-Mock-API/1.0"
)

// Config is the complete server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server"`
	Log        LogConfig        `yaml:"log" json:"log"`
	Slicer     SlicerConfig     `yaml:"slicer" json:"slicer"`
	Orders     OrdersConfig     `yaml:"orders" json:"orders"`
	RequestLog RequestLogConfig `yaml:"requestLog" json:"requestLog"`
	Webhooks   WebhooksConfig   `yaml:"webhooks" json:"webhooks"`
	CORS       CORSConfig       `yaml:"cors" json:"cors"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" json:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// SlicerConfig bounds the simulated slicing delay.
type SlicerConfig struct {
	MinDelay time.Duration `yaml:"minDelay" json:"minDelay"`
	MaxDelay time.Duration `yaml:"maxDelay" json:"maxDelay"`
}

// OrdersConfig configures order creation.
type OrdersConfig struct {
	// IDStrategy selects how POST /api/order allocates IDs: "random"
	// (10-digit, default) or "sequential" (store counter).
	IDStrategy string `yaml:"idStrategy" json:"idStrategy"`
}

// RequestLogConfig configures the request-log ledger.
type RequestLogConfig struct {
	MaxEntries int `yaml:"maxEntries" json:"maxEntries"`
}

// WebhooksConfig configures webhook test delivery.
type WebhooksConfig struct {
	TestTimeout time.Duration `yaml:"testTimeout" json:"testTimeout"`
	UserAgent   string        `yaml:"userAgent" json:"userAgent"`
}

// CORSConfig configures cross-origin access.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" json:"allowedOrigins"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Slicer: SlicerConfig{
			MinDelay: DefaultSlicerMinDelay,
			MaxDelay: DefaultSlicerMaxDelay,
		},
		Orders:     OrdersConfig{IDStrategy: string(id.StrategyRandom)},
		RequestLog: RequestLogConfig{MaxEntries: DefaultMaxLogEntries},
		Webhooks: WebhooksConfig{
			TestTimeout: DefaultWebhookTimeout,
			UserAgent:   DefaultUserAgent,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Validate checks cross-field constraints not expressible in the schema.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}
	if c.Slicer.MinDelay < 0 {
		errs = append(errs, errors.New("slicer.minDelay: must not be negative"))
	}
	if c.Slicer.MaxDelay < c.Slicer.MinDelay {
		errs = append(errs, fmt.Errorf("slicer.maxDelay: %s is less than minDelay %s", c.Slicer.MaxDelay, c.Slicer.MinDelay))
	}
	if c.RequestLog.MaxEntries < 1 {
		errs = append(errs, errors.New("requestLog.maxEntries: must be at least 1"))
	}
	switch id.Strategy(c.Orders.IDStrategy) {
	case id.StrategyRandom, id.StrategySequential:
	default:
		errs = append(errs, fmt.Errorf("orders.idStrategy: unknown strategy %q", c.Orders.IDStrategy))
	}
	if c.Webhooks.TestTimeout <= 0 {
		errs = append(errs, errors.New("webhooks.testTimeout: must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
