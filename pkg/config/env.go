package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvPort          = "PORT"
	EnvPrintmockPort = "PRINTMOCK_PORT"
	EnvConfig        = "PRINTMOCK_CONFIG"
	EnvLogLevel      = "PRINTMOCK_LOG_LEVEL"
	EnvLogFormat     = "PRINTMOCK_LOG_FORMAT"
	EnvLogFile       = "PRINTMOCK_LOG_FILE"
	EnvSlicerDelay   = "PRINTMOCK_SLICER_DELAY"
	EnvIDStrategy    = "PRINTMOCK_ID_STRATEGY"
	EnvMaxLogEntries = "PRINTMOCK_MAX_LOG_ENTRIES"
)

// ApplyEnv overrides c with environment variables found by lookup.
// PRINTMOCK_PORT takes precedence over PORT. PRINTMOCK_SLICER_DELAY sets
// both slicer bounds to the same duration.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	for _, key := range []string{EnvPort, EnvPrintmockPort} {
		if v, ok := get(key); ok {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: invalid port %q", key, v)
			}
			c.Server.Port = port
		}
	}
	if v, ok := get(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := get(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := get(EnvSlicerDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSlicerDelay, err)
		}
		c.Slicer.MinDelay, c.Slicer.MaxDelay = d, d
	}
	if v, ok := get(EnvIDStrategy); ok {
		c.Orders.IDStrategy = v
	}
	if v, ok := get(EnvMaxLogEntries); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", EnvMaxLogEntries, v)
		}
		c.RequestLog.MaxEntries = n
	}
	return c.Validate()
}
