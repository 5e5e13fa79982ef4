package config

import (
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validatePresets(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return fmt.Errorf("server.bind must be set")
	}
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind %q: %w", c.Server.Bind, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}

func (c *Config) validatePresets() error {
	if c.Presets.JournalSize < 0 {
		return fmt.Errorf("presets.journal_size must not be negative (got %d)", c.Presets.JournalSize)
	}
	if c.Presets.DefaultFrameEnd < c.Presets.DefaultFrameStart {
		return fmt.Errorf("presets.default_frame_end (%d) is before default_frame_start (%d)",
			c.Presets.DefaultFrameEnd, c.Presets.DefaultFrameStart)
	}
	return nil
}
