package config

import "errors"

// Validate ensures the configuration is usable. Document and SVG directory
// are validated by the commands that need them, because both may also arrive
// via flags.
func (c *Config) Validate() error {
	if c.Unify.Prefix == "" {
		return errors.New("unify.prefix must not be empty")
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
