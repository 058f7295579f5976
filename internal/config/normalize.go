package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeUnify()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.Document = strings.TrimSpace(c.Paths.Document); c.Paths.Document != "" {
		if c.Paths.Document, err = expandPath(c.Paths.Document); err != nil {
			return fmt.Errorf("paths.document: %w", err)
		}
	}
	if c.Paths.SVGDir = strings.TrimSpace(c.Paths.SVGDir); c.Paths.SVGDir != "" {
		if c.Paths.SVGDir, err = expandPath(c.Paths.SVGDir); err != nil {
			return fmt.Errorf("paths.svg_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeUnify() {
	c.Unify.Prefix = strings.TrimSpace(c.Unify.Prefix)
	if c.Unify.Prefix == "" {
		c.Unify.Prefix = defaultPrefix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
