// Package config loads, normalizes, and validates tkkunify configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Always obtain settings through this
// package so downstream code receives sanitized paths, a canonical id
// prefix, and clear validation errors.
package config
