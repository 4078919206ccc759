// Package config loads, normalizes, and validates absweep configuration from
// a TOML file with environment-variable overrides.
package config
