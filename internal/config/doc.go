// Package config defines the configuration for the default scheduler and the
// library's logging defaults, loaded from environment variables and optional
// config files.
package config
