// Package config defines the application configuration structure and
// loading logic. Configuration is sourced from an optional YAML file and
// environment variables, with the environment taking precedence.
package config
