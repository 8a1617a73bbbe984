// Package config loads and validates linkkeeper configuration.
//
// Configuration is YAML with ${VAR} environment expansion. Zero-valued
// optional fields receive defaults before validation.
package config
