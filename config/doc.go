// Package config loads service configuration from YAML, environment
// variables and defaults, in ascending precedence: defaults, then the
// config file, then KANADOJO_-prefixed environment variables.
//
// Credential fields (the translate API key, the auth token secret,
// API key values) pass through secret resolution, so they can be
// written as env:VAR or file:/path references instead of literals.
package config
