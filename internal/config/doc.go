// Package config defines configuration for the ssmirror CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (SSMIRROR_ prefix)
//   - YAML configuration file
//
// Flags take precedence over environment variables, which take precedence
// over the file, which takes precedence over built-in defaults.
package config
