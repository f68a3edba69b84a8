// Package config handles loading and validation of gitctl configuration.
//
// Configuration is read from ~/.config/gitctl/config.toml with environment
// variable overrides for the git binary and the temp directory.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--user, --identity, --verbose, --json)
//   - GITCTL_GIT_BINARY and GITCTL_TEMP_DIR env vars
//   - .gitctl.toml at the root of the checkout being operated on
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - git_binary: git executable (default: "git")
//   - user: OS user to run git as
//   - identity: private keys tried in order for network operations
//   - ssh_wrapper: custom GIT_SSH wrapper template
//   - temp_dir: where wrapper scripts are written
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
