package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// OutputConfig holds output-related configuration
type OutputConfig struct {
	Format string `toml:"format" json:"format"` // "table", "plain" or "json"
}

// Config holds the gitctl configuration
type Config struct {
	GitBinary  string       `toml:"git_binary" json:"git_binary"`
	SSHWrapper string       `toml:"ssh_wrapper" json:"ssh_wrapper,omitempty"` // custom GIT_SSH wrapper template
	TempDir    string       `toml:"temp_dir" json:"temp_dir,omitempty"`       // where wrapper scripts are written
	User       string       `toml:"user" json:"user,omitempty"`               // default OS user to run git as
	Identity   []string     `toml:"identity" json:"identity,omitempty"`       // default private keys, tried in order
	Verbose    bool         `toml:"verbose" json:"verbose"`
	Output     OutputConfig `toml:"output" json:"output"`
}

// DefaultGitBinary is the git executable used when none is configured
const DefaultGitBinary = "git"

// DefaultOutputFormat is used when output.format is not set
const DefaultOutputFormat = "table"

// Default returns the default configuration
func Default() Config {
	return Config{
		GitBinary: DefaultGitBinary,
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	// Allow ~ paths
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the global config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitctl", "config.toml"), nil
}

// Load reads config from ~/.config/gitctl/config.toml and applies
// environment overrides.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		applyEnv(&cfg)
		return cfg, nil
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadFrom reads config from the given file.
// A missing file yields Default() without error.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.normalize(""); err != nil {
		return Default(), err
	}

	// Use defaults for empty values
	if cfg.GitBinary == "" {
		cfg.GitBinary = DefaultGitBinary
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	return cfg, nil
}

// normalize validates path-valued and enum settings and expands ~.
// contextInfo names the file in error messages when non-empty.
func (c *Config) normalize(contextInfo string) error {
	suffix := ""
	if contextInfo != "" {
		suffix = " in " + contextInfo
	}

	for _, f := range []struct {
		name string
		ptr  *string
	}{
		{"ssh_wrapper", &c.SSHWrapper},
		{"temp_dir", &c.TempDir},
	} {
		if err := ValidatePath(*f.ptr, f.name); err != nil {
			return fmt.Errorf("%w%s", err, suffix)
		}
		expanded, err := expandPath(*f.ptr)
		if err != nil {
			return fmt.Errorf("expand %s: %w", f.name, err)
		}
		*f.ptr = expanded
	}

	identity, err := normalizeIdentity(c.Identity, contextInfo)
	if err != nil {
		return err
	}
	c.Identity = identity

	if err := validateEnum(c.Output.Format, "output.format", ValidOutputFormats); err != nil {
		return fmt.Errorf("%w%s", err, suffix)
	}
	return nil
}

// normalizeIdentity validates and expands a list of private key paths.
func normalizeIdentity(keys []string, contextInfo string) ([]string, error) {
	if keys == nil {
		return nil, nil
	}
	out := make([]string, 0, len(keys))
	for i, key := range keys {
		field := fmt.Sprintf("identity[%d]", i)
		if key == "" {
			return nil, withContext(fmt.Errorf("%s must not be empty", field), contextInfo)
		}
		if err := ValidatePath(key, field); err != nil {
			return nil, withContext(err, contextInfo)
		}
		expanded, err := expandPath(key)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", field, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

func withContext(err error, contextInfo string) error {
	if contextInfo == "" {
		return err
	}
	return fmt.Errorf("%w in %s", err, contextInfo)
}

// Environment variables overriding file settings.
const (
	EnvGitBinary = "GITCTL_GIT_BINARY"
	EnvTempDir   = "GITCTL_TEMP_DIR"
)

// applyEnv overlays environment overrides onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvGitBinary); v != "" {
		cfg.GitBinary = v
	}
	if v := os.Getenv(EnvTempDir); v != "" {
		cfg.TempDir = v
	}
}

// WrapperTemplate returns the contents of the configured ssh_wrapper file,
// or nil when the built-in wrapper should be used.
func (c *Config) WrapperTemplate() ([]byte, error) {
	if c.SSHWrapper == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.SSHWrapper)
	if err != nil {
		return nil, fmt.Errorf("read ssh_wrapper: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ssh_wrapper %s is empty", c.SSHWrapper)
	}
	return data, nil
}

const defaultConfig = `# gitctl configuration

# git executable to run (overridden by GITCTL_GIT_BINARY)
# git_binary = "git"

# OS user to run git as when a command doesn't pass --user.
# Switching users requires running gitctl as root.
# user = "deploy"

# Private keys tried in order for network operations (clone, fetch, pull,
# push, submodule, ls-remote) when a command doesn't pass --identity.
# Must be absolute paths or start with ~
# identity = ["~/.ssh/id_ed25519", "/etc/gitctl/deploy_key"]

# Custom GIT_SSH wrapper script. The key path is passed in $GIT_IDENTITY.
# Leave unset to use the built-in wrapper.
# ssh_wrapper = "/etc/gitctl/ssh-wrapper.sh"

# Directory for the short-lived wrapper scripts (overridden by GITCTL_TEMP_DIR)
# temp_dir = "/var/tmp"

# Log every git invocation to stderr
# verbose = false

# Output settings
# [output]
# format = "table"  # table, plain, or json
`

// Init creates a default config file at ~/.config/gitctl/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, writeDefault(path, defaultConfig, force)
}

func writeDefault(path, content string, force bool) error {
	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temp file, then rename so readers never see a partial file
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(content), 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}
