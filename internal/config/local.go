package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-checkout override file at the repo root.
const LocalConfigFileName = ".gitctl.toml"

// LocalConfig holds per-checkout overrides from .gitctl.toml.
// Zero values mean "not set" (inherit from global).
type LocalConfig struct {
	User     string   `toml:"user"`
	Identity []string `toml:"identity"`
	Verbose  *bool    `toml:"verbose"`
}

// LoadLocal reads a per-checkout .gitctl.toml from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	identity, err := normalizeIdentity(local.Identity, configFile)
	if err != nil {
		return nil, err
	}
	local.Identity = identity

	return &local, nil
}

// defaultLocalConfig is the template for gitctl config init --local
const defaultLocalConfig = `# gitctl local config (per-checkout overrides)
# Place this file at the root of the git checkout.
# Settings here override ~/.config/gitctl/config.toml for this checkout only.

# user = "deploy"
# identity = ["/etc/gitctl/deploy_key"]
# verbose = true
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// InitLocal writes a .gitctl.toml template into repoPath.
// If force is true, overwrites an existing file.
func InitLocal(repoPath string, force bool) (string, error) {
	path := filepath.Join(repoPath, LocalConfigFileName)
	return path, writeDefault(path, defaultLocalConfig, force)
}
