package config

import "slices"

// MergeLocal merges a local per-checkout config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Fields not in LocalConfig (git_binary, ssh_wrapper, temp_dir, output)
	// are inherited from global as-is.
	merged := *global

	if local.User != "" {
		merged.User = local.User
	}

	// Identity replaces rather than appends: key order is the try order.
	if local.Identity != nil {
		merged.Identity = slices.Clone(local.Identity)
	} else {
		merged.Identity = slices.Clone(global.Identity)
	}

	if local.Verbose != nil {
		merged.Verbose = *local.Verbose
	}

	return &merged
}
