package git

import (
	"context"
	"path/filepath"

	"github.com/raphi011/gitctl/internal/log"
)

// ConfigSetOptions configures ConfigSet.
type ConfigSetOptions struct {
	CallOptions
	IsGlobal bool // deprecated, pass cwd "global" instead
}

// ConfigSet sets key to value in the checkout at cwd, or in the user's global
// config when cwd is "global".
func (c *Client) ConfigSet(ctx context.Context, cwd, key, value string, o ConfigSetOptions) (string, error) {
	if o.IsGlobal {
		log.FromContext(ctx).Warnf("The 'is_global' argument to config_set is deprecated, please pass 'global' as cwd instead")
		cwd = globalScope
	}
	args, dir, err := configScope(cwd, "Path must be either 'global' or an absolute path to a git checkout")
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, dir, o.CallOptions, append(append([]string{"config"}, args...), key, value)...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// ConfigGet reads key from the checkout at cwd, or from the global config
// when cwd is "global".
func (c *Client) ConfigGet(ctx context.Context, cwd, key string, call CallOptions) (string, error) {
	args, dir, err := configScope(cwd, "The cwd must be either 'global' or an absolute path to a git checkout")
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, dir, call, append(append([]string{"config", "--get"}, args...), key)...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// configScope maps cwd to the scope flag and working directory to use.
func configScope(cwd, msg string) (args []string, dir string, err error) {
	if cwd == globalScope {
		return []string{"--global"}, "", nil
	}
	if !filepath.IsAbs(cwd) {
		return nil, "", invalidArgf("%s", msg)
	}
	return nil, cwd, nil
}
