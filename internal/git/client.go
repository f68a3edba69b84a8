package git

import (
	"context"

	"github.com/raphi011/gitctl/internal/cmd"
	"github.com/raphi011/gitctl/internal/log"
)

// Client exposes git operations with structured results.
type Client struct {
	runner   *Runner
	user     string
	identity []string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithUser sets the OS user operations run as when a call doesn't name one.
func WithUser(name string) ClientOption {
	return func(c *Client) {
		c.user = name
	}
}

// WithIdentity sets the private keys used by network operations when a call
// leaves Identity nil.
func WithIdentity(keys ...string) ClientOption {
	return func(c *Client) {
		c.identity = keys
	}
}

// NewClient returns a Client running git through r.
func NewClient(r *Runner, opts ...ClientOption) *Client {
	c := &Client{runner: r}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CallOptions are accepted by every operation.
type CallOptions struct {
	User          string // run as this OS user
	IgnoreRetcode bool   // don't log a failing git run (it is still returned)
}

// run executes git without identities.
func (c *Client) run(ctx context.Context, dir string, call CallOptions, args ...string) (cmd.Result, error) {
	return c.runner.Run(ctx, args, c.runOptions(dir, call, []string{}))
}

// runAuth executes git with the given identities. A nil slice falls back to
// the client's default identities; an empty one runs without any.
func (c *Client) runAuth(ctx context.Context, dir string, call CallOptions, identity []string, args ...string) (cmd.Result, error) {
	if identity == nil {
		identity = c.identity
	}
	return c.runner.Run(ctx, args, c.runOptions(dir, call, identity))
}

func (c *Client) runOptions(dir string, call CallOptions, identity []string) RunOptions {
	user := call.User
	if user == "" {
		user = c.user
	}
	return RunOptions{
		Dir:           dir,
		User:          user,
		Identity:      identity,
		IgnoreRetcode: call.IgnoreRetcode,
	}
}

// Version returns the installed git version. See [Runner.Version].
func (c *Client) Version(ctx context.Context, call CallOptions) string {
	return c.runner.Version(ctx, c.runOptions("", call, nil).User)
}

// VersionInfo returns the installed git version split into components.
func (c *Client) VersionInfo(ctx context.Context, call CallOptions) VersionInfo {
	return c.runner.VersionInfo(ctx, c.runOptions("", call, nil).User)
}

// deprecated resolves a legacy parameter alias. The canonical value wins when
// both are set.
func deprecated(ctx context.Context, op, canonical, legacy, canonicalName, legacyName string) string {
	if legacy == "" {
		return canonical
	}
	log.FromContext(ctx).Warnf("The '%s' argument to %s is deprecated, please use '%s' instead", legacyName, op, canonicalName)
	if canonical != "" {
		return canonical
	}
	return legacy
}

// withOpts appends the formatted opts to args.
func withOpts(args []string, o Opts) ([]string, error) {
	extra, err := FormatOpts(o)
	if err != nil {
		return nil, err
	}
	return append(args, extra...), nil
}
