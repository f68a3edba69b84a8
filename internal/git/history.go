package git

import "context"

// RebaseOptions configures Rebase.
type RebaseOptions struct {
	CallOptions
	Rev  string // shell-split, default master
	Opts Opts
}

// Rebase runs `git rebase [opts] rev`.
func (c *Client) Rebase(ctx context.Context, cwd string, o RebaseOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args, err := withOpts([]string{"rebase"}, o.Opts)
	if err != nil {
		return "", err
	}
	rev, err := splitRev(defaultString(o.Rev, "master"))
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, o.CallOptions, append(args, rev...)...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// CheckoutOptions configures Checkout.
type CheckoutOptions struct {
	CallOptions
	Force bool // discards local changes
	Opts  Opts
}

// Checkout runs `git checkout rev`. rev is shell-split, so "-b topic" works.
// git reports the checkout on stderr, which is what is returned.
func (c *Client) Checkout(ctx context.Context, cwd, rev string, o CheckoutOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args := []string{"checkout"}
	if o.Force {
		args = append(args, "--force")
	}
	revArgs, err := splitRev(rev)
	if err != nil {
		return "", err
	}
	args, err = withOpts(append(args, revArgs...), o.Opts)
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stderr, nil
}

// MergeOptions configures Merge.
type MergeOptions struct {
	CallOptions
	Rev    string // empty merges the upstream branch
	Branch string // deprecated alias of Rev
	Opts   Opts
}

// Merge runs `git merge [rev] [opts]`.
func (c *Client) Merge(ctx context.Context, cwd string, o MergeOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args := []string{"merge"}
	if rev := deprecated(ctx, "merge", o.Rev, o.Branch, "rev", "branch"); rev != "" {
		args = append(args, rev)
	}
	args, err := withOpts(args, o.Opts)
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// Reset runs `git reset [opts]`. With --hard the discarded changes are gone
// for good.
func (c *Client) Reset(ctx context.Context, cwd string, opts Opts, call CallOptions) (string, error) {
	return c.simple(ctx, cwd, "reset", opts, call)
}

// Stash runs `git stash [opts]`.
func (c *Client) Stash(ctx context.Context, cwd string, opts Opts, call CallOptions) (string, error) {
	return c.simple(ctx, cwd, "stash", opts, call)
}

// simple runs `git <sub> [opts]` in cwd and returns stdout.
func (c *Client) simple(ctx context.Context, cwd, sub string, opts Opts, call CallOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args, err := withOpts([]string{sub}, opts)
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, call, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}
