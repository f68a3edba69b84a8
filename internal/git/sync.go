package git

import "context"

// FetchOptions configures Fetch.
type FetchOptions struct {
	CallOptions
	Remote   string // empty fetches git's default remote
	Opts     Opts
	Identity []string
}

// Fetch runs `git fetch [remote] [opts]`.
func (c *Client) Fetch(ctx context.Context, cwd string, o FetchOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args := []string{"fetch"}
	if o.Remote != "" {
		args = append(args, o.Remote)
	}
	args, err := withOpts(args, o.Opts)
	if err != nil {
		return "", err
	}
	res, err := c.runAuth(ctx, cwd, o.CallOptions, o.Identity, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// PullOptions configures Pull.
type PullOptions struct {
	CallOptions
	Opts     Opts
	Identity []string
}

// Pull runs `git pull [opts]`.
func (c *Client) Pull(ctx context.Context, cwd string, o PullOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args, err := withOpts([]string{"pull"}, o.Opts)
	if err != nil {
		return "", err
	}
	res, err := c.runAuth(ctx, cwd, o.CallOptions, o.Identity, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// PushOptions configures Push.
type PushOptions struct {
	CallOptions
	Remote   string
	Ref      string // requires Remote
	Branch   string // deprecated alias of Ref
	Opts     Opts
	Identity []string
}

// Push runs `git push [opts] [remote [ref]]`.
func (c *Client) Push(ctx context.Context, cwd string, o PushOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	ref := deprecated(ctx, "push", o.Ref, o.Branch, "ref", "branch")
	if ref != "" && o.Remote == "" {
		return "", invalidArgf("A ref can only be pushed to a named remote")
	}

	args, err := withOpts([]string{"push"}, o.Opts)
	if err != nil {
		return "", err
	}
	if o.Remote != "" {
		args = append(args, o.Remote)
	}
	if ref != "" {
		args = append(args, ref)
	}
	res, err := c.runAuth(ctx, cwd, o.CallOptions, o.Identity, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// LsRemoteOptions configures LsRemote.
type LsRemoteOptions struct {
	CallOptions
	Remote    string // remote name or URL, default origin
	Ref       string // default master
	Opts      Opts
	Identity  []string
	HTTPSUser string
	HTTPSPass string
}

// LsRemote returns the object ids matching ref on the remote, one per line.
// cwd may be empty when Remote is a URL.
func (c *Client) LsRemote(ctx context.Context, cwd string, o LsRemoteOptions) (string, error) {
	if cwd != "" {
		if err := checkAbs(cwd); err != nil {
			return "", err
		}
	}
	remote, err := addHTTPBasicAuth(defaultString(o.Remote, "origin"), o.HTTPSUser, o.HTTPSPass)
	if err != nil {
		return "", err
	}
	args, err := withOpts([]string{"ls-remote"}, o.Opts)
	if err != nil {
		return "", err
	}
	args = append(args, remote, defaultString(o.Ref, "master"))

	res, err := c.runAuth(ctx, cwd, o.CallOptions, o.Identity, args...)
	if err != nil {
		return "", err
	}
	return parseLsRemote(res.Stdout), nil
}
