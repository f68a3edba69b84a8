package git

import "context"

// ListBranches returns local branch names, or remote-tracking ones when
// remote is set.
func (c *Client) ListBranches(ctx context.Context, cwd string, remote bool, call CallOptions) ([]string, error) {
	ns := "refs/heads/"
	if remote {
		ns = "refs/remotes/"
	}
	return c.listRefs(ctx, cwd, ns, call)
}

// ListTags returns all tag names.
func (c *Client) ListTags(ctx context.Context, cwd string, call CallOptions) ([]string, error) {
	return c.listRefs(ctx, cwd, "refs/tags/", call)
}

func (c *Client) listRefs(ctx context.Context, cwd, ns string, call CallOptions) ([]string, error) {
	if err := checkAbs(cwd); err != nil {
		return nil, err
	}
	res, err := c.run(ctx, cwd, call, "for-each-ref", "--format", "%(refname:short)", ns)
	if err != nil {
		return nil, err
	}
	return parseLines(res.Stdout), nil
}

// Branch runs `git branch [opts] name`, e.g. to create, rename (-m) or
// delete (-d) a branch.
func (c *Client) Branch(ctx context.Context, cwd, name string, opts Opts, call CallOptions) error {
	if err := checkAbs(cwd); err != nil {
		return err
	}
	args, err := withOpts([]string{"branch"}, opts)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, cwd, call, append(args, name)...)
	return err
}
