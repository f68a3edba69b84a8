package git

import "context"

// Status returns the working tree changes of cwd grouped by state.
func (c *Client) Status(ctx context.Context, cwd string, call CallOptions) (Status, error) {
	if err := checkAbs(cwd); err != nil {
		return nil, err
	}
	res, err := c.run(ctx, cwd, call, "status", "-z", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseStatus(res.Stdout), nil
}

// Add stages filename and returns git's list of added paths. --verbose is
// always passed, so -v/--verbose in opts are dropped.
func (c *Client) Add(ctx context.Context, cwd, filename string, opts Opts, call CallOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	extra, err := FormatOpts(opts)
	if err != nil {
		return "", err
	}
	args := []string{"add", "--verbose"}
	for _, arg := range extra {
		if arg != "-v" && arg != "--verbose" {
			args = append(args, arg)
		}
	}
	args = append(args, "--", filename)

	res, err := c.run(ctx, cwd, call, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// Rm removes filename from the index and the working tree.
func (c *Client) Rm(ctx context.Context, cwd, filename string, opts Opts, call CallOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args, err := withOpts([]string{"rm"}, opts)
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, call, append(args, "--", filename)...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// CommitOptions configures Commit.
type CommitOptions struct {
	CallOptions
	Opts     Opts
	Filename string // commit only this path
}

// Commit records the staged changes (or Filename) with message.
func (c *Client) Commit(ctx context.Context, cwd, message string, o CommitOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args, err := withOpts([]string{"commit", "-m", message}, o.Opts)
	if err != nil {
		return "", err
	}
	if o.Filename != "" {
		args = append(args, "--", o.Filename)
	}
	res, err := c.run(ctx, cwd, o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}
