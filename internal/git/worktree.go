package git

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/gitctl/internal/log"
)

// IsWorktree reports whether path lies inside a linked worktree, i.e. a
// checkout whose .git is a file pointing at an absolute gitdir. A path that is
// not inside any checkout is reported as false, not as an error.
func (c *Client) IsWorktree(ctx context.Context, path string, call CallOptions) (bool, error) {
	if err := checkAbs(path); err != nil {
		return false, err
	}
	call.IgnoreRetcode = true
	res, err := c.run(ctx, path, call, "rev-parse", "--show-toplevel")
	if err != nil {
		log.FromContext(ctx).Debug("not inside a checkout", "path", path)
		return false, nil
	}
	return hasWorktreeGitFile(filepath.Join(res.Stdout, ".git")), nil
}

// hasWorktreeGitFile reads only the first line of the .git file, which is
// all a worktree link holds.
func hasWorktreeGitFile(gitFile string) bool {
	f, err := os.Open(gitFile)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return false
	}
	label, path, ok := splitField(strings.TrimSpace(sc.Text()))
	return ok && label == "gitdir:" && filepath.IsAbs(path)
}

// WorktreeAddOptions configures WorktreeAdd.
type WorktreeAddOptions struct {
	CallOptions
	Branch      string // new branch, default base name of the worktree path
	Ref         string // start point
	ResetBranch bool   // -B instead of -b
	Force       bool
	Detach      bool // excludes Branch
	Opts        Opts
}

// WorktreeAdd creates a worktree at worktreePath from the checkout at cwd.
// git reports the checkout on stderr, which is what is returned.
func (c *Client) WorktreeAdd(ctx context.Context, cwd, worktreePath string, o WorktreeAddOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	if o.Branch != "" && o.Detach {
		return "", invalidArgf("Only one of 'branch' and 'detach' is allowed")
	}

	args := []string{"worktree", "add"}
	if o.Detach {
		if o.Force {
			log.FromContext(ctx).Warnf("'force' argument to worktree_add is ignored when detach is set")
		}
		args = append(args, "--detach")
	} else {
		branch := defaultString(o.Branch, filepath.Base(worktreePath))
		flag := "-b"
		if o.ResetBranch {
			flag = "-B"
		}
		args = append(args, flag, branch)
		if o.Force {
			args = append(args, "--force")
		}
	}
	args, err := withOpts(args, o.Opts)
	if err != nil {
		return "", err
	}
	args = append(args, worktreePath)
	if o.Ref != "" {
		args = append(args, o.Ref)
	}

	res, err := c.run(ctx, cwd, o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stderr, nil
}

// WorktreePruneOptions configures WorktreePrune.
type WorktreePruneOptions struct {
	CallOptions
	DryRun bool
	Quiet  bool   // drop --verbose
	Expire string // e.g. "3.months.ago"
	Opts   Opts
}

// WorktreePrune removes administrative data of worktrees that no longer exist.
func (c *Client) WorktreePrune(ctx context.Context, cwd string, o WorktreePruneOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args := []string{"worktree", "prune"}
	if o.DryRun {
		args = append(args, "--dry-run")
	}
	if !o.Quiet {
		args = append(args, "--verbose")
	}
	if o.Expire != "" {
		args = append(args, "--expire", o.Expire)
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

// WorktreeRm deletes the worktree directory at path recursively. This cannot
// be undone, and git's metadata about the worktree is left for
// WorktreePrune to clean up.
func (c *Client) WorktreeRm(ctx context.Context, path string, call CallOptions) error {
	if err := checkAbs(path); err != nil {
		return err
	}
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return lookupFailedf("%s does not exist", path)
	}

	ok, err := c.IsWorktree(ctx, path, call)
	if err != nil {
		return err
	}
	if !ok {
		return invalidArgf("%s is not a git worktree", path)
	}

	if err := os.RemoveAll(path); err != nil {
		return execFailed("Unable to remove "+path+": "+err.Error(), nil, err)
	}
	return nil
}
