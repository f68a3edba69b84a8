package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
)

func newCheckoutCmd() *cobra.Command {
	var (
		force bool
		opts  string
	)

	cmd := &cobra.Command{
		Use:     "checkout <rev> [-- git-options...]",
		Short:   "Switch to a branch, tag, or commit",
		GroupID: GroupHistory,
		Args:    cobra.MinimumNArgs(1),
		Long: `Switch the checkout to rev.

Several positional arguments are joined, so "topic origin/topic" is passed
to git as two words.`,
		Example: `  gitctl checkout main
  gitctl checkout v1.2 --force
  gitctl checkout main -- --quiet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) == 0 {
				return fmt.Errorf("missing revision")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			res, err := c.Checkout(ctx, dir, strings.Join(pos, " "), git.CheckoutOptions{Force: force, Opts: o})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Discard local changes")
	addOptsFlag(cmd, &opts)

	return cmd
}

func newMergeCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "merge [rev] [-- git-options...]",
		Short:   "Merge a revision into the current branch",
		GroupID: GroupHistory,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl merge                 # merge upstream
  gitctl merge origin/main -- --ff-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 1 {
				return fmt.Errorf("accepts at most 1 revision, received %d", len(pos))
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			mo := git.MergeOptions{Opts: o}
			if len(pos) == 1 {
				mo.Rev = pos[0]
			}
			res, err := c.Merge(ctx, dir, mo)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newRebaseCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "rebase [rev] [-- git-options...]",
		Short:   "Reapply commits on top of another base",
		GroupID: GroupHistory,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl rebase                # onto master
  gitctl rebase origin/main -- --autostash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			res, err := c.Rebase(ctx, dir, git.RebaseOptions{Rev: strings.Join(pos, " "), Opts: o})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newResetCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "reset [-- git-options...]",
		Short:   "Reset the current HEAD",
		GroupID: GroupHistory,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl reset -- --hard origin/main`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimple(cmd, args, opts, (*git.Client).Reset)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newStashCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "stash [-- git-options...]",
		Short:   "Stash local changes",
		GroupID: GroupHistory,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl stash
  gitctl stash -- pop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimple(cmd, args, opts, (*git.Client).Stash)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

// runSimple runs an operation that only takes options.
func runSimple(cmd *cobra.Command, args []string, opts string, op func(*git.Client, context.Context, string, git.Opts, git.CallOptions) (string, error)) error {
	pos, extra := splitDash(cmd, args)
	if len(pos) > 0 {
		return fmt.Errorf("unexpected arguments %v (pass git options after --)", pos)
	}
	ctx, c, dir, err := checkout(cmd)
	if err != nil {
		return err
	}
	o, err := gitOpts(opts, extra)
	if err != nil {
		return err
	}
	res, err := op(c, ctx, dir, o, git.CallOptions{})
	if err != nil {
		return err
	}
	return printValue(ctx, "output", res)
}
