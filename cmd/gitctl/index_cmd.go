package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/output"
	"github.com/raphi011/gitctl/internal/ui/static"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Show changed paths grouped by state",
		GroupID: GroupIndex,
		Args:    cobra.NoArgs,
		Long: `Show changed paths grouped by state (modified, new, deleted, untracked).

Other git state codes (renames, conflicts) are shown verbatim.`,
		Example: `  gitctl status
  gitctl status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			st, err := c.Status(ctx, dir, git.CallOptions{})
			if err != nil {
				return err
			}

			e, err := envFromContext(ctx)
			if err != nil {
				return err
			}
			out := output.FromContext(ctx)
			switch e.format {
			case "json":
				return out.JSON(st)
			case "plain":
				out.Print(static.FormatStatusPlain(st))
			default:
				out.Print(static.RenderTable(static.StatusHeaders, static.StatusRows(st)))
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "add <path> [-- git-options...]",
		Short:   "Stage a path",
		GroupID: GroupIndex,
		Args:    cobra.MinimumNArgs(1),
		Example: `  gitctl add README.md
  gitctl add . -- --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPathOp(cmd, args, opts, (*git.Client).Add)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newRmCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "rm <path> [-- git-options...]",
		Short:   "Remove a path from the index and working tree",
		GroupID: GroupIndex,
		Args:    cobra.MinimumNArgs(1),
		Example: `  gitctl rm old.txt
  gitctl rm build -- -r --cached`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPathOp(cmd, args, opts, (*git.Client).Rm)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

// runPathOp runs add or rm on exactly one path.
func runPathOp(cmd *cobra.Command, args []string, opts string, op func(*git.Client, context.Context, string, string, git.Opts, git.CallOptions) (string, error)) error {
	pos, extra := splitDash(cmd, args)
	if len(pos) != 1 {
		return fmt.Errorf("expected exactly one path")
	}
	ctx, c, dir, err := checkout(cmd)
	if err != nil {
		return err
	}
	o, err := gitOpts(opts, extra)
	if err != nil {
		return err
	}
	res, err := op(c, ctx, dir, pos[0], o, git.CallOptions{})
	if err != nil {
		return err
	}
	return printValue(ctx, "output", res)
}

func newCommitCmd() *cobra.Command {
	var (
		message string
		opts    string
	)

	cmd := &cobra.Command{
		Use:     "commit -m <message> [path] [-- git-options...]",
		Short:   "Record staged changes",
		GroupID: GroupIndex,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl commit -m "Update config"
  gitctl commit -m "Bump version" VERSION
  gitctl commit -m "Fixup" -- --amend --no-edit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 1 {
				return fmt.Errorf("accepts at most 1 path, received %d", len(pos))
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			co := git.CommitOptions{Opts: o}
			if len(pos) == 1 {
				co.Filename = pos[0]
			}
			res, err := c.Commit(ctx, dir, message, co)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	_ = cmd.MarkFlagRequired("message")
	addOptsFlag(cmd, &opts)

	return cmd
}
