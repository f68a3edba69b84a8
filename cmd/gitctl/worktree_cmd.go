package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/output"
)

func newWorktreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "worktree",
		Short:   "Manage linked worktrees",
		Aliases: []string{"wt"},
		GroupID: GroupWorktree,
		Example: `  gitctl worktree add /srv/app-hotfix --ref v1.2
  gitctl worktree check /srv/app-hotfix
  gitctl worktree rm /srv/app-hotfix
  gitctl worktree prune --dry-run`,
	}

	cmd.AddCommand(newWorktreeAddCmd())
	cmd.AddCommand(newWorktreePruneCmd())
	cmd.AddCommand(newWorktreeRmCmd())
	cmd.AddCommand(newWorktreeCheckCmd())

	return cmd
}

func newWorktreeAddCmd() *cobra.Command {
	var (
		o    git.WorktreeAddOptions
		opts string
	)

	cmd := &cobra.Command{
		Use:   "add <path> [-- git-options...]",
		Short: "Create a worktree",
		Args:  cobra.MinimumNArgs(1),
		Long: `Create a worktree at path from the checkout at --dir.

A new branch named after the last path element is created unless --branch
or --detach is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) != 1 {
				return fmt.Errorf("expected exactly one path")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			path, err := absPath(ctx, pos[0])
			if err != nil {
				return err
			}
			if o.Opts, err = gitOpts(opts, extra); err != nil {
				return err
			}
			res, err := c.WorktreeAdd(ctx, dir, path, o)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	cmd.Flags().StringVarP(&o.Branch, "branch", "b", "", "Branch to create (default: last path element)")
	cmd.Flags().StringVar(&o.Ref, "ref", "", "Start point")
	cmd.Flags().BoolVarP(&o.ResetBranch, "reset-branch", "B", false, "Reset the branch if it exists")
	cmd.Flags().BoolVarP(&o.Force, "force", "f", false, "Check out even if the branch is used elsewhere")
	cmd.Flags().BoolVar(&o.Detach, "detach", false, "Detach HEAD instead of creating a branch")
	cmd.MarkFlagsMutuallyExclusive("branch", "detach")
	addOptsFlag(cmd, &opts)

	return cmd
}

func newWorktreePruneCmd() *cobra.Command {
	var (
		o    git.WorktreePruneOptions
		opts string
	)

	cmd := &cobra.Command{
		Use:   "prune [-- git-options...]",
		Short: "Remove data of worktrees that no longer exist",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 0 {
				return fmt.Errorf("unexpected arguments %v (pass git options after --)", pos)
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			if o.Opts, err = gitOpts(opts, extra); err != nil {
				return err
			}
			res, err := c.WorktreePrune(ctx, dir, o)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	cmd.Flags().BoolVarP(&o.DryRun, "dry-run", "n", false, "Only report what would be removed")
	cmd.Flags().BoolVar(&o.Quiet, "no-verbose", false, "Don't pass --verbose to git")
	cmd.Flags().StringVar(&o.Expire, "expire", "", "Only prune worktrees older than this (e.g. 3.months.ago)")
	addOptsFlag(cmd, &opts)

	return cmd
}

func newWorktreeRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>",
		Short:   "Delete a linked worktree directory",
		Aliases: []string{"remove"},
		Args:    cobra.ExactArgs(1),
		Long: `Delete the linked worktree at path, including uncommitted changes.

Refuses paths that are not linked worktrees. Run 'gitctl worktree prune'
in the main checkout afterwards to drop git's record of it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, err := absPath(ctx, args[0])
			if err != nil {
				return err
			}
			ctx, c, err := clientFor(ctx, path)
			if err != nil {
				return err
			}
			if err := c.WorktreeRm(ctx, path, git.CallOptions{}); err != nil {
				return err
			}
			return printDone(ctx, "Removed "+path)
		},
	}
}

func newWorktreeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Report whether path is a linked worktree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, err := absPath(ctx, args[0])
			if err != nil {
				return err
			}
			ctx, c, err := clientFor(ctx, path)
			if err != nil {
				return err
			}
			ok, err := c.IsWorktree(ctx, path, git.CallOptions{})
			if err != nil {
				return err
			}
			e, err := envFromContext(ctx)
			if err != nil {
				return err
			}
			out := output.FromContext(ctx)
			if e.format == "json" {
				return out.JSON(map[string]bool{"worktree": ok})
			}
			out.Println(strconv.FormatBool(ok))
			return nil
		},
	}
}
