package main

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/log"
)

func newInitCmd() *cobra.Command {
	var (
		bare           bool
		template       string
		separateGitDir string
		shared         string
		opts           string
	)

	cmd := &cobra.Command{
		Use:     "init [path] [-- git-options...]",
		Short:   "Create a repository",
		GroupID: GroupRepo,
		Args:    cobra.ArbitraryArgs,
		Long: `Create an empty git repository at path (default: --dir).

--shared accepts a git value (group, all, umask, ...), an octal permission
(e.g. 660), or true/false.`,
		Example: `  gitctl init /srv/repo
  gitctl init /srv/repo.git --bare --shared group`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 1 {
				return fmt.Errorf("accepts at most 1 path, received %d", len(pos))
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			if len(pos) == 1 {
				if dir, err = absPath(ctx, pos[0]); err != nil {
					return err
				}
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			res, err := c.Init(ctx, dir, git.InitOptions{
				Bare:           bare,
				Template:       template,
				SeparateGitDir: separateGitDir,
				Shared:         parseShared(shared),
				Opts:           o,
			})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "Create a bare repository")
	cmd.Flags().StringVar(&template, "template", "", "Template directory")
	cmd.Flags().StringVar(&separateGitDir, "separate-git-dir", "", "Place the git directory here")
	cmd.Flags().StringVar(&shared, "shared", "", "Share the repository (group, all, 660, true, ...)")
	addOptsFlag(cmd, &opts)

	return cmd
}

// parseShared maps the --shared flag onto the tagged git.Shared value.
func parseShared(s string) git.Shared {
	switch s {
	case "":
		return git.Shared{}
	case "true":
		return git.SharedFlag(true)
	case "false":
		return git.SharedFlag(false)
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return git.SharedPerm(n)
	}
	return git.SharedValue(s)
}

func newCloneCmd() *cobra.Command {
	var (
		opts      string
		httpsUser string
		httpsPass string
	)

	cmd := &cobra.Command{
		Use:     "clone <url> [path] [-- git-options...]",
		Short:   "Clone a repository",
		GroupID: GroupRepo,
		Args:    cobra.MinimumNArgs(1),
		Long: `Clone url into path (default: --dir).

Basic auth credentials are only accepted for https URLs. SSH URLs use the
configured identities, tried in order.`,
		Example: `  gitctl clone git@example.com:org/app.git /srv/app -i ~/.ssh/deploy
  gitctl clone https://example.com/app.git /srv/app --https-user bot --https-pass "$TOKEN"
  gitctl clone https://example.com/app.git /srv/app -- --depth 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) < 1 || len(pos) > 2 {
				return fmt.Errorf("expected <url> [path]")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			if len(pos) == 2 {
				if dir, err = absPath(ctx, pos[1]); err != nil {
					return err
				}
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			res, err := c.Clone(ctx, dir, git.CloneOptions{
				URL:       pos[0],
				Opts:      o,
				HTTPSUser: httpsUser,
				HTTPSPass: httpsPass,
			})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	cmd.Flags().StringVar(&httpsUser, "https-user", "", "HTTP basic auth user")
	cmd.Flags().StringVar(&httpsPass, "https-pass", "", "HTTP basic auth password")

	return cmd
}

func newCurrentBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "current-branch",
		Short:   "Print the checked out branch",
		GroupID: GroupRepo,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			branch, err := c.CurrentBranch(ctx, dir, git.CallOptions{})
			if err != nil {
				return err
			}
			return printValue(ctx, "branch", branch)
		},
	}
}

func newRevisionCmd() *cobra.Command {
	var (
		short           bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "revision [rev]",
		Short:   "Resolve a revision to a commit hash",
		GroupID: GroupRepo,
		Args:    cobra.MaximumNArgs(1),
		Example: `  gitctl revision              # HEAD
  gitctl revision v1.2 --short
  gitctl revision main --copy  # also copy the hash to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o := git.RevisionOptions{Short: short}
			if len(args) == 1 {
				o.Rev = args[0]
			}
			rev, err := c.Revision(ctx, dir, o)
			if err != nil {
				return err
			}
			if copyToClipboard {
				if err := clipboard.WriteAll(rev); err != nil {
					log.FromContext(ctx).Warnf("failed to copy to clipboard: %v", err)
				}
			}
			return printValue(ctx, "revision", rev)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Abbreviate the hash")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the hash to the clipboard")

	return cmd
}

func newRevParseCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "rev-parse <rev> [-- git-options...]",
		Short:   "Run git rev-parse",
		GroupID: GroupRepo,
		Args:    cobra.MinimumNArgs(1),
		Example: `  gitctl rev-parse HEAD -- --abbrev-ref
  gitctl rev-parse --opts "--show-toplevel" HEAD`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) != 1 {
				return fmt.Errorf("expected exactly one revision")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			res, err := c.RevParse(ctx, dir, pos[0], o, git.CallOptions{})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newSymbolicRefCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "symbolic-ref <ref> [value] [-- git-options...]",
		Short:   "Read, set, or delete a symbolic ref",
		GroupID: GroupRepo,
		Args:    cobra.MinimumNArgs(1),
		Example: `  gitctl symbolic-ref HEAD
  gitctl symbolic-ref HEAD refs/heads/main
  gitctl symbolic-ref HEAD -- --short`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) < 1 || len(pos) > 2 {
				return fmt.Errorf("expected <ref> [value]")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			so := git.SymbolicRefOptions{Opts: o}
			if len(pos) == 2 {
				so.Value = pos[1]
			}
			res, err := c.SymbolicRef(ctx, dir, pos[0], so)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "describe [rev]",
		Short:   "Describe a commit by its nearest tag",
		GroupID: GroupRepo,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			rev := ""
			if len(args) == 1 {
				rev = args[0]
			}
			res, err := c.Describe(ctx, dir, rev, git.CallOptions{})
			if err != nil {
				return err
			}
			return printValue(ctx, "description", res)
		},
	}
}

func newArchiveCmd() *cobra.Command {
	var (
		rev           string
		archiveFormat string
		prefix        string
		overwrite     bool
	)

	cmd := &cobra.Command{
		Use:     "archive <output>",
		Short:   "Export a tree as a tar or zip archive",
		GroupID: GroupRepo,
		Args:    cobra.ExactArgs(1),
		Long: `Export rev (default HEAD) into output.

Every path is placed under a top-level directory named after the checkout,
unless --prefix is given. Use --prefix "" for no directory.`,
		Example: `  gitctl archive /tmp/app.tar.gz
  gitctl archive /tmp/app.zip --rev v1.2 --prefix app-1.2/
  gitctl archive /tmp/app.tar --overwrite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			out, err := absPath(ctx, args[0])
			if err != nil {
				return err
			}
			o := git.ArchiveOptions{Rev: rev, Format: archiveFormat, Overwrite: overwrite}
			if cmd.Flags().Changed("prefix") {
				o.Prefix = &prefix
			}
			if err := c.Archive(ctx, dir, out, o); err != nil {
				return err
			}
			return printDone(ctx, "Created "+out)
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "", "Revision to export (default HEAD)")
	cmd.Flags().StringVar(&archiveFormat, "archive-format", "", "Archive format (tar, zip, tar.gz, ...); default inferred from output")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Path prefix inside the archive")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing output file")

	return cmd
}

func newSubmoduleCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "submodule <command> [-- git-options...]",
		Short:   "Run git submodule",
		GroupID: GroupRepo,
		Args:    cobra.MinimumNArgs(1),
		Example: `  gitctl submodule update -- --init --recursive
  gitctl submodule sync`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) != 1 {
				return fmt.Errorf("expected exactly one submodule command")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			res, err := c.Submodule(ctx, dir, pos[0], git.SubmoduleOptions{Opts: o})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}
