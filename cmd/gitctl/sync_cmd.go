package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
)

func newFetchCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "fetch [remote] [-- git-options...]",
		Short:   "Download objects and refs from a remote",
		GroupID: GroupSync,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl fetch
  gitctl fetch upstream -- --prune --tags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 1 {
				return fmt.Errorf("accepts at most 1 remote, received %d", len(pos))
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			fo := git.FetchOptions{Opts: o}
			if len(pos) == 1 {
				fo.Remote = pos[0]
			}
			res, err := c.Fetch(ctx, dir, fo)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newPullCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "pull [-- git-options...]",
		Short:   "Fetch and integrate the upstream branch",
		GroupID: GroupSync,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl pull
  gitctl pull -- --rebase`,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			res, err := c.Pull(ctx, dir, git.PullOptions{Opts: o})
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newPushCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "push [remote [ref]] [-- git-options...]",
		Short:   "Update a remote with local refs",
		GroupID: GroupSync,
		Args:    cobra.ArbitraryArgs,
		Example: `  gitctl push
  gitctl push origin main
  gitctl push origin v1.2 -- --force-with-lease`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 2 {
				return fmt.Errorf("expected [remote [ref]]")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			po := git.PushOptions{Opts: o}
			if len(pos) > 0 {
				po.Remote = pos[0]
			}
			if len(pos) > 1 {
				po.Ref = pos[1]
			}
			res, err := c.Push(ctx, dir, po)
			if err != nil {
				return err
			}
			return printValue(ctx, "output", res)
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newLsRemoteCmd() *cobra.Command {
	var (
		opts      string
		httpsUser string
		httpsPass string
	)

	cmd := &cobra.Command{
		Use:     "ls-remote [remote] [ref] [-- git-options...]",
		Short:   "Print the object ids a remote ref points at",
		GroupID: GroupSync,
		Args:    cobra.ArbitraryArgs,
		Long: `Print the object ids matching ref (default master) on remote
(default origin), one per line. remote may be a URL, in which case no
checkout is needed.`,
		Example: `  gitctl ls-remote
  gitctl ls-remote origin refs/heads/main
  gitctl ls-remote https://example.com/app.git main --https-user bot --https-pass "$TOKEN"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) > 2 {
				return fmt.Errorf("expected [remote] [ref]")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			lo := git.LsRemoteOptions{Opts: o, HTTPSUser: httpsUser, HTTPSPass: httpsPass}
			if len(pos) > 0 {
				lo.Remote = pos[0]
			}
			if len(pos) > 1 {
				lo.Ref = pos[1]
			}
			res, err := c.LsRemote(ctx, dir, lo)
			if err != nil {
				return err
			}
			var hashes []string
			if res != "" {
				hashes = strings.Split(res, "\n")
			}
			return printList(ctx, hashes)
		},
	}

	addOptsFlag(cmd, &opts)
	cmd.Flags().StringVar(&httpsUser, "https-user", "", "HTTP basic auth user")
	cmd.Flags().StringVar(&httpsPass, "https-pass", "", "HTTP basic auth password")

	return cmd
}
