package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/output"
	"github.com/raphi011/gitctl/internal/ui/static"
)

func newBranchesCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:     "branches",
		Short:   "List branches",
		GroupID: GroupRefs,
		Args:    cobra.NoArgs,
		Example: `  gitctl branches
  gitctl branches --remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			names, err := c.ListBranches(ctx, dir, remote, git.CallOptions{})
			if err != nil {
				return err
			}
			return printList(ctx, names)
		},
	}

	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "List remote-tracking branches")
	return cmd
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tags",
		Short:   "List tags",
		GroupID: GroupRefs,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			names, err := c.ListTags(ctx, dir, git.CallOptions{})
			if err != nil {
				return err
			}
			return printList(ctx, names)
		},
	}
}

func newBranchCmd() *cobra.Command {
	var opts string

	cmd := &cobra.Command{
		Use:     "branch <name> [-- git-options...]",
		Short:   "Create, rename, or delete a branch",
		GroupID: GroupRefs,
		Args:    cobra.MinimumNArgs(1),
		Example: `  gitctl branch topic
  gitctl branch topic -- -d
  gitctl branch new-name -- -m old-name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, extra := splitDash(cmd, args)
			if len(pos) != 1 {
				return fmt.Errorf("expected exactly one branch name")
			}
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			o, err := gitOpts(opts, extra)
			if err != nil {
				return err
			}
			if err := c.Branch(ctx, dir, pos[0], o, git.CallOptions{}); err != nil {
				return err
			}
			return printDone(ctx, "Updated branch "+pos[0])
		},
	}

	addOptsFlag(cmd, &opts)
	return cmd
}

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remote",
		Short:   "Inspect and configure remotes",
		GroupID: GroupRefs,
		Long: `Inspect and configure remotes.

Without a subcommand, lists all remotes with their fetch and push URLs.`,
		Example: `  gitctl remote
  gitctl remote get upstream
  gitctl remote set https://example.com/app.git --https-user bot --https-pass "$TOKEN"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			remotes, err := c.Remotes(ctx, dir, git.CallOptions{})
			if err != nil {
				return err
			}
			return printRemotes(cmd, remotes)
		},
	}

	cmd.AddCommand(newRemoteGetCmd())
	cmd.AddCommand(newRemoteSetCmd())

	return cmd
}

func newRemoteGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [name]",
		Short: "Show the URLs of one remote (default origin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			r, err := c.RemoteGet(ctx, dir, name, git.CallOptions{})
			if err != nil {
				return err
			}
			if name == "" {
				name = "origin"
			}
			return printRemotes(cmd, map[string]git.Remote{name: r})
		},
	}
}

func newRemoteSetCmd() *cobra.Command {
	var o git.RemoteSetOptions

	cmd := &cobra.Command{
		Use:   "set <url>",
		Short: "Point a remote at url, replacing it if it exists",
		Args:  cobra.ExactArgs(1),
		Long: `Point a remote (default origin) at url, replacing any existing remote
of that name.

Credentials are only accepted for https URLs. --push-url sets a separate
push URL with its own credentials.`,
		Example: `  gitctl remote set git@example.com:org/app.git
  gitctl remote set https://example.com/app.git --name upstream \
    --https-user bot --https-pass "$TOKEN"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, dir, err := checkout(cmd)
			if err != nil {
				return err
			}
			r, err := c.RemoteSet(ctx, dir, args[0], o)
			if err != nil {
				return err
			}
			name := o.Remote
			if name == "" {
				name = "origin"
			}
			return printRemotes(cmd, map[string]git.Remote{name: r})
		},
	}

	cmd.Flags().StringVar(&o.Remote, "name", "", "Remote name (default origin)")
	cmd.Flags().StringVar(&o.HTTPSUser, "https-user", "", "HTTP basic auth user")
	cmd.Flags().StringVar(&o.HTTPSPass, "https-pass", "", "HTTP basic auth password")
	cmd.Flags().StringVar(&o.PushURL, "push-url", "", "Separate push URL")
	cmd.Flags().StringVar(&o.PushHTTPSUser, "push-https-user", "", "HTTP basic auth user for the push URL")
	cmd.Flags().StringVar(&o.PushHTTPSPass, "push-https-pass", "", "HTTP basic auth password for the push URL")

	return cmd
}

func printRemotes(cmd *cobra.Command, remotes map[string]git.Remote) error {
	ctx := cmd.Context()
	e, err := envFromContext(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)
	switch e.format {
	case "json":
		return out.JSON(remotes)
	case "plain":
		out.Print(static.FormatRemotesPlain(remotes))
	default:
		out.Print(static.RenderTable(static.RemoteHeaders, static.RemoteRows(remotes)))
	}
	return nil
}
