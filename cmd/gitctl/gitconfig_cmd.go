package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
)

// gitScope is the config scope passed to git: the checkout, or "global".
func gitScope(cmd *cobra.Command, global bool) (string, error) {
	if global {
		return "global", nil
	}
	e, err := envFromContext(cmd.Context())
	if err != nil {
		return "", err
	}
	return e.workDir, nil
}

func newGitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gitconfig",
		Short:   "Read and write git configuration",
		GroupID: GroupConfig,
		Long: `Read and write git configuration of the checkout (--dir), or of the
user running git with --global.

For gitctl's own settings see 'gitctl config'.`,
		Example: `  gitctl gitconfig get user.email
  gitctl gitconfig set user.name "Deploy Bot" --global`,
	}

	cmd.AddCommand(newGitConfigGetCmd())
	cmd.AddCommand(newGitConfigSetCmd())

	return cmd
}

func newGitConfigGetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := gitScope(cmd, global)
			if err != nil {
				return err
			}
			ctx, c, err := clientFor(cmd.Context(), scope)
			if err != nil {
				return err
			}
			value, err := c.ConfigGet(ctx, scope, args[0], git.CallOptions{})
			if err != nil {
				return err
			}
			return printValue(ctx, args[0], value)
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Read the user's global config")
	return cmd
}

func newGitConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := gitScope(cmd, global)
			if err != nil {
				return err
			}
			ctx, c, err := clientFor(cmd.Context(), scope)
			if err != nil {
				return err
			}
			if _, err := c.ConfigSet(ctx, scope, args[0], args[1], git.ConfigSetOptions{}); err != nil {
				return err
			}
			return printDone(ctx, "Set "+args[0])
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Write the user's global config")
	return cmd
}
