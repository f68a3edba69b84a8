package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/config"
	"github.com/raphi011/gitctl/internal/log"
	"github.com/raphi011/gitctl/internal/output"
	"github.com/raphi011/gitctl/internal/ui/static"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage gitctl configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage gitctl configuration.

Global config: ~/.config/gitctl/config.toml
Local config:  .gitctl.toml (in the checkout root)`,
		Example: `  gitctl config init          # Create default global config
  gitctl config init --local  # Create local checkout config
  gitctl config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates global config at ~/.config/gitctl/config.toml.
With --local, creates .gitctl.toml in the checkout (--dir).`,
		Example: `  gitctl config init           # Create global config
  gitctl config init --local   # Create local checkout config
  gitctl config init -f        # Overwrite existing config
  gitctl config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}
			if stdout {
				out.Print(content)
				return nil
			}

			var (
				path string
				err  error
			)
			if local {
				e, envErr := envFromContext(ctx)
				if envErr != nil {
					return envErr
				}
				path, err = config.InitLocal(e.workDir, force)
			} else {
				path, err = config.Init(force)
			}
			if err != nil {
				if strings.Contains(err.Error(), "already exists") {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				return err
			}

			l.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create .gitctl.toml in the checkout instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the effective configuration for the checkout at --dir,
with .gitctl.toml overrides applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := envFromContext(ctx)
			if err != nil {
				return err
			}
			eff, err := e.resolver.ConfigForRepo(e.workDir)
			if err != nil {
				return err
			}

			out := output.FromContext(ctx)
			if e.format == "json" {
				return out.JSON(eff)
			}

			rows := configRows(eff)
			if e.format == "plain" {
				for _, r := range rows {
					out.Printf("%s=%s\n", r[0], r[1])
				}
				return nil
			}
			out.Print(static.RenderTable([]string{"KEY", "VALUE"}, rows))
			return nil
		},
	}
}

func configRows(c *config.Config) [][]string {
	return [][]string{
		{"git_binary", c.GitBinary},
		{"user", c.User},
		{"identity", strings.Join(c.Identity, ", ")},
		{"ssh_wrapper", c.SSHWrapper},
		{"temp_dir", c.TempDir},
		{"verbose", fmt.Sprint(c.Verbose)},
		{"output.format", c.Output.Format},
	}
}
