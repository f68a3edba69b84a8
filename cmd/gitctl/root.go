package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/cmd"
	"github.com/raphi011/gitctl/internal/config"
	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/log"
	"github.com/raphi011/gitctl/internal/output"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOutput bool
	format     string
	workDir    string
	asUser     string
	identity   []string

	// Loaded in Execute
	cfg *config.Config
)

// Command group IDs for organizing help output
const (
	GroupRepo     = "repo"
	GroupSync     = "sync"
	GroupHistory  = "history"
	GroupIndex    = "index"
	GroupRefs     = "refs"
	GroupWorktree = "worktree"
	GroupConfig   = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitctl",
	Short: "Run git operations with structured results",
	Long: `gitctl runs git on behalf of automation.

Every operation takes absolute paths, can run as another OS user, and tries
a list of SSH private keys in order for network operations. Results are
printed as plain values, tables, or JSON (--json).`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if c.Name() == "completion" || c.Name() == "__complete" || c.Name() == "help" {
			return nil
		}

		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		e, err := newEnv()
		if err != nil {
			return err
		}

		ctx := log.WithLogger(c.Context(), log.New(os.Stderr, verbose || cfg.Verbose, quiet))
		ctx = config.WithResolver(ctx, e.resolver)
		ctx = withEnv(ctx, e)
		c.SetContext(ctx)

		// config and version work without git
		if c.Name() == "version" || (c.Parent() != nil && c.Parent().Name() == "config") {
			return nil
		}
		return e.runner.Check()
	},
	// Run is not set - shows help when no subcommand provided
}

// newEnv builds the per-invocation environment from config and global flags.
func newEnv() (*env, error) {
	outFormat := cfg.Output.Format
	if format != "" {
		outFormat = format
	}
	if jsonOutput {
		outFormat = "json"
	}
	if err := config.ValidateOutputFormat(outFormat); err != nil {
		return nil, err
	}
	if outFormat == "table" && !isTerminal(os.Stdout) {
		outFormat = "plain"
	}

	dir := workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	wrapper, err := cfg.WrapperTemplate()
	if err != nil {
		return nil, err
	}

	runner := git.NewRunner(cmd.OS{},
		git.WithBinary(cfg.GitBinary),
		git.WithTempDir(cfg.TempDir),
		git.WithWrapperTemplate(wrapper),
	)

	e := &env{
		runner:   runner,
		resolver: config.NewResolver(cfg),
		workDir:  dir,
		format:   outFormat,
		user:     asUser,
	}
	if len(identity) > 0 {
		e.identity = make([]string, len(identity))
		for i, key := range identity {
			abs, err := filepath.Abs(key)
			if err != nil {
				return nil, err
			}
			e.identity[i] = abs
		}
	}
	return e, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Primary data goes to stdout, downsampled to what the terminal supports
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(exitCode(err))
	}
}

// exitCode mirrors git's exit code for failed git runs, 2 for invalid
// arguments, and 1 otherwise.
func exitCode(err error) int {
	var gerr *git.Error
	if errors.As(err, &gerr) {
		if gerr.Result != nil && gerr.Result.ExitCode > 0 {
			return gerr.Result.ExitCode
		}
		if errors.Is(err, git.ErrInvalidArgument) {
			return 2
		}
	}
	return 1
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Output format: table, plain, or json")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Git checkout to operate on (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&asUser, "user", "u", "", "Run git as this OS user")
	rootCmd.PersistentFlags().StringArrayVarP(&identity, "identity", "i", nil, "SSH private key for network operations (repeatable, tried in order)")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRepo, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupSync, Title: "Remote Sync Commands:"},
		&cobra.Group{ID: GroupHistory, Title: "History Commands:"},
		&cobra.Group{ID: GroupIndex, Title: "Working Tree Commands:"},
		&cobra.Group{ID: GroupRefs, Title: "Branch, Tag and Remote Commands:"},
		&cobra.Group{ID: GroupWorktree, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	for _, c := range allCommands() {
		rootCmd.AddCommand(c)
	}
}

// allCommands returns every top-level subcommand.
func allCommands() []*cobra.Command {
	return []*cobra.Command{
		// Repository
		newInitCmd(),
		newCloneCmd(),
		newCurrentBranchCmd(),
		newRevisionCmd(),
		newRevParseCmd(),
		newSymbolicRefCmd(),
		newDescribeCmd(),
		newArchiveCmd(),
		newSubmoduleCmd(),

		// Sync
		newFetchCmd(),
		newPullCmd(),
		newPushCmd(),
		newLsRemoteCmd(),

		// History
		newCheckoutCmd(),
		newMergeCmd(),
		newRebaseCmd(),
		newResetCmd(),
		newStashCmd(),

		// Index
		newStatusCmd(),
		newAddCmd(),
		newRmCmd(),
		newCommitCmd(),

		// Refs
		newBranchesCmd(),
		newTagsCmd(),
		newBranchCmd(),
		newRemoteCmd(),

		// Worktree
		newWorktreeCmd(),

		// Config
		newGitConfigCmd(),
		newConfigCmd(),
		newVersionCmd(),
	}
}
