package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/config"
	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/log"
	"github.com/raphi011/gitctl/internal/output"
)

// env is the per-invocation state shared by all subcommands.
type env struct {
	runner   *git.Runner
	resolver *config.ConfigResolver
	workDir  string // absolute
	format   string // table, plain or json
	user     string // --user override
	identity []string
}

type envKey struct{}

func withEnv(ctx context.Context, e *env) context.Context {
	return context.WithValue(ctx, envKey{}, e)
}

func envFromContext(ctx context.Context) (*env, error) {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e, nil
	}
	return nil, fmt.Errorf("gitctl: command environment not initialized")
}

// clientFor returns a git client configured for the checkout at dir, with
// any .gitctl.toml overrides applied. Flags win over config. The returned
// context carries a verbose logger when the checkout config asks for one.
func clientFor(ctx context.Context, dir string) (context.Context, *git.Client, error) {
	e, err := envFromContext(ctx)
	if err != nil {
		return ctx, nil, err
	}

	eff, err := e.resolver.ConfigForRepo(dir)
	if err != nil {
		return ctx, nil, err
	}

	user := eff.User
	if e.user != "" {
		user = e.user
	}
	keys := eff.Identity
	if e.identity != nil {
		keys = e.identity
	}

	l := log.FromContext(ctx)
	if eff.Verbose && !l.IsVerbose() && !quiet {
		ctx = log.WithLogger(ctx, log.New(l.Writer(), true, false))
	}

	opts := []git.ClientOption{git.WithUser(user)}
	if keys != nil {
		opts = append(opts, git.WithIdentity(keys...))
	}
	return ctx, git.NewClient(e.runner, opts...), nil
}

// checkout returns the client for the working directory (-C).
func checkout(cmd *cobra.Command) (context.Context, *git.Client, string, error) {
	e, err := envFromContext(cmd.Context())
	if err != nil {
		return nil, nil, "", err
	}
	ctx, c, err := clientFor(cmd.Context(), e.workDir)
	return ctx, c, e.workDir, err
}

// absPath resolves p against the working directory.
func absPath(ctx context.Context, p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	e, err := envFromContext(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(e.workDir, p), nil
}

// gitOpts builds the extra git options from --opts and arguments after "--".
// Only one of the two may be used.
func gitOpts(optsFlag string, extra []string) (git.Opts, error) {
	switch {
	case optsFlag != "" && len(extra) > 0:
		return git.Opts{}, fmt.Errorf("use either --opts or arguments after --, not both")
	case len(extra) > 0:
		return git.OptList(extra...), nil
	case optsFlag != "":
		return git.OptString(optsFlag), nil
	}
	return git.Opts{}, nil
}

// splitDash separates positional arguments from those after "--".
func splitDash(cmd *cobra.Command, args []string) (positional, extra []string) {
	at := cmd.ArgsLenAtDash()
	if at < 0 {
		return args, nil
	}
	return args[:at], args[at:]
}

// addOptsFlag registers the common --opts flag.
func addOptsFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "opts", "o", "", `Extra git options, shell-split (or pass them after "--")`)
}

// printValue prints a single text result.
func printValue(ctx context.Context, key, value string) error {
	e, err := envFromContext(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)
	if e.format == "json" {
		return out.JSON(map[string]string{key: value})
	}
	out.Value(value)
	return nil
}

// printList prints one item per line, or a JSON array.
func printList(ctx context.Context, items []string) error {
	e, err := envFromContext(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)
	if e.format == "json" {
		if items == nil {
			items = []string{}
		}
		return out.JSON(items)
	}
	out.Value(strings.Join(items, "\n"))
	return nil
}

// printDone reports a side-effect-only operation.
func printDone(ctx context.Context, msg string) error {
	e, err := envFromContext(ctx)
	if err != nil {
		return err
	}
	if e.format == "json" {
		return output.FromContext(ctx).JSON(map[string]bool{"ok": true})
	}
	log.FromContext(ctx).Println(msg)
	return nil
}
