package git

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/raphi011/gitctl/internal/cmd"
	"github.com/raphi011/gitctl/internal/log"
)

// Environment variables injected for identity-based runs.
const (
	envIdentity = "GIT_IDENTITY"
	envSSH      = "GIT_SSH"
)

//go:embed templates/ssh-id-wrapper
var sshWrapperTemplate []byte

// Runner executes git and classifies the outcome. It is safe for concurrent use.
type Runner struct {
	exec      cmd.Executor
	binary    string
	wrapper   []byte
	tempDir   string
	goos      string
	lookupUID func(name string) (int, error)

	mu      sync.Mutex
	version string
	info    []VersionPart
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBinary sets the git executable. Default "git".
func WithBinary(path string) RunnerOption {
	return func(r *Runner) {
		if path != "" {
			r.binary = path
		}
	}
}

// WithWrapperTemplate replaces the embedded GIT_SSH wrapper script.
func WithWrapperTemplate(script []byte) RunnerOption {
	return func(r *Runner) {
		if len(script) > 0 {
			r.wrapper = script
		}
	}
}

// WithTempDir sets where wrapper scripts are created. Default os.TempDir().
func WithTempDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.tempDir = dir
	}
}

// NewRunner returns a Runner that executes through e.
func NewRunner(e cmd.Executor, opts ...RunnerOption) *Runner {
	r := &Runner{
		exec:      e,
		binary:    "git",
		wrapper:   sshWrapperTemplate,
		goos:      runtime.GOOS,
		lookupUID: cmd.LookupUID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOptions controls a single Run.
type RunOptions struct {
	Dir           string   // working directory
	User          string   // OS user to run as
	Identity      []string // private keys, tried in order until one succeeds
	IgnoreRetcode bool     // don't log failures (they are still returned)
}

// Run executes git with args. A nonzero exit is always an ErrExecutionFailed
// error; IgnoreRetcode only silences the log line.
//
// With identities set, each key is tried in turn and the first successful
// result is returned. If all of them fail the error message holds every
// attempt's stderr separated by blank lines.
func (r *Runner) Run(ctx context.Context, args []string, o RunOptions) (cmd.Result, error) {
	argv := append([]string{r.binary}, args...)

	if len(o.Identity) == 0 {
		res, err := r.exec.Exec(ctx, r.spec(argv, o, map[string]string{}))
		if err != nil {
			return cmd.Result{}, startFailed(argv, err)
		}
		if res.ExitCode != 0 {
			msg := fmt.Sprintf("Command '%s' failed", strings.Join(argv, " "))
			if res.Stderr != "" {
				msg += ": " + res.Stderr
			}
			return cmd.Result{}, execFailed(msg, &res, nil)
		}
		return res, nil
	}

	var (
		stderrs []string
		last    cmd.Result
	)
	for _, identity := range o.Identity {
		res, err := r.runWithIdentity(ctx, argv, identity, o)
		if err != nil {
			return cmd.Result{}, err
		}
		if res.ExitCode == 0 {
			return res, nil
		}
		log.FromContext(ctx).Debug("identity rejected", "identity", identity, "exit", res.ExitCode)
		stderrs = append(stderrs, res.Stderr)
		last = res
	}
	return cmd.Result{}, execFailed(strings.Join(stderrs, "\n\n"), &last, nil)
}

// runWithIdentity performs one attempt. The wrapper script is removed before
// it returns, whatever the outcome.
func (r *Runner) runWithIdentity(ctx context.Context, argv []string, identity string, o RunOptions) (cmd.Result, error) {
	env := map[string]string{envIdentity: identity}

	if r.goos != "windows" {
		wrapper, err := r.writeWrapper(o.User)
		if err != nil {
			return cmd.Result{}, execFailed(fmt.Sprintf("Unable to create ssh wrapper: %v", err), nil, err)
		}
		defer func() {
			if err := os.Remove(wrapper); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.FromContext(ctx).Warnf("failed to remove ssh wrapper %s: %v", wrapper, err)
			}
		}()
		env[envSSH] = wrapper
	}

	res, err := r.exec.Exec(ctx, r.spec(argv, o, env))
	if err != nil {
		return cmd.Result{}, startFailed(argv, err)
	}
	return res, nil
}

// writeWrapper materializes the wrapper template as an owner-only executable
// owned by user (the current user when empty) and returns its path.
func (r *Runner) writeWrapper(user string) (string, error) {
	f, err := os.CreateTemp(r.tempDir, "gitctl-ssh-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(name)
		}
	}()

	if _, err := f.Write(r.wrapper); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(name, 0o500); err != nil {
		return "", err
	}
	if user != "" {
		uid, err := r.lookupUID(user)
		if err != nil {
			return "", err
		}
		if err := os.Chown(name, uid, -1); err != nil {
			return "", err
		}
	}
	ok = true
	return name, nil
}

func (r *Runner) spec(argv []string, o RunOptions, env map[string]string) cmd.Spec {
	return cmd.Spec{
		Args:          argv,
		Dir:           o.Dir,
		User:          o.User,
		Env:           env,
		IgnoreRetcode: o.IgnoreRetcode,
	}
}

func startFailed(argv []string, err error) error {
	return execFailed(fmt.Sprintf("Command '%s' failed: %v", strings.Join(argv, " "), err), nil, err)
}
