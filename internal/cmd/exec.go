package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/raphi011/gitctl/internal/log"
)

// Spec describes a single command invocation.
type Spec struct {
	Args          []string          // Args[0] is the program
	Dir           string            // working directory, empty = inherit
	User          string            // OS user to run as, empty = current user
	Env           map[string]string // added on top of the inherited environment
	IgnoreRetcode bool              // don't log a nonzero exit
}

// Result is the outcome of one execution. Trailing whitespace is stripped
// from both output streams.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs commands.
type Executor interface {
	Exec(ctx context.Context, spec Spec) (Result, error)
}

// OS runs commands as child processes of the current process.
type OS struct{}

// Exec runs spec and waits for it to exit. The returned error is non-nil only
// when the process could not be started or the context was cancelled.
func (OS) Exec(ctx context.Context, spec Spec) (Result, error) {
	if len(spec.Args) == 0 {
		return Result{}, errors.New("empty command")
	}
	l := log.FromContext(ctx)

	c := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)
	c.Dir = spec.Dir

	env := c.Environ()
	if spec.User != "" {
		userEnv, err := runAs(c, spec.User)
		if err != nil {
			return Result{}, err
		}
		env = append(env, userEnv...)
	}
	env = append(env, envList(spec.Env)...)
	c.Env = env

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	done := l.Command(spec.Dir, spec.Args[0], spec.Args[1:]...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	res := Result{
		Stdout: trimRight(stdout.String()),
		Stderr: trimRight(stderr.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("run %s: %w", spec.Args[0], err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	if res.ExitCode != 0 && !spec.IgnoreRetcode {
		msg := fmt.Sprintf("Command '%s' failed with exit code %d", strings.Join(spec.Args, " "), res.ExitCode)
		if res.Stderr != "" {
			msg += ": " + res.Stderr
		}
		l.Errorf("%s", msg)
	}

	return res, nil
}

// envList renders the overlay as KEY=VALUE pairs in key order.
func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
