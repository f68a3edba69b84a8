package main

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	execcmd "github.com/raphi011/gitctl/internal/cmd"
	"github.com/raphi011/gitctl/internal/config"
	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/log"
	"github.com/raphi011/gitctl/internal/output"
)

// recorder is an executor that records every git invocation and replays
// scripted results. Unscripted calls succeed with empty output.
type recorder struct {
	mu      sync.Mutex
	specs   []execcmd.Spec
	results []execcmd.Result
}

func (r *recorder) Exec(_ context.Context, spec execcmd.Spec) (execcmd.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs = append(r.specs, spec)
	if len(r.results) == 0 {
		return execcmd.Result{}, nil
	}
	res := r.results[0]
	r.results = r.results[1:]
	return res, nil
}

// argv returns the arguments of call i without the binary.
func (r *recorder) argv(t *testing.T, i int) []string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if i >= len(r.specs) {
		t.Fatalf("expected at least %d git calls, got %d", i+1, len(r.specs))
	}
	return r.specs[i].Args[1:]
}

type harness struct {
	ctx    context.Context
	rec    *recorder
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	env    *env
}

// newHarness builds a command environment rooted at a temp dir with the
// given output format. Scripted results are replayed in order.
func newHarness(t *testing.T, format string, results ...execcmd.Result) *harness {
	t.Helper()

	rec := &recorder{results: results}
	global := config.Default()
	h := &harness{
		rec:    rec,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		env: &env{
			runner:   git.NewRunner(rec, git.WithTempDir(t.TempDir())),
			resolver: config.NewResolver(&global),
			workDir:  t.TempDir(),
			format:   format,
		},
	}

	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(h.stderr, false, false))
	ctx = output.WithPrinter(ctx, h.stdout)
	ctx = withEnv(ctx, h.env)
	h.ctx = ctx
	return h
}

// run executes c with args in the harness context.
func (h *harness) run(t *testing.T, c *cobra.Command, args ...string) error {
	t.Helper()
	c.SetContext(h.ctx)
	c.SetArgs(args)
	c.SetOut(h.stderr)
	c.SetErr(h.stderr)
	return c.Execute()
}

func assertArgv(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("git argv = %q, want %q", got, want)
	}
}
