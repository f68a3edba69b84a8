package git

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/raphi011/gitctl/internal/cmd"
)

// spyExecutor records every Spec and replays scripted results in order.
// Once the script runs out it returns an empty successful result.
type spyExecutor struct {
	mu      sync.Mutex
	calls   []cmd.Spec
	results []cmd.Result
	err     error
	onExec  func(cmd.Spec)
}

func (s *spyExecutor) Exec(_ context.Context, spec cmd.Spec) (cmd.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, spec)
	if s.onExec != nil {
		s.onExec(spec)
	}
	if s.err != nil {
		return cmd.Result{}, s.err
	}
	if len(s.results) == 0 {
		return cmd.Result{}, nil
	}
	res := s.results[0]
	s.results = s.results[1:]
	return res, nil
}

func (s *spyExecutor) args() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Args
	}
	return out
}

// newTestRunner returns a runner whose wrapper scripts land in a per-test
// directory and whose user lookup resolves every name to the current uid.
func newTestRunner(t *testing.T, spy *spyExecutor) (*Runner, string) {
	t.Helper()
	dir := t.TempDir()
	r := NewRunner(spy, WithTempDir(dir))
	r.goos = "linux"
	r.lookupUID = func(string) (int, error) { return os.Getuid(), nil }
	return r, dir
}

func newTestClient(t *testing.T, results ...cmd.Result) (*Client, *spyExecutor) {
	t.Helper()
	spy := &spyExecutor{results: results}
	r, _ := newTestRunner(t, spy)
	return NewClient(r), spy
}

func ok(stdout string) cmd.Result {
	return cmd.Result{Stdout: stdout}
}

func failed(code int, stderr string) cmd.Result {
	return cmd.Result{ExitCode: code, Stderr: stderr}
}

// absPath builds an absolute path on the current platform.
func absPath(elem ...string) string {
	root := "/"
	if runtime.GOOS == "windows" {
		root = `C:\`
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}
