package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gitctl/internal/cmd"
	"github.com/raphi011/gitctl/internal/log"
)

func TestRun_Success(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{results: []cmd.Result{ok("main")}}
	r, _ := newTestRunner(t, spy)

	res, err := r.Run(context.Background(), []string{"rev-parse", "--abbrev-ref", "HEAD"}, RunOptions{
		Dir:  absPath("srv", "repo"),
		User: "deploy",
	})
	require.NoError(t, err)
	assert.Equal(t, "main", res.Stdout)

	require.Len(t, spy.calls, 1)
	call := spy.calls[0]
	assert.Equal(t, []string{"git", "rev-parse", "--abbrev-ref", "HEAD"}, call.Args)
	assert.Equal(t, absPath("srv", "repo"), call.Dir)
	assert.Equal(t, "deploy", call.User)
	assert.NotNil(t, call.Env)
	assert.Empty(t, call.Env)
}

func TestRun_Failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result cmd.Result
		want   string
	}{
		{"with stderr", failed(128, "fatal: not a git repository"), "Command 'git status' failed: fatal: not a git repository"},
		{"without stderr", failed(1, ""), "Command 'git status' failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spy := &spyExecutor{results: []cmd.Result{tt.result}}
			r, _ := newTestRunner(t, spy)

			_, err := r.Run(context.Background(), []string{"status"}, RunOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrExecutionFailed))
			assert.Equal(t, tt.want, err.Error())

			var gitErr *Error
			require.True(t, errors.As(err, &gitErr))
			require.NotNil(t, gitErr.Result)
			assert.Equal(t, tt.result.ExitCode, gitErr.Result.ExitCode)
		})
	}
}

func TestRun_IgnoreRetcodeStillFails(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{results: []cmd.Result{failed(1, "")}}
	r, _ := newTestRunner(t, spy)

	_, err := r.Run(context.Background(), []string{"status"}, RunOptions{IgnoreRetcode: true})
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	require.Len(t, spy.calls, 1)
	assert.True(t, spy.calls[0].IgnoreRetcode)
}

func TestRun_StartFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("exec: \"git\": executable file not found in $PATH")
	spy := &spyExecutor{err: cause}
	r, _ := newTestRunner(t, spy)

	_, err := r.Run(context.Background(), []string{"status"}, RunOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.True(t, errors.Is(err, cause))
}

func TestRun_Binary(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{}
	r := NewRunner(spy, WithBinary("/opt/git/bin/git"))

	_, err := r.Run(context.Background(), []string{"--version"}, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/git/bin/git", "--version"}, spy.calls[0].Args)
	assert.Equal(t, "/opt/git/bin/git", r.Binary())
}

// wrapperCapture inspects the GIT_SSH wrapper while the command "runs".
type wrapperCapture struct {
	paths    []string
	existed  []bool
	modes    []os.FileMode
	contents [][]byte
}

func (p *wrapperCapture) observe(spec cmd.Spec) {
	path := spec.Env[envSSH]
	p.paths = append(p.paths, path)
	info, err := os.Stat(path)
	p.existed = append(p.existed, err == nil)
	if err == nil {
		p.modes = append(p.modes, info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	p.contents = append(p.contents, data)
}

func TestRun_IdentityStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()
	skipWrapperOnWindows(t)

	capture := &wrapperCapture{}
	spy := &spyExecutor{
		results: []cmd.Result{failed(128, "e1"), failed(128, "e2"), ok("done"), ok("never")},
		onExec:  capture.observe,
	}
	r, tmp := newTestRunner(t, spy)

	keys := []string{"/keys/a", "/keys/b", "/keys/c"}
	res, err := r.Run(context.Background(), []string{"fetch"}, RunOptions{Identity: keys})
	require.NoError(t, err)
	assert.Equal(t, "done", res.Stdout)

	require.Len(t, spy.calls, 3)
	for i, call := range spy.calls {
		assert.Equal(t, keys[i], call.Env[envIdentity])
		assert.NotEmpty(t, call.Env[envSSH])
	}

	for i, path := range capture.paths {
		assert.True(t, capture.existed[i], "wrapper %s should exist during the attempt", path)
		assert.Equal(t, sshWrapperTemplate, capture.contents[i])
		assert.Equal(t, os.FileMode(0o500), capture.modes[i])
		assert.NoFileExists(t, path)
	}
	assert.NotEqual(t, capture.paths[0], capture.paths[1])

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_IdentityAllFail(t *testing.T) {
	t.Parallel()
	skipWrapperOnWindows(t)

	spy := &spyExecutor{results: []cmd.Result{failed(128, "e1"), failed(128, "e2"), failed(128, "e3")}}
	r, tmp := newTestRunner(t, spy)

	_, err := r.Run(context.Background(), []string{"fetch"}, RunOptions{Identity: []string{"/k1", "/k2", "/k3"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.Equal(t, "e1\n\ne2\n\ne3", err.Error())
	assert.Len(t, spy.calls, 3)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_IdentityOnWindows(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{}
	r, tmp := newTestRunner(t, spy)
	r.goos = "windows"

	_, err := r.Run(context.Background(), []string{"fetch"}, RunOptions{Identity: []string{`C:\keys\id`}})
	require.NoError(t, err)
	require.Len(t, spy.calls, 1)
	assert.Equal(t, map[string]string{envIdentity: `C:\keys\id`}, spy.calls[0].Env)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_EmptyIdentitySetRunsOnce(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{}
	r, _ := newTestRunner(t, spy)

	_, err := r.Run(context.Background(), []string{"fetch"}, RunOptions{Identity: []string{}})
	require.NoError(t, err)
	require.Len(t, spy.calls, 1)
	assert.Empty(t, spy.calls[0].Env)
}

func TestRun_WrapperOwnedByUser(t *testing.T) {
	t.Parallel()
	skipWrapperOnWindows(t)

	var looked []string
	spy := &spyExecutor{}
	r, _ := newTestRunner(t, spy)
	r.lookupUID = func(name string) (int, error) {
		looked = append(looked, name)
		return os.Getuid(), nil
	}

	_, err := r.Run(context.Background(), []string{"fetch"}, RunOptions{User: "deploy", Identity: []string{"/k"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy"}, looked)
	assert.Equal(t, "deploy", spy.calls[0].User)
}

func TestRun_WrapperSetupFailure(t *testing.T) {
	t.Parallel()
	skipWrapperOnWindows(t)

	spy := &spyExecutor{}
	r, tmp := newTestRunner(t, spy)
	r.lookupUID = func(string) (int, error) { return 0, errors.New("no such user") }

	_, err := r.Run(context.Background(), []string{"fetch"}, RunOptions{User: "ghost", Identity: []string{"/k"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.Empty(t, spy.calls)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CustomWrapperTemplate(t *testing.T) {
	t.Parallel()
	skipWrapperOnWindows(t)

	script := []byte("#!/bin/sh\nexec ssh -i \"$GIT_IDENTITY\" \"$@\"\n")
	capture := &wrapperCapture{}
	spy := &spyExecutor{onExec: capture.observe}
	r := NewRunner(spy, WithTempDir(t.TempDir()), WithWrapperTemplate(script))
	r.goos = "linux"

	_, err := r.Run(context.Background(), []string{"pull"}, RunOptions{Identity: []string{"/k"}})
	require.NoError(t, err)
	require.Len(t, capture.contents, 1)
	assert.Equal(t, script, capture.contents[0])
}

func TestRun_RejectedIdentityIsLogged(t *testing.T) {
	t.Parallel()
	skipWrapperOnWindows(t)

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))

	spy := &spyExecutor{results: []cmd.Result{failed(128, "denied"), ok("")}}
	r, _ := newTestRunner(t, spy)

	_, err := r.Run(ctx, []string{"fetch"}, RunOptions{Identity: []string{"/k1", "/k2"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "identity rejected identity=/k1 exit=128")
}

func TestSSHWrapperTemplate(t *testing.T) {
	t.Parallel()

	assert.True(t, bytes.HasPrefix(sshWrapperTemplate, []byte("#!/bin/sh\n")))
	assert.Contains(t, string(sshWrapperTemplate), `-i "$GIT_IDENTITY"`)
}

// skipWrapperOnWindows skips tests that materialize wrapper scripts, which
// are never written on windows.
func skipWrapperOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("GIT_SSH wrappers are not used on windows")
	}
}
