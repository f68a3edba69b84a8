package log

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"
)

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		dir     string
		args    []string
		took    time.Duration
		want    string
	}{
		{
			name:    "git run in a checkout",
			verbose: true,
			dir:     "/srv/repo",
			args:    []string{"status", "-z", "--porcelain"},
			took:    1500 * time.Microsecond,
			want:    "[/srv/repo] $ git status -z --porcelain (2ms)\n",
		},
		{
			name:    "no working directory",
			verbose: true,
			args:    []string{"--version"},
			took:    3 * time.Millisecond,
			want:    "$ git --version (3ms)\n",
		},
		{
			name:    "no arguments",
			verbose: true,
			dir:     "/srv/repo",
			want:    "[/srv/repo] $ git (0s)\n",
		},
		{
			name:    "slow network run",
			verbose: true,
			dir:     "/srv/repo",
			args:    []string{"fetch", "origin"},
			took:    2*time.Second + 345678*time.Microsecond,
			want:    "[/srv/repo] $ git fetch origin (2.346s)\n",
		},
		{
			name: "silent unless verbose",
			dir:  "/srv/repo",
			args: []string{"status"},
			took: time.Millisecond,
		},
		{
			name:    "quiet wins over verbose",
			verbose: true,
			quiet:   true,
			dir:     "/srv/repo",
			args:    []string{"status"},
			took:    time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			done := New(&buf, tt.verbose, tt.quiet).Command(tt.dir, "git", tt.args...)
			if buf.Len() != 0 {
				t.Fatalf("Command wrote %q before the run finished", buf.String())
			}
			done(tt.took)
			if got := buf.String(); got != tt.want {
				t.Errorf("Command output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		msg     string
		kv      []any
		want    string
	}{
		{"identity attempt", true, false, "identity rejected", []any{"identity", "/keys/deploy", "exit", 128}, "identity rejected identity=/keys/deploy exit=128\n"},
		{"message only", true, false, "not inside a checkout", nil, "not inside a checkout\n"},
		{"dangling key dropped", true, false, "removing remote", []any{"remote", "origin", "cwd"}, "removing remote remote=origin\n"},
		{"not verbose", false, false, "identity rejected", []any{"exit", 128}, ""},
		{"quiet", true, true, "identity rejected", []any{"exit", 128}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			New(&buf, tt.verbose, tt.quiet).Debug(tt.msg, tt.kv...)
			if got := buf.String(); got != tt.want {
				t.Errorf("Debug output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		quiet bool
		log   func(l *Logger)
		want  string
	}{
		{"warn", false, func(l *Logger) { l.Warnf("Unknown action '%s' for remote '%s'", "fetchx", "origin") }, "Warning: Unknown action 'fetchx' for remote 'origin'\n"},
		{"error", false, func(l *Logger) { l.Errorf("Command '%s' failed", "git push") }, "Error: Command 'git push' failed\n"},
		{"printf", false, func(l *Logger) { l.Printf("cloned into %s", "/srv/repo") }, "cloned into /srv/repo"},
		{"println", false, func(l *Logger) { l.Println("Removed worktree", "/srv/wt") }, "Removed worktree /srv/wt\n"},
		{"warn quiet", true, func(l *Logger) { l.Warnf("nope") }, ""},
		{"error quiet", true, func(l *Logger) { l.Errorf("nope") }, ""},
		{"printf quiet", true, func(l *Logger) { l.Printf("nope") }, ""},
		{"println quiet", true, func(l *Logger) { l.Println("nope") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(New(&buf, false, tt.quiet))
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		verbose, quiet, want bool
	}{
		{true, false, true},
		{false, true, false},
		{true, true, false},
		{false, false, false},
	} {
		if got := New(io.Discard, tt.verbose, tt.quiet).IsVerbose(); got != tt.want {
			t.Errorf("New(verbose=%v, quiet=%v).IsVerbose() = %v, want %v", tt.verbose, tt.quiet, got, tt.want)
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, true, false)
	if got := FromContext(WithLogger(context.Background(), l)); got != l {
		t.Error("FromContext did not return the attached logger")
	}
	if l.Writer() != &buf {
		t.Error("Writer() did not return the underlying writer")
	}

	// Library callers without a logger get a silent one.
	fallback := FromContext(context.Background())
	if fallback.Writer() != io.Discard {
		t.Error("fallback logger should write to io.Discard")
	}
	if fallback.IsVerbose() {
		t.Error("fallback logger should not be verbose")
	}
	fallback.Warnf("dropped")
	fallback.Command("/srv/repo", "git", "status")(time.Millisecond)
}
