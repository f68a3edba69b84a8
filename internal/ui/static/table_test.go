package static

import (
	"strings"
	"testing"

	"github.com/raphi011/gitctl/internal/git"
)

func TestRenderTableEmpty(t *testing.T) {
	t.Parallel()

	if got := RenderTable([]string{"A"}, nil); got != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", got)
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable(RemoteHeaders, [][]string{
		{"origin", "git@example.com:a.git", "-"},
	})
	for _, want := range []string{"REMOTE", "FETCH", "PUSH", "origin", "git@example.com:a.git"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("table should end with a newline")
	}
}

func TestStatusRows(t *testing.T) {
	t.Parallel()

	s := git.Status{
		git.StateUntracked: {"new.txt"},
		git.StateModified:  {"a.go", "b.go"},
		"R":                {"moved.go"},
	}
	rows := StatusRows(s)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	wantPaths := []string{"a.go", "b.go", "new.txt", "moved.go"}
	for i, want := range wantPaths {
		if rows[i][1] != want {
			t.Errorf("row %d path = %q, want %q", i, rows[i][1], want)
		}
	}
	if !strings.Contains(rows[0][0], git.StateModified) {
		t.Errorf("row 0 state = %q, want it to contain %q", rows[0][0], git.StateModified)
	}
	// unknown codes are not styled
	if rows[3][0] != "R" {
		t.Errorf("row 3 state = %q, want R", rows[3][0])
	}
}

func TestFormatStatusPlain(t *testing.T) {
	t.Parallel()

	s := git.Status{
		git.StateDeleted: {"gone.txt"},
		git.StateNew:     {"added.txt"},
	}
	want := "new\tadded.txt\ndeleted\tgone.txt\n"
	if got := FormatStatusPlain(s); got != want {
		t.Errorf("FormatStatusPlain = %q, want %q", got, want)
	}
	if got := FormatStatusPlain(git.Status{}); got != "" {
		t.Errorf("FormatStatusPlain(empty) = %q, want empty", got)
	}
}

func TestRemoteRows(t *testing.T) {
	t.Parallel()

	remotes := map[string]git.Remote{
		"upstream": {Fetch: "https://example.com/u.git", Push: "https://example.com/u.git"},
		"origin":   {Fetch: "git@example.com:o.git"},
	}
	rows := RemoteRows(remotes)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "origin" || rows[1][0] != "upstream" {
		t.Errorf("rows not sorted by name: %v", rows)
	}
	if rows[0][2] != "-" {
		t.Errorf("missing push URL = %q, want -", rows[0][2])
	}

	want := "origin\tgit@example.com:o.git\t-\nupstream\thttps://example.com/u.git\thttps://example.com/u.git\n"
	if got := FormatRemotesPlain(remotes); got != want {
		t.Errorf("FormatRemotesPlain = %q, want %q", got, want)
	}
}
