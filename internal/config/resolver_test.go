package config

import (
	"context"
	"path/filepath"
	"testing"
)

func TestConfigResolver(t *testing.T) {
	t.Parallel()

	global := &Config{User: "root"}
	r := NewResolver(global)

	if got, _ := r.ConfigForRepo(""); got != global {
		t.Error("empty path should resolve to global")
	}
	if got, _ := r.ConfigForRepo("global"); got != global {
		t.Error(`"global" should resolve to global`)
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, LocalConfigFileName), `user = "deploy"`)

	first, err := r.ConfigForRepo(dir)
	if err != nil {
		t.Fatalf("ConfigForRepo error: %v", err)
	}
	if first.User != "deploy" {
		t.Errorf("User = %q, want deploy", first.User)
	}
	second, _ := r.ConfigForRepo(dir)
	if first != second {
		t.Error("expected cached config on second call")
	}
	if r.Global() != global {
		t.Error("Global() should return the backing config")
	}
}

func TestConfigResolver_Error(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, LocalConfigFileName), "user = [")

	if _, err := NewResolver(&Config{}).ConfigForRepo(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolverContext(t *testing.T) {
	t.Parallel()

	if ResolverFromContext(context.Background()) != nil {
		t.Error("expected nil resolver from empty context")
	}
	r := NewResolver(&Config{})
	ctx := WithResolver(context.Background(), r)
	if ResolverFromContext(ctx) != r {
		t.Error("resolver not round-tripped through context")
	}
}
