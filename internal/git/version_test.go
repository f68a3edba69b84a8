package git

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gitctl/internal/cmd"
	"github.com/raphi011/gitctl/internal/log"
)

func TestVersion_Memoized(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{results: []cmd.Result{ok("git version 2.43.0")}}
	r, _ := newTestRunner(t, spy)
	ctx := context.Background()

	assert.Equal(t, "2.43.0", r.Version(ctx, ""))
	assert.Equal(t, "2.43.0", r.Version(ctx, ""))
	assert.Equal(t, "2.43.0", r.VersionInfo(ctx, "").String())
	assert.Len(t, spy.calls, 1)
	assert.Equal(t, []string{"git", "--version"}, spy.calls[0].Args)
}

func TestVersion_Vendor(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{results: []cmd.Result{ok("git version 2.39.3 (Apple Git-146)")}}
	r, _ := newTestRunner(t, spy)

	assert.Equal(t, "2.39.3", r.Version(context.Background(), ""))
}

func TestVersion_Unknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result cmd.Result
		log    string
	}{
		{"git fails", failed(1, "boom"), "Failed to obtain the git version"},
		{"no output", ok(""), "returned no stdout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))
			spy := &spyExecutor{results: []cmd.Result{tt.result}}
			r, _ := newTestRunner(t, spy)

			assert.Equal(t, "unknown", r.Version(ctx, ""))
			assert.Contains(t, buf.String(), tt.log)

			info := r.VersionInfo(ctx, "")
			require.Len(t, info, 1)
			assert.False(t, info[0].Numeric)
			assert.Len(t, spy.calls, 1)
		})
	}
}

func TestParseVersionInfo(t *testing.T) {
	t.Parallel()

	info := parseVersionInfo("2.43.0.windows.1")
	assert.Equal(t, VersionInfo{
		{Num: 2, Numeric: true},
		{Num: 43, Numeric: true},
		{Num: 0, Numeric: true},
		{Text: "windows"},
		{Num: 1, Numeric: true},
	}, info)
	assert.Equal(t, "2.43.0.windows.1", info.String())

	data, err := json.Marshal(info)
	require.NoError(t, err)
	assert.JSONEq(t, `[2,43,0,"windows",1]`, string(data))
}

func TestVersionInfo_AtLeast(t *testing.T) {
	t.Parallel()

	v := parseVersionInfo("2.43.1")
	tests := []struct {
		want []int
		ok   bool
	}{
		{[]int{2}, true},
		{[]int{2, 43}, true},
		{[]int{2, 43, 1}, true},
		{[]int{2, 43, 2}, false},
		{[]int{2, 5}, true},
		{[]int{3}, false},
		{[]int{1, 99}, true},
		{[]int{2, 43, 1, 1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, v.AtLeast(tt.want...), "AtLeast(%v)", tt.want)
	}

	assert.False(t, parseVersionInfo("unknown").AtLeast(1))
}

func TestClientVersion_UsesDefaultUser(t *testing.T) {
	t.Parallel()

	spy := &spyExecutor{results: []cmd.Result{ok("git version 2.45.0")}}
	r, _ := newTestRunner(t, spy)
	c := NewClient(r, WithUser("deploy"))

	assert.Equal(t, "2.45.0", c.Version(context.Background(), CallOptions{}))
	assert.True(t, c.VersionInfo(context.Background(), CallOptions{}).AtLeast(2, 45))
	assert.Equal(t, "deploy", spy.calls[0].User)
}
