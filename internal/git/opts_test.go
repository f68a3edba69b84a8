package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOpts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Opts
		want []string
	}{
		{"zero value", Opts{}, nil},
		{"empty string", OptString(""), nil},
		{"plain words", OptString("--depth 1 --no-tags"), []string{"--depth", "1", "--no-tags"}},
		{"single quotes", OptString(`-c 'user.name=A B'`), []string{"-c", "user.name=A B"}},
		{"double quotes", OptString(`-m "fix: thing"`), []string{"-m", "fix: thing"}},
		{"string keeps trailing separator", OptString("--cached --"), []string{"--cached", "--"}},
		{"list verbatim", OptList("-f", "--prune"), []string{"-f", "--prune"}},
		{"list trailing separator", OptList("-f", "--"), []string{"-f"}},
		{"only separator", OptList("--"), []string{}},
		{"repeated trailing separator", OptList("-f", "--", "--"), []string{"-f"}},
		{"separator not trailing", OptList("--", "-f"), []string{"--", "-f"}},
		{"mixed values", OptValues("--depth", 1, true), []string{"--depth", "1", "true"}},
		{"mixed values trailing separator", OptValues("--depth", 1, "--"), []string{"--depth", "1"}},
		{"scalar", OptValue(42), []string{"42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FormatOpts(tt.in)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatOpts_UnbalancedQuote(t *testing.T) {
	t.Parallel()

	_, err := FormatOpts(OptString(`-m "unterminated`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestFormatOpts_TrailingSeparatorIsIgnored(t *testing.T) {
	t.Parallel()

	lists := [][]string{
		{},
		{"-v"},
		{"--force", "origin", "main"},
		{"--", "--"},
		{"-c", "a=b", "--"},
	}
	for _, list := range lists {
		withSep := append(append([]string{}, list...), "--")

		got, err := FormatOpts(OptList(withSep...))
		require.NoError(t, err)
		want, err := FormatOpts(OptList(list...))
		require.NoError(t, err)

		assert.Equal(t, len(want), len(got), "input %q", withSep)
		if len(want) > 0 {
			assert.Equal(t, want, got, "input %q", withSep)
		}
	}
}

func TestFormatOpts_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []Opts{
		OptString(`--depth 1 -c 'core.sshCommand=ssh -v'`),
		OptList("--prune", "--tags"),
		OptValues("-n", 3),
		OptValue(7),
	}
	for _, in := range inputs {
		first, err := FormatOpts(in)
		require.NoError(t, err)
		second, err := FormatOpts(OptList(first...))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestOpts_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Opts{}.IsZero())
	assert.False(t, OptString("").IsZero())
	assert.False(t, OptList().IsZero())
}
