package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/raphi011/gitctl/internal/log"
)

const unknownVersion = "unknown"

// VersionPart is one dot-separated component of a git version. Numeric
// components set Num; others keep their text in Text.
type VersionPart struct {
	Num     int
	Text    string
	Numeric bool
}

func (p VersionPart) String() string {
	if p.Numeric {
		return strconv.Itoa(p.Num)
	}
	return p.Text
}

// MarshalJSON renders numeric parts as numbers and the rest as strings.
func (p VersionPart) MarshalJSON() ([]byte, error) {
	if p.Numeric {
		return []byte(strconv.Itoa(p.Num)), nil
	}
	return []byte(strconv.Quote(p.Text)), nil
}

// VersionInfo is a parsed git version, e.g. 2.43.0 or 2.39.3.(Apple.Git-146).
type VersionInfo []VersionPart

func (v VersionInfo) String() string {
	parts := make([]string, len(v))
	for i, p := range v {
		parts[i] = p.String()
	}
	return strings.Join(parts, ".")
}

// AtLeast reports whether v is at least the given numeric version. Comparison
// stops at the first non-numeric component.
func (v VersionInfo) AtLeast(want ...int) bool {
	for i, w := range want {
		if i >= len(v) || !v[i].Numeric {
			return false
		}
		if v[i].Num != w {
			return v[i].Num > w
		}
	}
	return true
}

func parseVersionInfo(s string) VersionInfo {
	var info VersionInfo
	for _, part := range strings.Split(s, ".") {
		if n, err := strconv.Atoi(part); err == nil {
			info = append(info, VersionPart{Num: n, Numeric: true})
		} else {
			info = append(info, VersionPart{Text: part})
		}
	}
	return info
}

// Version returns the installed git version, e.g. "2.43.0". The first call
// runs `git --version`; the result is cached for the life of the Runner.
// Failures are logged and reported as "unknown".
func (r *Runner) Version(ctx context.Context, user string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versionLocked(ctx, user)
}

// VersionInfo returns Version split into its components.
func (r *Runner) VersionInfo(ctx context.Context, user string) VersionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.info == nil {
		r.info = parseVersionInfo(r.versionLocked(ctx, user))
	}
	return r.info
}

func (r *Runner) versionLocked(ctx context.Context, user string) string {
	if r.version != "" {
		return r.version
	}

	l := log.FromContext(ctx)
	res, err := r.Run(ctx, []string{"--version"}, RunOptions{User: user})
	if err != nil {
		l.Errorf("Failed to obtain the git version (error follows):\n%v", err)
		r.version = unknownVersion
		return r.version
	}

	fields := strings.Fields(res.Stdout)
	if len(fields) == 0 {
		l.Errorf("Running '%s --version' returned no stdout", r.binary)
		r.version = unknownVersion
		return r.version
	}
	r.version = versionField(fields)
	return r.version
}

// versionField picks the version out of `git --version` output. Vendor
// builds append extra words ("git version 2.39.3 (Apple Git-146)"), so the
// word after "version" wins over the last one.
func versionField(fields []string) string {
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "version" {
			return fields[i+1]
		}
	}
	return fields[len(fields)-1]
}
