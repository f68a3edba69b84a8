package git

import (
	"bufio"
	"context"
	"strings"

	"github.com/raphi011/gitctl/internal/log"
)

// Change-state labels used as keys of a parsed status.
const (
	StateModified  = "modified"
	StateNew       = "new"
	StateDeleted   = "deleted"
	StateUntracked = "untracked"
)

var stateLabels = map[string]string{
	"M":  StateModified,
	"A":  StateNew,
	"D":  StateDeleted,
	"??": StateUntracked,
}

// Status maps a change state to the paths in that state, in the order git
// reported them. Unknown state codes are used verbatim as keys.
type Status map[string][]string

// parseStatus parses `git status -z --porcelain` output.
//
// Entries normally look like "XY path". A segment holding nothing but a
// short state code takes the next segment as its path. Renames and copies
// are followed by their source path, which is skipped.
func parseStatus(out string) Status {
	st := Status{}
	pending := ""
	skip := false
	for _, seg := range strings.Split(out, "\x00") {
		if skip {
			skip = false
			continue
		}
		if pending != "" {
			if seg != "" {
				st.add(pending, seg)
				skip = hasSource(pending)
			}
			pending = ""
			continue
		}

		code, path, ok := splitField(strings.TrimLeft(seg, " \t"))
		if ok {
			st.add(code, path)
			skip = hasSource(code)
			continue
		}
		if isStateCode(code) {
			pending = code
		}
	}
	return st
}

func (s Status) add(code, path string) {
	label, ok := stateLabels[code]
	if !ok {
		label = code
	}
	s[label] = append(s[label], path)
}

// hasSource reports whether an entry with this XY code is followed by the
// path it was renamed or copied from.
func hasSource(code string) bool {
	return strings.ContainsAny(code, "RC")
}

// isStateCode reports whether s looks like a porcelain XY code on its own.
func isStateCode(s string) bool {
	if s == "" || len(s) > 2 {
		return false
	}
	return strings.Trim(s, "MTADRCU?!") == ""
}

// splitField splits s on the first run of whitespace. Leading whitespace is
// ignored, trailing whitespace stays part of rest. ok is false when either
// side would be empty.
func splitField(s string) (head, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, "", false
	}
	rest = strings.TrimLeft(s[i:], " \t")
	return s[:i], rest, rest != ""
}

// rsplitField splits s on the last run of whitespace.
func rsplitField(s string) (rest, tail string, ok bool) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexAny(s, " \t")
	if i < 0 {
		return "", s, false
	}
	return strings.TrimRight(s[:i], " \t"), s[i+1:], true
}

// Remote holds the URLs of one remote.
type Remote struct {
	Fetch string `json:"fetch,omitempty"`
	Push  string `json:"push,omitempty"`
}

// parseRemotes parses `git remote --verbose` output. Lines with an action
// other than fetch or push are skipped with a warning.
func parseRemotes(ctx context.Context, out, cwd string) map[string]Remote {
	remotes := make(map[string]Remote)

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		name, info, ok := splitField(sc.Text())
		if !ok {
			continue
		}
		url, action, ok := rsplitField(info)
		if !ok {
			continue
		}
		action = strings.ToLower(strings.TrimRight(strings.TrimLeft(action, "("), ")"))

		r := remotes[name]
		switch action {
		case "fetch":
			r.Fetch = url
		case "push":
			r.Push = url
		default:
			log.FromContext(ctx).Warnf("Unknown action '%s' for remote '%s' in git checkout located in %s", action, name, cwd)
			continue
		}
		remotes[name] = r
	}
	return remotes
}

// parseLines returns the non-empty lines of out in order.
func parseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseLsRemote keeps the object id of every `git ls-remote` line.
func parseLsRemote(out string) string {
	var hashes []string
	for _, line := range parseLines(out) {
		if fields := strings.Fields(line); len(fields) > 0 {
			hashes = append(hashes, fields[0])
		}
	}
	return strings.Join(hashes, "\n")
}
