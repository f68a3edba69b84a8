package git

import (
	"fmt"

	"github.com/mattn/go-shellwords"
)

// optsKind tags the variant held by Opts.
type optsKind int

const (
	optsNone optsKind = iota
	optsString
	optsList
	optsValue
)

// Opts is loosely-typed extra command-line input. The zero value adds nothing.
//
// Build one with [OptString] (shell-split), [OptList] (already split),
// [OptValues] (mixed values, each stringified) or [OptValue] (a single scalar).
type Opts struct {
	kind   optsKind
	str    string
	list   []string
	values []any
}

// OptString returns opts that are split with shell quoting rules.
func OptString(s string) Opts {
	return Opts{kind: optsString, str: s}
}

// OptList returns opts that are already split into arguments.
func OptList(args ...string) Opts {
	return Opts{kind: optsList, list: args}
}

// OptValues returns opts built from arbitrary values. Non-string elements are
// rendered with fmt.Sprint.
func OptValues(values ...any) Opts {
	return Opts{kind: optsList, values: values}
}

// OptValue wraps a single non-string scalar, e.g. a number.
func OptValue(v any) Opts {
	return Opts{kind: optsValue, values: []any{v}}
}

// IsZero reports whether o carries no input at all.
func (o Opts) IsZero() bool {
	return o.kind == optsNone
}

// FormatOpts turns o into arguments. Trailing "--" elements of a list are
// dropped; callers append the separator themselves where it belongs.
func FormatOpts(o Opts) ([]string, error) {
	switch o.kind {
	case optsString:
		args, err := shellwords.Parse(o.str)
		if err != nil {
			return nil, invalidArgf("Unable to parse opts %q: %v", o.str, err)
		}
		return args, nil
	case optsList:
		var args []string
		if o.values != nil {
			args = make([]string, 0, len(o.values))
			for _, v := range o.values {
				args = append(args, stringify(v))
			}
		} else {
			args = append([]string(nil), o.list...)
		}
		for len(args) > 0 && args[len(args)-1] == "--" {
			args = args[:len(args)-1]
		}
		return args, nil
	case optsValue:
		return []string{stringify(o.values[0])}, nil
	default:
		return nil, nil
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
