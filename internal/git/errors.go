package git

import (
	"errors"
	"fmt"

	"github.com/raphi011/gitctl/internal/cmd"
)

// Error kinds. Match with errors.Is.
var (
	// ErrInvalidArgument reports caller input that fails a local precondition.
	// Nothing has been executed when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExecutionFailed reports that git exited nonzero on every attempt.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrLookupFailed reports that a query succeeded but found no matching record.
	ErrLookupFailed = errors.New("lookup failed")
)

// Error is returned by every operation in this package.
type Error struct {
	Kind error
	Msg  string

	// Result of the last attempt, set for ErrExecutionFailed when git ran.
	Result *cmd.Result

	cause error
}

func (e *Error) Error() string {
	return e.Msg
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

func invalidArgf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func lookupFailedf(format string, args ...any) error {
	return &Error{Kind: ErrLookupFailed, Msg: fmt.Sprintf(format, args...)}
}

func execFailed(msg string, res *cmd.Result, cause error) error {
	return &Error{Kind: ErrExecutionFailed, Msg: msg, Result: res, cause: cause}
}
