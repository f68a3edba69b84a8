package git

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrGitNotFound indicates the configured git binary is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// Check verifies that the runner's git binary can be found.
func (r *Runner) Check() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("%w: %s", ErrGitNotFound, r.binary)
	}
	return nil
}

// Binary returns the git executable the runner invokes.
func (r *Runner) Binary() string {
	return r.binary
}
