//go:build windows

package cmd

import (
	"fmt"
	"os/exec"
)

func runAs(_ *exec.Cmd, name string) ([]string, error) {
	return nil, fmt.Errorf("cannot run as %q: switching users is not supported on windows", name)
}
