package cmd

import (
	"fmt"
	"os/user"
	"strconv"
)

// LookupUID resolves an OS user name to its numeric user id.
func LookupUID(name string) (int, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, fmt.Errorf("lookup user %q: %w", name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("user %q has no numeric uid (%s)", name, u.Uid)
	}
	return uid, nil
}
