package git

import "path/filepath"

// globalScope selects the user's global git config instead of a checkout.
const globalScope = "global"

// checkAbs fails on the first path that is not absolute.
func checkAbs(paths ...string) error {
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			return invalidArgf("Path '%s' is not absolute", p)
		}
	}
	return nil
}
