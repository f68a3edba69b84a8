package git

import (
	"context"
	"maps"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/gitctl/internal/log"
)

// Remotes returns the fetch and push URLs of every remote in cwd.
func (c *Client) Remotes(ctx context.Context, cwd string, call CallOptions) (map[string]Remote, error) {
	if err := checkAbs(cwd); err != nil {
		return nil, err
	}
	res, err := c.run(ctx, cwd, call, "remote", "--verbose")
	if err != nil {
		return nil, err
	}
	return parseRemotes(ctx, res.Stdout, cwd), nil
}

// RemoteGet returns the URLs of one remote (default origin). A missing
// remote is an ErrLookupFailed error.
func (c *Client) RemoteGet(ctx context.Context, cwd, remote string, call CallOptions) (Remote, error) {
	if err := checkAbs(cwd); err != nil {
		return Remote{}, err
	}
	remote = defaultString(remote, "origin")

	all, err := c.Remotes(ctx, cwd, call)
	if err != nil {
		return Remote{}, err
	}
	r, ok := all[remote]
	if !ok {
		msg := "Remote '%s' not present in git checkout located at %s"
		if s := suggestRemote(remote, all); s != "" {
			return Remote{}, lookupFailedf(msg+" (did you mean '%s'?)", remote, cwd, s)
		}
		return Remote{}, lookupFailedf(msg, remote, cwd)
	}
	return r, nil
}

// suggestRemote returns the configured remote that best matches name.
func suggestRemote(name string, remotes map[string]Remote) string {
	names := slices.Sorted(maps.Keys(remotes))
	if matches := fuzzy.Find(name, names); len(matches) > 0 {
		return matches[0].Str
	}
	return ""
}

// RemoteSetOptions configures RemoteSet.
type RemoteSetOptions struct {
	CallOptions
	Remote    string // default origin
	HTTPSUser string
	HTTPSPass string

	// PushURL, when set, becomes a separate push URL with its own credentials.
	PushURL       string
	PushHTTPSUser string
	PushHTTPSPass string
}

// RemoteSet (re)creates a remote pointing at url and returns its URLs. An
// existing remote with the same name is removed first.
func (c *Client) RemoteSet(ctx context.Context, cwd, url string, o RemoteSetOptions) (Remote, error) {
	if err := checkAbs(cwd); err != nil {
		return Remote{}, err
	}
	remote := defaultString(o.Remote, "origin")

	url, err := addHTTPBasicAuth(url, o.HTTPSUser, o.HTTPSPass)
	if err != nil {
		return Remote{}, err
	}
	var pushURL string
	if o.PushURL != "" {
		if pushURL, err = addHTTPBasicAuth(o.PushURL, o.PushHTTPSUser, o.PushHTTPSPass); err != nil {
			return Remote{}, err
		}
	}

	existing, err := c.Remotes(ctx, cwd, o.CallOptions)
	if err != nil {
		return Remote{}, err
	}
	if _, ok := existing[remote]; ok {
		log.FromContext(ctx).Debug("removing remote so it can be re-added", "remote", remote, "cwd", cwd)
		if _, err := c.run(ctx, cwd, o.CallOptions, "remote", "rm", remote); err != nil {
			return Remote{}, err
		}
	}

	if _, err := c.run(ctx, cwd, o.CallOptions, "remote", "add", remote, url); err != nil {
		return Remote{}, err
	}
	if pushURL != "" {
		if _, err := c.run(ctx, cwd, o.CallOptions, "remote", "set-url", "--push", remote, pushURL); err != nil {
			return Remote{}, err
		}
	}
	return c.RemoteGet(ctx, cwd, remote, o.CallOptions)
}
