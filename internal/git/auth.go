package git

import (
	"net/url"
	"strings"
)

// addHTTPBasicAuth embeds user:pass into rawURL. Only https URLs accept
// credentials; with both credentials empty the URL is returned untouched.
// Everything after the scheme is kept as written, except that existing
// credentials in the authority are replaced.
func addHTTPBasicAuth(rawURL, user, pass string) (string, error) {
	if user == "" && pass == "" {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" {
		return "", invalidArgf("Basic Auth only supported for HTTPS")
	}
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return "", invalidArgf("Basic Auth only supported for HTTPS")
	}

	prefix, rest := rawURL[:i+3], rawURL[i+3:]
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	if at := strings.LastIndex(rest[:end], "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return prefix + url.UserPassword(user, pass).String() + "@" + rest, nil
}
