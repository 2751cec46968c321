// Package urlcanon produces a canonical URL form: parse per RFC 3986 with
// scheme defaulted to https when absent, host lower-cased, an empty path
// forced to "/", and an optional username injected into the userinfo
// component before re-serialization.
//
// Built on net/url; RFC 3986 parsing and serialization already live there,
// so there is nothing here for a third-party URL library to add.
package urlcanon

import (
	"fmt"
	"net/url"
	"strings"
)

// Canonicalize parses input as a URL, defaulting the scheme to https when
// input has none, and returns its canonical string form. If username is
// non-empty, it is injected into the userinfo component.
func Canonicalize(input string, username string) (string, error) {
	u, err := parseWithSchemeFallback(input)
	if err != nil {
		return "", fmt.Errorf("urlcanon: %w", err)
	}

	u.Host = strings.ToLower(u.Host)
	if u.Opaque == "" && u.Path == "" {
		u.Path = "/"
	}
	if username != "" {
		u.User = url.User(username)
	}
	return u.String(), nil
}

// parseWithSchemeFallback parses input as-is; if that yields no scheme (the
// common case of a bare host like "google.com") or fails outright, it
// retries with an "https://" prefix.
func parseWithSchemeFallback(input string) (*url.URL, error) {
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		return u, nil
	}
	return url.Parse("https://" + input)
}
