// Package httpapi implements an HTTP service answering browser-extension
// and bookmarklet requests for a site's password: it resolves a site via
// config.Resolve and derives the password via seedpass.Generate, using an
// HTTP Basic Auth password as the seed. Nothing is persisted at rest beyond
// the optional keyring seed; each request re-derives from scratch.
package httpapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/dsbarlow/seedpass"
	"github.com/dsbarlow/seedpass/config"
	"github.com/dsbarlow/seedpass/schema"
	"github.com/dsbarlow/seedpass/zero"
)

// HostFilter is a set of CIDR masks defining which remote addresses may
// query the service. An empty filter allows all callers.
type HostFilter []*net.IPNet

// NewHostFilter builds a HostFilter from CIDR strings.
func NewHostFilter(masks []string) (HostFilter, error) {
	m := make(HostFilter, len(masks))
	for i, cidr := range masks {
		_, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("httpapi: parsing CIDR %q: %w", cidr, err)
		}
		m[i] = ipnet
	}
	return m, nil
}

// Contains reports whether host (an address without a port) matches any
// mask in the filter.
func (h HostFilter) Contains(host string) bool {
	if len(h) == 0 {
		return true
	}
	ip := net.ParseIP(host)
	for _, m := range h {
		if m.Contains(ip) {
			return true
		}
	}
	return false
}

// Wrap returns next guarded by h: a request whose remote address does not
// match any mask in h is rejected with 403 before it reaches next. Unlike a
// field consulted from inside the handler, this composes as ordinary
// net/http middleware, so a caller can layer host filtering onto any
// handler, not just a *Server.
func (h HostFilter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		host, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil || !h.Contains(host) {
			http.Error(w, "caller is not allowed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// Server answers HTTP requests for derived passwords. It implements
// http.Handler. Every request is served by resolving its site token against
// Config and running a fresh seedpass.Generate; no state survives between
// requests.
type Server struct {
	// Config resolves a site token to its schema, increment, and username.
	Config *config.Config

	// Words is consulted by schemas with word-class nodes; it may be nil
	// if none of the configured schemas use one.
	Words schema.Words
}

// statusError pairs an error with the HTTP status it should produce,
// letting derive report failures without a side-channel status return.
type statusError struct {
	status int
	err    error
}

func withStatus(status int, err error) error {
	if err == nil {
		return nil
	}
	return &statusError{status: status, err: err}
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	password, err := s.derive(req)
	if err != nil {
		status := http.StatusInternalServerError
		var se *statusError
		if errors.As(err, &se) {
			status = se.status
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		fmt.Fprintln(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, password)
}

// derive resolves the request's site token and HTTP Basic Auth seed, then
// runs one derivation. Every returned error is a *statusError carrying the
// HTTP status ServeHTTP should report.
func (s *Server) derive(req *http.Request) (string, error) {
	if req.Method != http.MethodGet {
		return "", withStatus(http.StatusMethodNotAllowed, fmt.Errorf("unsupported method %q", req.Method))
	}

	token, err := pathToken(req.URL.Path)
	if err != nil {
		return "", withStatus(http.StatusBadRequest, err)
	}

	site, err := s.Config.Resolve(token)
	if err != nil {
		return "", withStatus(http.StatusBadRequest, fmt.Errorf("resolving %q: %w", token, err))
	}

	seed, err := basicAuthSeed(req)
	if err != nil {
		return "", withStatus(http.StatusUnauthorized, err)
	}

	result, err := seedpass.Generate(seedpass.Request{
		Seed:      seed,
		Increment: site.Increment,
		SiteURL:   site.Host,
		Username:  site.Username,
		Schema:    site.Schema,
		Words:     s.Words,
	})
	if err != nil {
		return "", withStatus(http.StatusInternalServerError, err)
	}
	return result.Password, nil
}

// pathToken extracts the site token from a request path of the form
// "/password/<token>".
func pathToken(p string) (string, error) {
	const prefix = "/password/"
	if len(p) <= len(prefix) || p[:len(prefix)] != prefix {
		return "", fmt.Errorf("invalid request path: %q", p)
	}
	return p[len(prefix):], nil
}

// basicAuthSeed reads the seed phrase from the request's HTTP Basic Auth
// password field; the username field is ignored. There is no support for
// interactive prompting here: this handler runs unattended, and the caller
// is expected to hold the seed already.
func basicAuthSeed(req *http.Request) (zero.Bytes, error) {
	_, pass, ok := req.BasicAuth()
	if !ok || pass == "" {
		return nil, errors.New("missing authorization")
	}
	return zero.Bytes(pass), nil
}
