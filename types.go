package multihost

import (
	"net/http"
	"time"
)

// Method is one of the HTTP verbs the dispatcher issues.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Middleware represents a middleware function
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Session is a transport handle scoped to a single request. The dispatcher
// opens one per call and closes it once the response (or failure) is known.
type Session interface {
	Do(*http.Request) (*http.Response, error)
	Close()
}

// SessionFunc opens a new Session over the given round tripper.
type SessionFunc func(rt http.RoundTripper, timeout time.Duration) Session

// DebugConfig selects which events are logged when a Logger is configured.
type DebugConfig struct {
	Enabled     bool
	LogRequests bool
	LogRegistry bool
}

// DefaultDebugConfig returns a disabled config with every category selected,
// so WithDebug only has to flip Enabled.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:     false,
		LogRequests: true,
		LogRegistry: true,
	}
}

// Option represents a configuration option
type Option func(*Client)

// httpSession is the default Session: a fresh *http.Client sharing the
// configured round tripper. Redirects are not followed, so callers see the
// response the endpoint actually sent.
type httpSession struct {
	client *http.Client
}

func newHTTPSession(rt http.RoundTripper, timeout time.Duration) Session {
	return &httpSession{client: &http.Client{
		Transport: rt,
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func (s *httpSession) Do(req *http.Request) (*http.Response, error) {
	return s.client.Do(req)
}

// Close drops the per-call client. Pooled connections belong to the
// transport and stay open for later sessions.
func (s *httpSession) Close() {
	s.client = nil
}
