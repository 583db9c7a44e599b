package multihost

import (
	"net/http"
	"sync"
	"time"

	"github.com/ambiyansyah-risyal/multihost/internal/urlpath"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Client is the process-wide handle used to address the registered
// endpoints. It is only obtainable through a Factory; every request is built
// against the registry's current endpoint unless issued through a Target.
// It is safe for concurrent use.
type Client struct {
	factory     *Factory
	registry    *Registry
	transport   http.RoundTripper
	timeout     time.Duration
	sessionFunc SessionFunc
	middleware  []Middleware
	userAgent   string
	metrics     *MetricsCollector

	metricsRegisterer prometheus.Registerer
	tracer      tracerConfig
	debug       *DebugConfig
	logger      Logger

	requestIDGen func() string
	idMu         sync.RWMutex
	requestID    string

	validationError error
}

func newClient(f *Factory, options ...Option) *Client {
	client := &Client{
		factory:      f,
		registry:     f.registry,
		transport:    http.DefaultTransport,
		timeout:      30 * time.Second,
		sessionFunc:  newHTTPSession,
		middleware:   []Middleware{},
		userAgent:    "multihost/" + Version,
		debug:        DefaultDebugConfig(),
		requestIDGen: uuid.NewString,
	}

	for _, option := range options {
		if option != nil {
			option(client)
		}
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
		return client
	}

	if client.metrics == nil && client.metricsRegisterer != nil {
		client.metrics = NewMetricsCollectorWithRegistry(client.metricsRegisterer)
	}

	return client
}

// check rejects clients that were not built by a Factory.
func (c *Client) check() error {
	if c == nil || c.factory == nil {
		return newError(ErrorTypeIllegalConstruction, "client cannot be constructed directly, use GetInstance", nil)
	}
	return nil
}

// Registry returns the registry the client resolves endpoints from.
func (c *Client) Registry() (*Registry, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.registry, nil
}

// Endpoint returns the current endpoint.
func (c *Client) Endpoint() (Endpoint, error) {
	if err := c.check(); err != nil {
		return Endpoint{}, err
	}
	return c.registry.Current()
}

// BaseURL returns the base URL of the current endpoint. Call it right after
// GetInstance when that call's endpoint matters: current is process-wide.
func (c *Client) BaseURL() (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}
	return c.registry.BaseURL()
}

// MakeURL joins path onto the current base URL after collapsing repeated
// slashes and dropping one leading slash.
func (c *Client) MakeURL(path string) (string, error) {
	baseURL, err := c.BaseURL()
	if err != nil {
		return "", err
	}
	return urlpath.Join(baseURL, path), nil
}

// RequestID returns the correlation id attached to outgoing requests, or ""
// when none is set.
func (c *Client) RequestID() string {
	if c == nil {
		return ""
	}
	c.idMu.RLock()
	defer c.idMu.RUnlock()
	return c.requestID
}

// SetRequestID sets the correlation id. An empty id clears it.
func (c *Client) SetRequestID(id string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.idMu.Lock()
	c.requestID = id
	c.idMu.Unlock()
	return nil
}

// NewRequestID generates a fresh correlation id, stores it and returns it.
func (c *Client) NewRequestID() (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}
	id := c.requestIDGen()
	c.idMu.Lock()
	c.requestID = id
	c.idMu.Unlock()
	return id, nil
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

func (c *Client) debugLog(category bool, msg string, keysAndValues ...interface{}) {
	if c.debug == nil || !c.debug.Enabled || !category || c.logger == nil {
		return
	}
	c.logger.Debug(msg, keysAndValues...)
}

func (c *Client) warnLog(msg string, keysAndValues ...interface{}) {
	if c.debug == nil || !c.debug.Enabled || c.logger == nil {
		return
	}
	c.logger.Warn(msg, keysAndValues...)
}
