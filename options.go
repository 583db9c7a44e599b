package multihost

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// WithTimeout sets the per-request timeout handed to each session
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransport sets the round tripper every session sends through
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithHTTPClient takes the transport and timeout of an existing client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client == nil {
			c.transport = nil
			return
		}
		c.transport = client.Transport
		if c.transport == nil {
			c.transport = http.DefaultTransport
		}
		if client.Timeout > 0 {
			c.timeout = client.Timeout
		}
	}
}

// WithSessionFunc replaces how per-request sessions are opened
func WithSessionFunc(fn SessionFunc) Option {
	return func(c *Client) {
		c.sessionFunc = fn
	}
}

// WithMiddleware adds middleware to the client
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithUserAgent sets the User-Agent sent when a request does not carry one.
// An empty value disables the header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRequestIDGenerator sets the function used by NewRequestID
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		c.requestIDGen = gen
	}
}

// WithMetrics enables Prometheus metrics collection on the default registerer
func WithMetrics() Option {
	return WithMetricsRegisterer(prometheus.DefaultRegisterer)
}

// WithMetricsRegisterer enables Prometheus metrics collection on registerer.
// The collectors are registered once the configuration has validated.
func WithMetricsRegisterer(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = nil
		c.metricsRegisterer = registerer
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
		c.metricsRegisterer = nil
	}
}

// WithTracerProvider traces every request with a tracer from tp
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp == nil {
			c.tracer.tracer = nil
			return
		}
		c.tracer.tracer = tp.Tracer(tracerName, trace.WithInstrumentationVersion(Version))
	}
}

// WithPropagator sets the propagator used by tracing instead of the global one
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(c *Client) {
		c.tracer.propagator = p
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a logfmt logger on stderr
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid
func (c *Client) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, c.validateTransportConfig()...)
	errors = append(errors, c.validateDebugConfig()...)
	errors = append(errors, c.validateMiddlewareConfig()...)
	errors = append(errors, c.validateExtremeValues()...)

	if c.debug == nil {
		c.debug = &DebugConfig{}
	}

	if len(errors) > 0 {
		return newError(ErrorTypeConfiguration, "configuration validation failed", fmt.Errorf("validation errors: %v", errors))
	}

	return nil
}

// validateTransportConfig validates transport and session configuration
func (c *Client) validateTransportConfig() []string {
	var errors []string

	if c.transport == nil {
		errors = append(errors, "transport cannot be nil")
	}
	if c.sessionFunc == nil {
		errors = append(errors, "session function cannot be nil")
	}
	if c.timeout <= 0 {
		errors = append(errors, "timeout must be positive")
	}
	if c.requestIDGen == nil {
		errors = append(errors, "request id generator cannot be nil")
	}

	return errors
}

// validateDebugConfig validates debug configuration
func (c *Client) validateDebugConfig() []string {
	var errors []string

	if c.debug != nil && c.debug.Enabled && c.logger == nil {
		errors = append(errors, "logger must be set when debug is enabled")
	}

	return errors
}

// validateMiddlewareConfig validates middleware configuration
func (c *Client) validateMiddlewareConfig() []string {
	var errors []string

	for i, middleware := range c.middleware {
		if middleware == nil {
			errors = append(errors, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return errors
}

// validateExtremeValues validates that configuration values are within reasonable bounds
func (c *Client) validateExtremeValues() []string {
	var errors []string

	if c.timeout > 10*time.Minute {
		errors = append(errors, "timeout > 10m may cause requests to hang for too long")
	}

	return errors
}
