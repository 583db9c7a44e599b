package multihost

import (
	"context"
	"net/http"
	"time"

	"github.com/ambiyansyah-risyal/multihost/internal/urlpath"
)

// Get issues a GET to path on the current endpoint.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return c.Do(ctx, MethodGet, path, opts...)
}

// Post issues a POST to path on the current endpoint.
func (c *Client) Post(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return c.Do(ctx, MethodPost, path, opts...)
}

// Put issues a PUT to path on the current endpoint.
func (c *Client) Put(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return c.Do(ctx, MethodPut, path, opts...)
}

// Patch issues a PATCH to path on the current endpoint.
func (c *Client) Patch(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return c.Do(ctx, MethodPatch, path, opts...)
}

// Delete issues a DELETE to path on the current endpoint.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return c.Do(ctx, MethodDelete, path, opts...)
}

// Do sends method to path on the current endpoint. The response, or the
// transport's error, is returned exactly as the transport produced it.
func (c *Client) Do(ctx context.Context, method Method, path string, opts ...RequestOption) (*http.Response, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	ep, err := c.registry.Current()
	if err != nil {
		return nil, err
	}
	return c.dispatch(ctx, ep, method, path, opts)
}

func (c *Client) dispatch(ctx context.Context, ep Endpoint, method Method, path string, opts []RequestOption) (*http.Response, error) {
	baseURL, ok := ep.BaseURL()
	if !ok {
		return nil, newError(ErrorTypeMissingHost, "endpoint has no host", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := c.requestIDFor(ctx)
	fullURL := urlpath.Join(baseURL, path)

	req, err := c.buildRequest(ctx, method, fullURL, requestID, opts)
	if err != nil {
		c.metrics.RecordError(ErrorTypeValidation, string(method), baseURL)
		e := newError(ErrorTypeValidation, "cannot build request", err)
		e.RequestID = requestID
		e.Method = string(method)
		e.URL = fullURL
		e.Endpoint = baseURL
		return nil, e
	}

	c.debugLog(c.debug.LogRequests, "Starting request", "requestID", requestID, "method", method, "url", req.URL.String(), "endpoint", baseURL)

	start := time.Now()
	c.metrics.RecordRequestStart(string(method), baseURL)

	session := c.sessionFunc(c.roundTripper(), c.timeout)
	resp, err := session.Do(req)
	session.Close()

	c.metrics.RecordRequestEnd(string(method), baseURL)
	duration := time.Since(start)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	c.metrics.RecordRequest(string(method), baseURL, statusCode, duration)

	if err != nil {
		c.metrics.RecordError("Transport", string(method), baseURL)
		c.warnLog("Request failed", "requestID", requestID, "method", method, "url", req.URL.String(), "duration", duration, "error", err.Error())
		return resp, err
	}

	c.debugLog(c.debug.LogRequests, "Request completed", "requestID", requestID, "method", method, "url", req.URL.String(), "status", statusCode, "duration", duration)

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, method Method, fullURL, requestID string, opts []RequestOption) (*http.Request, error) {
	rc := newRequestConfig(opts)
	if err := rc.validateFor(method); err != nil {
		return nil, err
	}

	body, contentType, err := rc.body()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, string(method), fullURL, body)
	if err != nil {
		return nil, err
	}

	if len(rc.params) > 0 {
		query := req.URL.Query()
		for k, vs := range rc.params {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		req.URL.RawQuery = query.Encode()
	}

	for k, vs := range rc.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if requestID != "" && req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, requestID)
	}
	for _, cookie := range rc.cookies {
		if cookie != nil {
			req.AddCookie(cookie)
		}
	}

	return req, nil
}

// roundTripper wraps the configured transport in the middleware chain, with
// tracing outermost when enabled.
func (c *Client) roundTripper() http.RoundTripper {
	middleware := c.middleware
	if mw := c.tracer.middleware(); mw != nil {
		middleware = append([]Middleware{mw}, middleware...)
	}

	if len(middleware) == 0 {
		return c.transport
	}

	var current RoundTripper = RoundTripperFunc(c.transport.RoundTrip)

	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return mw(r, next)
		})
	}

	return RoundTripperFunc(current.RoundTrip)
}
