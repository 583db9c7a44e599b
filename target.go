package multihost

import (
	"context"
	"net/http"

	"github.com/ambiyansyah-risyal/multihost/internal/urlpath"
)

// Target is a Client view pinned to one endpoint. Use it when concurrent
// GetInstance calls for other hosts must not redirect in-flight work.
type Target struct {
	client   *Client
	endpoint Endpoint
	baseURL  string
}

// Target snapshots the current endpoint.
func (c *Client) Target() (*Target, error) {
	ep, err := c.Endpoint()
	if err != nil {
		return nil, err
	}
	baseURL, _ := ep.BaseURL()
	return &Target{client: c, endpoint: ep, baseURL: baseURL}, nil
}

// Endpoint returns the pinned endpoint.
func (t *Target) Endpoint() Endpoint {
	return t.endpoint
}

// BaseURL returns the pinned base URL.
func (t *Target) BaseURL() string {
	return t.baseURL
}

// MakeURL joins path onto the pinned base URL.
func (t *Target) MakeURL(path string) string {
	return urlpath.Join(t.baseURL, path)
}

func (t *Target) Get(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return t.Do(ctx, MethodGet, path, opts...)
}

func (t *Target) Post(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return t.Do(ctx, MethodPost, path, opts...)
}

func (t *Target) Put(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return t.Do(ctx, MethodPut, path, opts...)
}

func (t *Target) Patch(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return t.Do(ctx, MethodPatch, path, opts...)
}

func (t *Target) Delete(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	return t.Do(ctx, MethodDelete, path, opts...)
}

// Do sends method to path on the pinned endpoint.
func (t *Target) Do(ctx context.Context, method Method, path string, opts ...RequestOption) (*http.Response, error) {
	if t == nil {
		return nil, newError(ErrorTypeIllegalConstruction, "target cannot be constructed directly, use Client.Target", nil)
	}
	if err := t.client.check(); err != nil {
		return nil, err
	}
	return t.client.dispatch(ctx, t.endpoint, method, path, opts)
}
