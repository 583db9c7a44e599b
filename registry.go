package multihost

import (
	"encoding/base64"
	"sort"
	"sync"
	"unicode/utf8"
)

// KeyFunc turns a base URL into a registry key. It must be deterministic and
// injective over valid base URLs.
type KeyFunc func(baseURL string) (string, error)

// DefaultKeyFunc base64-encodes the UTF-8 bytes of the base URL.
func DefaultKeyFunc(baseURL string) (string, error) {
	if !utf8.ValidString(baseURL) {
		return "", ErrEncoding
	}
	return base64.StdEncoding.EncodeToString([]byte(baseURL)), nil
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithKeyFunc replaces the key encoding.
func WithKeyFunc(fn KeyFunc) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.keyFunc = fn
		}
	}
}

// WithRegistryMetrics records registrations on the given collector.
func WithRegistryMetrics(mc *MetricsCollector) RegistryOption {
	return func(r *Registry) {
		r.metrics = mc
	}
}

// Registry is a keyed table of endpoints with a last-writer-wins notion of
// the current endpoint. Entries are only ever added. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Endpoint
	current string
	keyFunc KeyFunc
	metrics *MetricsCollector
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]Endpoint),
		keyFunc: DefaultKeyFunc,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register builds an endpoint from the arguments, adds it unless its base URL
// is already known, and makes it current.
func (r *Registry) Register(host string, port int, protocol string) (Endpoint, error) {
	return r.RegisterEndpoint(NewEndpoint(host, port, protocol))
}

// RegisterEndpoint is Register for an already built Endpoint.
func (r *Registry) RegisterEndpoint(ep Endpoint) (Endpoint, error) {
	stored, _, err := r.register(ep)
	return stored, err
}

// register reports whether a new entry was created. On error nothing changes.
func (r *Registry) register(ep Endpoint) (Endpoint, bool, error) {
	ep = NewEndpoint(ep.Host, ep.Port, string(ep.Protocol))
	baseURL, ok := ep.BaseURL()
	if !ok {
		return Endpoint{}, false, newError(ErrorTypeMissingHost, "cannot register endpoint: host is missing", nil)
	}

	key, err := r.keyFunc(baseURL)
	if err != nil {
		e := newError(ErrorTypeEncoding, "cannot encode base url to registry key", err)
		e.Endpoint = baseURL
		return Endpoint{}, false, e
	}

	r.mu.Lock()
	stored, exists := r.entries[key]
	if !exists {
		stored = ep
		r.entries[key] = ep
	}
	r.current = key
	r.metrics.RecordRegistration(baseURL, !exists, len(r.entries))
	r.mu.Unlock()

	return stored, !exists, nil
}

// attachMetrics sets the collector unless one is already configured.
func (r *Registry) attachMetrics(mc *MetricsCollector) {
	if mc == nil {
		return
	}
	r.mu.Lock()
	if r.metrics == nil {
		r.metrics = mc
	}
	r.mu.Unlock()
}

// Current returns the most recently registered endpoint.
func (r *Registry) Current() (Endpoint, error) {
	r.mu.RLock()
	ep, ok := r.entries[r.current]
	r.mu.RUnlock()

	if !ok {
		return Endpoint{}, newError(ErrorTypeNotRegistered, "no endpoint has been registered", nil)
	}
	return ep, nil
}

// BaseURL returns the base URL of the current endpoint.
func (r *Registry) BaseURL() (string, error) {
	ep, err := r.Current()
	if err != nil {
		return "", err
	}
	baseURL, ok := ep.BaseURL()
	if !ok {
		return "", newError(ErrorTypeMissingHost, "current endpoint has no host", nil)
	}
	return baseURL, nil
}

// Lookup finds an endpoint by its base URL without changing current.
func (r *Registry) Lookup(baseURL string) (Endpoint, bool) {
	key, err := r.keyFunc(baseURL)
	if err != nil {
		return Endpoint{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.entries[key]
	return ep, ok
}

// Len returns the number of distinct endpoints.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Endpoints returns a snapshot of every endpoint, sorted by base URL.
func (r *Registry) Endpoints() []Endpoint {
	r.mu.RLock()
	out := make([]Endpoint, 0, len(r.entries))
	for _, ep := range r.entries {
		out = append(out, ep)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// RegisterAll registers each endpoint in order; the last one ends up current.
// It stops at the first failure.
func (r *Registry) RegisterAll(endpoints []EndpointConfig) error {
	for _, ec := range endpoints {
		if _, err := r.Register(ec.Host, ec.Port, ec.Protocol); err != nil {
			return err
		}
	}
	return nil
}
