package multihost

import (
	"sync"
	"sync/atomic"
)

// Factory is the only way to obtain a Client. It constructs the client once
// and, on every GetInstance call, registers the requested endpoint and makes
// it current.
type Factory struct {
	mu       sync.Mutex
	instance atomic.Pointer[Client]
	registry *Registry
	options  []Option
}

// NewFactory creates a factory bound to registry. A nil registry gets a fresh
// one. The options are applied when the client is first constructed.
func NewFactory(registry *Registry, options ...Option) *Factory {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Factory{
		registry: registry,
		options:  options,
	}
}

// Registry returns the registry shared by the factory and its client.
func (f *Factory) Registry() *Registry {
	return f.registry
}

// GetInstance returns the singleton client after registering host, port and
// protocol as the current endpoint. The returned pointer is the same on
// every call. Registration failures leave the registry untouched.
func (f *Factory) GetInstance(host string, port int, protocol string) (*Client, error) {
	client, err := f.instanceOrCreate()
	if err != nil {
		return nil, err
	}

	ep, created, err := f.registry.register(NewEndpoint(host, port, protocol))
	if err != nil {
		client.warnLog("endpoint registration failed", "host", host, "port", port, "error", err.Error())
		return nil, err
	}

	client.debugLog(client.debug.LogRegistry, "endpoint selected", "endpoint", ep.String(), "created", created)

	return client, nil
}

// Preload registers every endpoint in cfg in file order, constructing the
// client first if needed. The last endpoint ends up current.
func (f *Factory) Preload(cfg *Config) (*Client, error) {
	if cfg == nil || len(cfg.Endpoints) == 0 {
		return f.instanceOrCreate()
	}
	var client *Client
	var err error
	for _, ec := range cfg.Endpoints {
		client, err = f.GetInstance(ec.Host, ec.Port, ec.Protocol)
		if err != nil {
			return nil, err
		}
	}
	return client, nil
}

// Constructed reports whether the singleton exists.
func (f *Factory) Constructed() bool {
	return f.instance.Load() != nil
}

func (f *Factory) instanceOrCreate() (*Client, error) {
	client := f.instance.Load()
	if client == nil {
		f.mu.Lock()
		client = f.instance.Load()
		if client == nil {
			client = newClient(f, f.options...)
			if client.validationError == nil {
				f.registry.attachMetrics(client.metrics)
				f.instance.Store(client)
			}
		}
		f.mu.Unlock()
	}

	if client.validationError != nil {
		return nil, client.validationError
	}
	return client, nil
}

// setOptions replaces the construction options. It fails once the client
// exists.
func (f *Factory) setOptions(options ...Option) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.instance.Load() != nil {
		return newError(ErrorTypeAlreadyConstructed, "options must be set before the first GetInstance call", nil)
	}
	f.options = options
	return nil
}

var (
	defaultFactoryOnce sync.Once
	defaultFactory     *Factory
)

func getDefaultFactory() *Factory {
	defaultFactoryOnce.Do(func() {
		defaultFactory = NewFactory(NewRegistry())
	})
	return defaultFactory
}

// GetInstance returns the process-wide client after making the given endpoint
// current on the process-wide registry.
//
//	client, err := multihost.GetInstance("example.com", 8080, "https")
//	if err != nil {
//	    return err
//	}
//	u, _ := client.MakeURL("/gene/diseases/query") // https://example.com:8080/gene/diseases/query
func GetInstance(host string, port int, protocol string) (*Client, error) {
	return getDefaultFactory().GetInstance(host, port, protocol)
}

// DefaultRegistry returns the process-wide registry used by GetInstance.
func DefaultRegistry() *Registry {
	return getDefaultFactory().Registry()
}

// SetDefaultOptions configures the process-wide client. It must be called
// before the first GetInstance; afterwards it returns ErrAlreadyConstructed.
func SetDefaultOptions(options ...Option) error {
	return getDefaultFactory().setOptions(options...)
}
