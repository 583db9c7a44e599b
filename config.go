package multihost

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EndpointConfig is one endpoint entry of a config file.
type EndpointConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port,omitempty"`
	Protocol string `yaml:"protocol,omitempty"`
}

// Config is the file form of the client settings.
//
//	timeout: 10s
//	user_agent: my-service/1.0
//	debug: true
//	endpoints:
//	  - host: example.com
//	  - host: api.example.com
//	    port: 8443
//	    protocol: https
type Config struct {
	Timeout   time.Duration    `yaml:"timeout,omitempty"`
	UserAgent string           `yaml:"user_agent,omitempty"`
	Debug     bool             `yaml:"debug,omitempty"`
	Endpoints []EndpointConfig `yaml:"endpoints"`
}

// LoadConfig decodes and validates a YAML config.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads the YAML config at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks the config without touching any registry.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	for i, ep := range c.Endpoints {
		if ep.Host == "" {
			return newError(ErrorTypeMissingHost, fmt.Sprintf("endpoints[%d]: host is missing", i), nil)
		}
		if ep.Port < 0 || ep.Port > 65535 {
			return fmt.Errorf("endpoints[%d]: port %d out of range", i, ep.Port)
		}
	}
	return nil
}

// Options converts the config into client options. Endpoints are not
// included; register them with Factory.Preload.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	if c.Debug {
		opts = append(opts, WithSimpleLogger())
	}
	return opts
}
