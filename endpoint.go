package multihost

import (
	"strconv"
	"strings"
)

// Protocol is the URL scheme of an endpoint.
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

// ParseProtocol maps s onto a supported protocol. Anything that is not
// exactly "http" or "https" falls back to http.
func ParseProtocol(s string) Protocol {
	switch Protocol(s) {
	case ProtocolHTTPS:
		return ProtocolHTTPS
	default:
		return ProtocolHTTP
	}
}

// Endpoint describes one remote service. It is a value type and is never
// mutated once built.
type Endpoint struct {
	Host     string
	Port     int
	Protocol Protocol
}

// NewEndpoint builds an Endpoint. A port of 0 (or below) means "not set".
func NewEndpoint(host string, port int, protocol string) Endpoint {
	if port < 0 {
		port = 0
	}
	return Endpoint{
		Host:     host,
		Port:     port,
		Protocol: ParseProtocol(protocol),
	}
}

// BaseURL renders "{protocol}://{host}[:{port}]". The boolean is false when
// the host is empty, in which case no URL is available.
func (e Endpoint) BaseURL() (string, bool) {
	if e.Host == "" {
		return "", false
	}

	var builder strings.Builder
	builder.WriteString(string(ParseProtocol(string(e.Protocol))))
	builder.WriteString("://")
	builder.WriteString(e.Host)
	if e.Port > 0 {
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(e.Port))
	}
	return builder.String(), true
}

func (e Endpoint) String() string {
	if u, ok := e.BaseURL(); ok {
		return u
	}
	return "<unavailable>"
}
