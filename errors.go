package multihost

import (
	"errors"
	"fmt"
	"time"
)

// Error types carried by ClientError.Type.
const (
	ErrorTypeMissingHost         = "MissingHostError"
	ErrorTypeNotRegistered       = "NotRegisteredError"
	ErrorTypeEncoding            = "EncodingError"
	ErrorTypeIllegalConstruction = "IllegalConstructionError"
	ErrorTypeAlreadyConstructed  = "AlreadyConstructedError"
	ErrorTypeValidation          = "ValidationError"
	ErrorTypeConfiguration       = "ConfigurationError"
)

// Sentinel errors for common failure scenarios
var (
	// ErrMissingHost is returned when an endpoint is registered without a host
	ErrMissingHost = errors.New("multihost: host is missing")

	// ErrNotRegistered is returned when a URL is requested before any endpoint was registered
	ErrNotRegistered = errors.New("multihost: no endpoint registered")

	// ErrEncoding is returned when a base URL cannot be turned into a registry key
	ErrEncoding = errors.New("multihost: cannot encode base url")

	// ErrIllegalConstruction is returned by a Client that was not obtained from a Factory
	ErrIllegalConstruction = errors.New("multihost: client cannot be constructed directly, use GetInstance")

	// ErrAlreadyConstructed is returned when options are changed after the singleton exists
	ErrAlreadyConstructed = errors.New("multihost: client already constructed")

	// ErrInvalidRequest is returned when request options do not fit the HTTP verb
	ErrInvalidRequest = errors.New("multihost: invalid request")

	// ErrInvalidConfig is returned when client options fail validation
	ErrInvalidConfig = errors.New("multihost: invalid configuration")
)

var sentinelByType = map[string]error{
	ErrorTypeMissingHost:         ErrMissingHost,
	ErrorTypeNotRegistered:       ErrNotRegistered,
	ErrorTypeEncoding:            ErrEncoding,
	ErrorTypeIllegalConstruction: ErrIllegalConstruction,
	ErrorTypeAlreadyConstructed:  ErrAlreadyConstructed,
	ErrorTypeValidation:          ErrInvalidRequest,
	ErrorTypeConfiguration:       ErrInvalidConfig,
}

// ClientError represents an error raised by the client itself. Transport
// failures are never wrapped in a ClientError.
type ClientError struct {
	Type      string
	Message   string
	Cause     error
	RequestID string
	Method    string
	URL       string
	Endpoint  string
	Timestamp time.Time
}

func newError(errorType, message string, cause error) *ClientError {
	return &ClientError{
		Type:      errorType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another ClientError of the same Type, or the sentinel error
// that corresponds to Type.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	if sentinel, ok := sentinelByType[e.Type]; ok {
		return target == sentinel
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.Endpoint != "" {
		info += fmt.Sprintf("Endpoint: %s\n", e.Endpoint)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsMissingHost reports whether err stems from a registration without host.
func IsMissingHost(err error) bool {
	return errors.Is(err, ErrMissingHost)
}

// IsNotRegistered reports whether err stems from an empty registry.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}
