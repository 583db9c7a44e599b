package multihost

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
)

func TestDefaults(t *testing.T) {
	client := newTestClient(t, "example.com", 0, "")

	if client.timeout != 30*time.Second {
		t.Errorf("Expected timeout=30s, got %v", client.timeout)
	}
	if client.transport != http.DefaultTransport {
		t.Error("Expected http.DefaultTransport")
	}
	if !strings.HasPrefix(client.userAgent, "multihost/") {
		t.Errorf("Unexpected default user agent %q", client.userAgent)
	}
	if client.debug == nil || client.debug.Enabled {
		t.Error("Expected debug config present and disabled")
	}
}

func TestWithHTTPClient(t *testing.T) {
	rt := RoundTripperFunc(func(*http.Request) (*http.Response, error) { return nil, errors.New("x") })
	client := newTestClient(t, "example.com", 0, "", WithHTTPClient(&http.Client{Transport: rt, Timeout: 3 * time.Second}))

	if client.timeout != 3*time.Second {
		t.Errorf("Expected timeout=3s, got %v", client.timeout)
	}

	client = newTestClient(t, "example.com", 0, "", WithHTTPClient(&http.Client{}))
	if client.transport != http.DefaultTransport || client.timeout != 30*time.Second {
		t.Error("Expected defaults for empty http.Client")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{"zero timeout", []Option{WithTimeout(0)}, "timeout must be positive"},
		{"huge timeout", []Option{WithTimeout(time.Hour)}, "timeout > 10m"},
		{"nil transport", []Option{WithTransport(nil)}, "transport cannot be nil"},
		{"nil http client", []Option{WithHTTPClient(nil)}, "transport cannot be nil"},
		{"nil session func", []Option{WithSessionFunc(nil)}, "session function cannot be nil"},
		{"nil generator", []Option{WithRequestIDGenerator(nil)}, "request id generator cannot be nil"},
		{"nil middleware", []Option{WithMiddleware(nil)}, "middleware[0] cannot be nil"},
		{"debug without logger", []Option{WithDebug()}, "logger must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactory(nil, tt.options...).GetInstance("example.com", 0, "")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestNilDebugConfigTolerated(t *testing.T) {
	client := newTestClient(t, "example.com", 0, "", WithDebugConfig(nil))
	if client.debug == nil {
		t.Fatal("Expected debug config to be defaulted")
	}
}

func TestDebugLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	var buf bytes.Buffer
	logger := NewKitLogger(log.NewLogfmtLogger(log.NewSyncWriter(&buf)))
	client := serverClient(t, server, WithLogger(logger), WithDebug())

	resp, err := client.Get(context.Background(), "/logged")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	resp.Body.Close()

	out := buf.String()
	for _, want := range []string{`msg="endpoint selected"`, `msg="Starting request"`, `msg="Request completed"`, "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in log output:\n%s", want, out)
		}
	}
}

func TestDebugCategoriesFiltered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	var buf bytes.Buffer
	logger := NewKitLogger(log.NewLogfmtLogger(&buf))
	client := serverClient(t, server, WithLogger(logger), WithDebugConfig(&DebugConfig{Enabled: true, LogRequests: false, LogRegistry: false}))

	resp, err := client.Get(context.Background(), "/quiet")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	resp.Body.Close()

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %s", buf.String())
	}
}

func TestGetVersion(t *testing.T) {
	if v := GetVersion(); !strings.Contains(v, Version) {
		t.Errorf("Expected version %s in %q", Version, v)
	}
}
