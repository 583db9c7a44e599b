package multihost

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestTracerProvider() (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return tp, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingSpanPerRequest(t *testing.T) {
	var traceparent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	tp, recorder := newTestTracerProvider()
	client := serverClient(t, server,
		WithTracerProvider(tp),
		WithPropagator(propagation.TraceContext{}),
	)
	_ = client.SetRequestID("trace-req")

	resp, err := client.Get(context.Background(), "/brew")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	resp.Body.Close()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "HTTP GET" {
		t.Errorf("Unexpected span name %q", span.Name())
	}
	if span.SpanKind() != trace.SpanKindClient {
		t.Errorf("Expected client span, got %v", span.SpanKind())
	}
	if v, ok := spanAttr(span, "http.response.status_code"); !ok || v.AsInt64() != http.StatusTeapot {
		t.Errorf("Expected status attribute 418, got %v", v)
	}
	if v, ok := spanAttr(span, "multihost.request_id"); !ok || v.AsString() != "trace-req" {
		t.Errorf("Expected request id attribute, got %v", v)
	}
	if v, ok := spanAttr(span, "url.full"); !ok || v.AsString() != server.URL+"/brew" {
		t.Errorf("Unexpected url.full %v", v)
	}
	if traceparent == "" {
		t.Error("Expected traceparent header to be propagated")
	}
}

func TestTracingRecordsTransportError(t *testing.T) {
	tp, recorder := newTestTracerProvider()
	failing := RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	client := newTestClient(t, "down.example.com", 0, "", WithTransport(failing), WithTracerProvider(tp))
	if _, err := client.Get(context.Background(), "/"); err == nil {
		t.Fatal("Expected error")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("Expected error status, got %v", spans[0].Status())
	}
}

func TestTracingDisabledByDefault(t *testing.T) {
	client := newTestClient(t, "example.com", 0, "")
	if client.tracer.middleware() != nil {
		t.Error("Expected no tracing middleware without a tracer provider")
	}
}
