package multihost

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ambiyansyah-risyal/multihost"

type tracerConfig struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

func (tc tracerConfig) middleware() Middleware {
	if tc.tracer == nil {
		return nil
	}
	return TracingMiddleware(tc.tracer, tc.propagator)
}

// TracingMiddleware starts a client span around each request and injects the
// span context into the request headers. A nil propagator uses the global one.
func TracingMiddleware(tracer trace.Tracer, propagator propagation.TextMapPropagator) Middleware {
	return func(req *http.Request, next RoundTripper) (*http.Response, error) {
		ctx, span := tracer.Start(req.Context(), "HTTP "+req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", req.URL.String()),
				attribute.String("server.address", req.URL.Hostname()),
			),
		)
		defer span.End()

		if id := req.Header.Get(HeaderRequestID); id != "" {
			span.SetAttributes(attribute.String("multihost.request_id", id))
		}

		p := propagator
		if p == nil {
			p = otel.GetTextMapPropagator()
		}
		req = req.Clone(ctx)
		p.Inject(ctx, propagation.HeaderCarrier(req.Header))

		resp, err := next.RoundTrip(req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return resp, err
		}

		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		return resp, nil
	}
}
