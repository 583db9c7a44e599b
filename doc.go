// Package multihost is a small HTTP client layer for processes that talk to
// several remote services through one shared client:
//
//   - A process-wide singleton Client, obtainable only through a Factory
//   - An endpoint Registry keyed by base URL, with a last-writer-wins current endpoint
//   - URL building from relative paths (repeated slashes collapsed)
//   - GET / POST / PUT / PATCH / DELETE dispatch with per-request sessions
//   - A correlation id sent as X-Request-ID
//   - Prometheus metrics, OpenTelemetry spans and go-kit structured logging
//
// Typical usage:
//
//	client, err := multihost.GetInstance("example.com", 8080, "https")
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Get(ctx, "/gene/diseases/query")
//
// Every GetInstance call returns the same *Client and makes its endpoint
// current for the whole process. Callers that share the client across hosts
// concurrently should pin an endpoint with Client.Target right after
// GetInstance. Responses and transport errors are returned untouched: there
// is no retry and no status code interpretation.
package multihost
