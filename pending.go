package multihost

import (
	"context"
	"net/http"
)

// Pending is an in-flight request started with Client.Go.
type Pending struct {
	response *http.Response
	err      error
	done     chan struct{}
}

// Go starts the request in its own goroutine and returns immediately. The
// endpoint is resolved before Go returns, so later GetInstance calls do not
// affect it.
func (c *Client) Go(ctx context.Context, method Method, path string, opts ...RequestOption) *Pending {
	p := &Pending{done: make(chan struct{})}

	target, err := c.Target()
	if err != nil {
		p.err = err
		close(p.done)
		return p
	}

	go func() {
		defer close(p.done)
		p.response, p.err = target.Do(ctx, method, path, opts...)
	}()

	return p
}

// Done is closed once the response or error is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the request completes or ctx is done. Cancelling ctx
// here does not cancel the request; use the context passed to Go for that.
// A nil ctx waits without a deadline.
func (p *Pending) Wait(ctx context.Context) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.done:
		return p.response, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
