package transport

import (
	"net/http"
	"sync"
)

// StatusRecorder is an http.RoundTripper that remembers the status code of the
// last response it saw. Vendor SDKs wrap HTTP failures in their own error
// types; the recorded status lets adapters classify them uniformly.
type StatusRecorder struct {
	Base http.RoundTripper

	mu     sync.Mutex
	status int
	calls  int
}

func (r *StatusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)

	r.mu.Lock()
	r.calls++
	if resp != nil {
		r.status = resp.StatusCode
	}
	r.mu.Unlock()
	return resp, err
}

// Status returns the last observed status code, 0 if no response arrived.
func (r *StatusRecorder) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Calls returns how many round trips were attempted.
func (r *StatusRecorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// HTTPClient returns a client routed through the recorder. Timeouts come from
// the request context, not the client.
func (r *StatusRecorder) HTTPClient() *http.Client {
	return &http.Client{Transport: r}
}
