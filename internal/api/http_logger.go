package api

import (
	"net/http"
	"time"

	"github.com/jlindgren/wayfarer/internal/logger"
)

// loggingTransport wraps an http.RoundTripper and logs every request and
// response line to the debug log, with sensitive headers redacted.
type loggingTransport struct {
	transport http.RoundTripper
}

func newLoggingTransport(transport http.RoundTripper) *loggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &loggingTransport{transport: transport}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Log("HTTP > %s %s [%s] auth=%s",
		req.Method, req.URL.Path, req.Header.Get("X-Request-ID"), describeAuth(req))

	resp, err := t.transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.LogError("HTTP "+req.Method+" "+req.URL.Path, err)
		return nil, err
	}

	logger.Log("HTTP < %s %s - %s (%v)", req.Method, req.URL.Path, resp.Status, duration)
	return resp, nil
}

func describeAuth(req *http.Request) string {
	if req.Header.Get("Authorization") == "" {
		return "none"
	}
	return "[REDACTED]"
}
