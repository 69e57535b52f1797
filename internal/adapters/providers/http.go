package providers

import (
	"booking-location-service/internal/platform/obs"
	"booking-location-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotImplemented is returned by the placeholder providers.
var ErrNotImplemented = ports.ErrNotImplemented

const defaultTimeout = 10 * time.Second

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// statusCode returns the HTTP status of a provider error, or 0 if err is not one.
func statusCode(err error) int {
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

// httpSession is the shared transport half of every HTTP-backed provider.
type httpSession struct {
	client    *http.Client
	userAgent string
}

func newHTTPSession(timeout time.Duration, userAgent string) httpSession {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return httpSession{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (s httpSession) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req once. Non-2xx responses are drained and returned as *httpStatusError.
// There is no retry: callers fall back instead.
func (s httpSession) do(req *http.Request) (*http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func recordCall(provider, operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	obs.ProviderRequests.WithLabelValues(provider, operation, status).Inc()
}
