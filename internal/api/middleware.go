package api

import (
	"booking-location-service/internal/platform/obs"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestIDMiddleware propagates X-Request-ID, generating one when absent, and
// stores it on the request context for obs.Time.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(obs.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware logs each request and records it in the HTTP metrics,
// labelled by route pattern rather than raw path.
func loggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{
				ResponseWriter: w,
				status:         0,
			}

			defer func() {
				if rec := recover(); rec != nil {
					log.Error("handler panicked",
						zap.String("req_id", obs.RequestID(r.Context())),
						zap.Any("panic", rec),
						zap.StackSkip("stack", 1),
					)
					if sw.status == 0 {
						http.Error(sw, `{"error":"internal server error"}`, http.StatusInternalServerError)
					}
				}

				dur := time.Since(start)
				if sw.status == 0 {
					sw.status = http.StatusOK
				}

				route := "unmatched"
				if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				status := strconv.Itoa(sw.status)
				obs.HTTPRequests.WithLabelValues(r.Method, route, status).Inc()
				obs.HTTPDuration.WithLabelValues(r.Method, route, status).Observe(dur.Seconds())

				log.Info("request",
					zap.String("req_id", obs.RequestID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.RequestURI()),
					zap.String("route", route),
					zap.Int("status", sw.status),
					zap.Int("bytes", sw.bytes),
					zap.Int64("dur_ms", dur.Milliseconds()),
				)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
