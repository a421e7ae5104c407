// internal/common/http/middleware.go
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

type Logger interface {
	Info(msg string, fields map[string]interface{})
}

// Recorder receives per-request timing. Implemented by metrics and tracing.
type Recorder func(ctx context.Context, route, method string, status int, d time.Duration)

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRequestID propagates X-Request-ID or assigns a new one.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// Instrument logs each request under route and reports it to every recorder.
func Instrument(route string, log Logger, next http.Handler, recorders ...Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		elapsed := time.Since(start)

		for _, rec := range recorders {
			rec(r.Context(), route, r.Method, sw.status, elapsed)
		}
		log.Info("request served", map[string]interface{}{
			"requestId":  RequestID(r.Context()),
			"method":     r.Method,
			"route":      route,
			"status":     sw.status,
			"durationMs": elapsed.Milliseconds(),
		})
	})
}
