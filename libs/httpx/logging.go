package httpx

import (
	"log/slog"
	"net/http"
	"time"
)

type loggedResponse struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *loggedResponse) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggedResponse) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.written += int64(n)
	return n, err
}

// WithAccessLog logs one line per request after it completes.
func WithAccessLog(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lr := &loggedResponse{ResponseWriter: w}
			next.ServeHTTP(lr, r)
			logger.Info("http request",
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", lr.status,
				"bytes", lr.written,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
