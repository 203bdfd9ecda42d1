package httpapi

import (
	"net"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware records method, route, status and duration. Query
// strings are left out since they may carry api_key.
func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		args := []any{"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start)}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Error(r.Context(), "http request failed", args...)
		} else {
			s.logger.Debug(r.Context(), "http request", args...)
		}
	})
}

func (s *HTTPServer) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := clientHost(r)
		if !s.limiter.Allow(host) {
			s.logger.Warn(r.Context(), "login throttled", "path", r.URL.Path, "peer", host)
			writeError(w, http.StatusTooManyRequests, errTooManyRequests, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
