package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofrs/uuid/v5"
)

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if s.logger != nil {
					s.logger.Errorf("PANIC %s %s: %v\n%s", r.Method, r.URL.Path, rec, string(debug.Stack()))
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// accessLogMiddleware tags every request with an ID and logs method, path,
// status and duration.
func (s *Server) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.Must(uuid.NewV4()).String()
		w.Header().Set("X-Request-Id", reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Infof("%s %s -> %d (%s) req=%s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond), reqID)
	})
}
