package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const headerRequestID = "X-Request-ID"

// RequestLogger пишет в лог каждый запрос; проставляет X-Request-ID, если его нет
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(headerRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(headerRequestID, reqID)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			logger.Info("%s %s - status=%d duration_ms=%d request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds(), reqID)
		})
	}
}
