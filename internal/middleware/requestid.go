package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mealpath/mealpath/internal/ctxkeys"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with an ID, reusing the caller's X-Request-ID
// when present, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithRequestID(r.Context(), id)))
	})
}
