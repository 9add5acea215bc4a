// Package requestid assigns every request a UUID for log and audit
// correlation, echoing it back in the X-Request-ID header.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"veridical/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware reuses a caller-supplied X-Request-ID when present, otherwise
// generates one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerName, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
