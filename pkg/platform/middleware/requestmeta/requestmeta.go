// Package requestmeta stamps incoming requests with a request id and the
// acting user before any handler runs.
package requestmeta

import (
	"net/http"

	"github.com/google/uuid"

	"staffdir/pkg/requestcontext"
)

const (
	headerRequestID = "X-Request-ID"
	headerUserID    = "X-User-ID"
)

// Annotate propagates the caller's request id, minting one when absent, and
// records the acting user claimed in the X-User-ID header. The id is echoed
// back on the response so clients can correlate logs.
func Annotate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		if actor := r.Header.Get(headerUserID); actor != "" {
			ctx = requestcontext.WithActorID(ctx, actor)
		}

		w.Header().Set(headerRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
