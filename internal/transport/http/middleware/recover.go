package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mandalnilabja/pagesmith/internal/types"
)

// Recover converts a handler panic into a 500 response. Once streaming has
// begun the status line is already on the wire, so the panic is only logged
// and the connection is closed by returning.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrapResponseWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("handler panic",
					"panic", rec,
					"path", r.URL.Path,
					"request_id", wrapped.Header().Get(RequestIDHeader),
					"stack", string(debug.Stack()),
				)

				if !wrapped.wroteHeader {
					types.WriteError(wrapped, http.StatusInternalServerError, types.MsgGenerateFailed)
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
