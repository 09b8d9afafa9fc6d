package handlers

import (
	"log/slog"
	"net/http"
	"runtime"

	"fleetstock/apierr"
	"fleetstock/response"
)

// RecoverWrapper wraps an http.HandlerFunc with panic recovery. A panic
// still produces the normalized error envelope instead of a raw 500.
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				slog.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)
				response.WriteError(w, apierr.Internal(nil))
			}
		}()

		handler(w, r)
	}
}
