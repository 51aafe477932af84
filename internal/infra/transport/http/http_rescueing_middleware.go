package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mkrupp/messagely/internal/infra/logging"
)

// RescueingMiddleware recovers from panics in HTTP handlers, logs the panic with its
// stack trace and answers 500 with the JSON error payload.
func RescueingMiddleware(next http.Handler, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			if p == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(p)
			}

			log.ErrorContext(r.Context(), "request panic", slog.Group("http",
				"uri", r.RequestURI,
				"method", r.Method,
			), slog.Group("error",
				"panic", fmt.Sprint(p),
				"stack", string(debug.Stack()),
			))

			WriteError(w, fmt.Errorf("panic: %v", p))
		}()

		next.ServeHTTP(w, r)
	})
}
