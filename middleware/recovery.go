package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryFunc writes the response for a request whose handler panicked with rec.
type RecoveryFunc func(w http.ResponseWriter, r *http.Request, rec any)

// DefaultRecovery logs the panic value and stack and answers 500.
func DefaultRecovery(w http.ResponseWriter, r *http.Request, rec any) {
	log.Println("recovered from panic:", rec)
	debug.PrintStack()
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Recovery returns a middleware that turns a panicking handler into the
// response written by recovery. A nil recovery uses [DefaultRecovery].
// Register it after the logging middleware so panics still get an access-log line.
func Recovery(recovery RecoveryFunc) Middleware {
	if recovery == nil {
		recovery = DefaultRecovery
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// the client is gone, let net/http drop the connection
					panic(rec)
				}
				recovery(w, r, rec)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RecoveryMiddleware is [Recovery] with [DefaultRecovery].
func RecoveryMiddleware(next http.Handler) http.Handler {
	return Recovery(nil)(next)
}
