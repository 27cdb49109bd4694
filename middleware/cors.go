package middleware

import (
	"net/http"
	"strings"
)

// Middleware wraps a handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// CorsOptions is a configuration container to setup the CORS middleware.
type CorsOptions struct {
	// AllowedOrigins is written to Access-Control-Allow-Origin.
	// Default value is ["*"]
	AllowedOrigins []string

	// AllowedMethods is written to Access-Control-Allow-Methods.
	// Default value is GET, POST and OPTIONS.
	AllowedMethods []string

	// AllowedHeaders is written to Access-Control-Allow-Headers.
	// Default value is ["*"]
	AllowedHeaders []string

	// FrameOptions is written to X-Frame-Options, so that the served pages can be
	// embedded by any other page. Default value is "ALLOWALL".
	FrameOptions string
}

// DefaultCorsOptions returns the permissive header set served with every asset.
func DefaultCorsOptions() CorsOptions {
	return CorsOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		FrameOptions:   "ALLOWALL",
	}
}

// CorsMiddleware adds a fixed set of CORS and framing headers to every response
// and answers preflight requests itself.
type CorsMiddleware struct {
	// rendered header name/value pairs, in write order
	headers [][2]string
}

// NewCorsMiddleware creates a new CorsMiddleware with the provided options.
// Empty fields fall back to [DefaultCorsOptions].
func NewCorsMiddleware(options CorsOptions) *CorsMiddleware {
	defaults := DefaultCorsOptions()

	if len(options.AllowedOrigins) == 0 {
		options.AllowedOrigins = defaults.AllowedOrigins
	}
	if len(options.AllowedMethods) == 0 {
		options.AllowedMethods = defaults.AllowedMethods
	}
	if len(options.AllowedHeaders) == 0 {
		options.AllowedHeaders = defaults.AllowedHeaders
	}
	if options.FrameOptions == "" {
		options.FrameOptions = defaults.FrameOptions
	}

	return &CorsMiddleware{
		headers: [][2]string{
			{"Access-Control-Allow-Origin", joinList(options.AllowedOrigins, nil)},
			{"Access-Control-Allow-Methods", joinList(options.AllowedMethods, strings.ToUpper)},
			{"Access-Control-Allow-Headers", joinList(options.AllowedHeaders, nil)},
			{"X-Frame-Options", options.FrameOptions},
		},
	}
}

// Handler creates a new CORS middleware with passed options.
func Handler(options CorsOptions) Middleware {
	return NewCorsMiddleware(options).Handler
}

// Handler sets the configured headers on the response and short-circuits
// OPTIONS requests with an empty 200. Every other request is passed to next,
// which sees the headers already in place, so they survive error responses too.
func (c *CorsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w.Header())

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// setHeaders adds each header unless a value is already present.
func (c *CorsMiddleware) setHeaders(h http.Header) {
	for _, kv := range c.headers {
		if h.Get(kv[0]) == "" {
			h.Set(kv[0], kv[1])
		}
	}
}

func joinList(values []string, f func(string) string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if f != nil {
			v = f(v)
		}
		out = append(out, v)
	}
	return strings.Join(out, ", ")
}
