package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/shravanasati/assetserver/middleware"
)

// servedMethods are routed to the static file handler. OPTIONS never reaches
// the router when CORS is enabled.
var servedMethods = []string{http.MethodGet, http.MethodHead}

var allowHeader = strings.Join(append(servedMethods, http.MethodOptions), ", ")

var defaultMethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", allowHeader)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
})

// RouterOptions configures a Router.
type RouterOptions struct {
	EnableCors  bool
	CorsOptions middleware.CorsOptions
}

// Router maps request paths to files under a root and wraps the result in middlewares.
type Router struct {
	mux         *mux.Router
	middlewares []middleware.Middleware
	cors        *middleware.CorsMiddleware
}

// NewRouter creates a router serving files from root. A nil opts enables CORS
// with [middleware.DefaultCorsOptions].
func NewRouter(root fs.FS, opts *RouterOptions) *Router {
	if opts == nil {
		opts = &RouterOptions{EnableCors: true, CorsOptions: middleware.DefaultCorsOptions()}
	}

	m := mux.NewRouter()
	// keep ".." in the path so the static handler can reject it instead of redirecting
	m.SkipClean(true)
	m.MethodNotAllowedHandler = defaultMethodNotAllowedHandler
	m.PathPrefix("/").Methods(servedMethods...).Handler(middleware.NewStaticHandler(root))

	router := &Router{
		mux:         m,
		middlewares: []middleware.Middleware{},
	}
	if opts.EnableCors {
		router.cors = middleware.NewCorsMiddleware(opts.CorsOptions)
	}

	return router
}

// Use appends middlewares to the chain. The first one registered is the outermost.
func (r *Router) Use(middlewares ...middleware.Middleware) {
	r.middlewares = append(r.middlewares, middlewares...)
}

// Handler returns the router wrapped in its middlewares. CORS is always the
// innermost layer so its headers are present on every response, including 404 and 405.
func (r *Router) Handler() http.Handler {
	var h http.Handler = r.mux
	if r.cors != nil {
		h = r.cors.Handler(h)
	}

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	return h
}
