package server

import "net/http"

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Router is a small HTTP router built on [http.ServeMux] with method-qualified
// patterns and a middleware stack.
type Router struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewRouter creates a new [Router] instance.
func NewRouter() *Router {
	return &Router{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the router's global stack, applied to every route
// in the order it's added.
func (r *Router) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for a method-qualified pattern such as
// "POST /api/login". Route-specific middleware runs inside the global stack.
func (r *Router) Handle(pattern string, handler http.Handler, middleware ...Middleware) {
	r.mux.Handle(pattern, apply(handler, middleware))
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	apply(r.mux, r.middlewares).ServeHTTP(w, req)
}

// apply wraps a handler with middleware in reverse order (last added wraps first).
func apply(handler http.Handler, middlewares []Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
