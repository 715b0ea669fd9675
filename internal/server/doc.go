// Package server provides the HTTP API for login, profiles, and music recommendations.
//
// # Router Infrastructure
//
// The [Router] wraps [http.ServeMux] with method-qualified patterns and a
// middleware stack. [Middleware] wraps handlers in reverse order (last added
// executes first), following the standard Go pattern.
//
// # Sessions
//
// Authentication is cookie based. POST /api/login checks the configured
// allow-list and issues an HttpOnly cookie holding an opaque session ID;
// [Server.RequireSession] resolves the cookie on every protected route and
// attaches the [auth.Session] to the request context. POST /api/logout
// destroys the session and clears the cookie.
//
// # Routes
//
//	POST /api/login          authenticate, set session cookie
//	POST /api/logout         destroy session
//	GET  /api/me             session identity
//	GET  /api/profile        profile document, 404 when absent
//	PUT  /api/profile        replace profile document
//	POST /api/profile/mood   partial mood merge
//	POST /api/music/compose  predict genre, generate a track
//	GET  /api/music/playlist predict genre, pick a playlist
//	GET  /health             liveness probe
//
// # Error Handling
//
// Every error response is a JSON payload of the form {"error": "..."}.
// Upstream failures (document store, generation API, catalog) are reported
// inline per request; the [Server.Recover] middleware converts panics into
// 500 responses so the process never crashes on a bad request.
package server
