// Package server provides HTTP routing, middleware, and lifecycle helpers for the web interface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [RequestLogger] logs method, path, status and duration of every request
//   - [Recoverer] turns handler panics into 500 responses
//   - [RateLimit] answers 429 once a [rate.Limiter] runs dry
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Lifecycle
//
// [ListenAndServe] runs an [http.Server] until its context is canceled and then shuts it down gracefully.
package server
