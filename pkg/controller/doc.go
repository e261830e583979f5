// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs
//     one access line per request with its route and outcome.
//   - WithMetrics: Records request latency in a Prometheus histogram.
//
// Provided helpers:
//   - Route, SetOutcome: Tag the access log line from the mux and the handlers.
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
