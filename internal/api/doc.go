// Package api is the request helper that every blog API call goes through.
//
// Requester.Do turns a Request into a Result. It never panics and never returns a
// separate Go error: transport failures, non-2xx statuses and bodies that are not
// JSON all come back as a *Error inside the Result, with Data left nil.
//
// # Loading indicator
//
// A LoadingIndicator is switched on before the HTTP call and switched off by a
// deferred call, so the pair fires even when the request fails. Concurrent
// requests are neither deduplicated nor cancelled; the indicator reflects whichever
// request finished last.
//
// # Errors
//
// Error carries a Kind (transport, status, decode, encode) and the HTTP status.
// Callers decide "not found" with Error.NotFound or StatusOf, never by inspecting
// the message text.
//
// # Instrumentation
//
// The default HTTP client wraps http.DefaultTransport with otelhttp, so requests
// join the caller's trace. WithRegisterer exposes two Prometheus collectors:
//
//   - blogfront_api_requests_total{method,status}
//   - blogfront_api_request_duration_seconds{method}
package api
