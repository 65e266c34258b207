// Package app provides the orchestration layer for blogfront.
//
// # Overview
//
// This package wires together configuration, logging, telemetry, the blog API
// client and one of the two front ends. It is the composition root: every
// dependency is constructed here and handed down, nothing is global.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.LoadDotEnv()  .env.local / .env
//	       ├─────> config.Load()        TOML + BLOGFRONT_* overrides
//	       ├─────> logging.New()        stderr (serve) or log file (tui)
//	       ├─────> telemetry.Init()     tracer provider + propagator
//	       ├─────> api.New()            request helper with metrics
//	       ├─────> posts.NewClient()    posts resource
//	       │
//	       ├─ serve ─> web.New().Run()  per-request store and controller
//	       └─ tui ───> StartRefresher() optional background reloads
//	                   ui.Run()         Bubble Tea program (blocks)
//
// # Refresh Behavior
//
// In tui mode with refresh_every set, the refresher reloads the current home
// or list view on that interval. Post pages are never reloaded under the
// reader. Failures double the delay up to 30 seconds; a success resets it.
// Superseded loads do not count as failures.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or -mode value
//   - Log file cannot be opened in tui mode
//   - Telemetry or client initialization failure
//   - The HTTP server failing to listen
//
// Recoverable errors (logged, the front end keeps going):
//   - Blog API failures during page loads
//   - Refresh failures
//   - Preference save failures
package app
