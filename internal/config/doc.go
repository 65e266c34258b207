// Package config loads blogfront configuration from TOML and the environment.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/blogfront/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. BLOGFRONT_* environment variables override whatever the file said
//
// LoadDotEnv can be called before Load so that .env.local and .env contribute
// environment variables. Variables already present in the process win.
//
// # Default Values
//
//   - API origin: http://127.0.0.1:8000, prefix /api/v1
//   - Listen address (serve mode): 127.0.0.1:8080
//   - Locale: ko
//   - Page size: 10, recent posts: 5
//   - Request timeout: 10s (0 disables)
//   - Refresh interval (tui mode): 0 (disabled)
//   - Log level info, console format, file ~/.local/share/blogfront/blogfront.log
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000"
//	api_prefix = "/api/v1"
//	listen = "127.0.0.1:8080"
//	locale = "ko"
//	page_size = 10
//	recent_limit = 5
//	request_timeout = "10s"
//	refresh_every = "0s"
//	log_level = "info"
//	log_format = "console"
//	log_file = "~/.local/share/blogfront/blogfront.log"
//	trace_stdout = false
//
// All fields are optional. Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, unparsable or negative
// durations and an unknown log_format. Missing config files are NOT an error.
package config
