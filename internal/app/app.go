package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/five82/blogfront/internal/api"
	"github.com/five82/blogfront/internal/config"
	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/logging"
	"github.com/five82/blogfront/internal/page"
	"github.com/five82/blogfront/internal/posts"
	"github.com/five82/blogfront/internal/prefs"
	"github.com/five82/blogfront/internal/state"
	"github.com/five82/blogfront/internal/telemetry"
	"github.com/five82/blogfront/internal/ui"
	"github.com/five82/blogfront/internal/web"
)

// Mode selects the front end.
type Mode string

const (
	ModeServe Mode = "serve"
	ModeTUI   Mode = "tui"
)

const telemetryShutdownTimeout = 5 * time.Second

// Options configure the blogfront application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/blogfront/prefs.toml
	Mode       Mode   // empty means serve
	Listen     string // overrides the configured listen address
	Version    string
}

// ParseMode validates a -mode flag value. Empty means serve.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeServe:
		return ModeServe, nil
	case ModeTUI:
		return ModeTUI, nil
	default:
		return "", fmt.Errorf("unknown mode %q: want serve or tui", value)
	}
}

// deps are the pieces both front ends share.
type deps struct {
	cfg      config.Config
	prefs    prefs.Prefs
	locale   i18n.Locale
	log      zerolog.Logger
	registry *prometheus.Registry
	posts    posts.Service
	doc      *dom.Page // TUI only; the server renders a fresh page per request
}

// Run boots blogfront in the selected mode until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return err
	}

	config.LoadDotEnv()
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logOut, closeLog, err := logOutput(cfg, mode)
	if err != nil {
		return err
	}
	defer closeLog()

	format := cfg.LogFormat
	if mode == ModeTUI {
		// logtail parses the file back for the log view
		format = "json"
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: format, Output: logOut})

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "blogfront",
		ServiceVersion: opts.Version,
		Export:         cfg.TraceStdout,
		Writer:         traceOutput(mode, logOut),
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	locale := i18n.Parse(cfg.Locale)
	reqOpts := []api.Option{
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
		api.WithRegisterer(registry),
	}
	var doc *dom.Page
	if mode == ModeTUI {
		doc = dom.NewPage()
		reqOpts = append(reqOpts, api.WithLoadingIndicator(page.NewRequestIndicator(doc, locale)))
	}
	requester := api.New(reqOpts...)
	client, err := posts.NewClient(requester, cfg.APIBase(), posts.WithLocale(locale))
	if err != nil {
		return fmt.Errorf("init posts client: %w", err)
	}

	d := deps{
		cfg:      cfg,
		prefs:    prefs.Load(opts.PrefsPath),
		locale:   locale,
		log:      logger,
		registry: registry,
		posts:    client,
		doc:      doc,
	}
	logger.Info().
		Str("mode", string(mode)).
		Str("api", cfg.APIBase()).
		Str("locale", string(locale)).
		Msg("blogfront starting")

	if mode == ModeTUI {
		return runTUI(ctx, d, opts.PrefsPath)
	}
	listen := strings.TrimSpace(opts.Listen)
	if listen == "" {
		listen = cfg.Listen
	}
	return runServe(ctx, d, listen)
}

func runServe(ctx context.Context, d deps, listen string) error {
	gin.SetMode(gin.ReleaseMode)
	srv := web.New(d.posts,
		web.WithLocale(d.locale),
		web.WithPageSize(d.cfg.PageSize),
		web.WithRecentLimit(d.cfg.RecentLimit),
		web.WithLogger(d.log),
		web.WithRegistry(d.registry),
	)
	return srv.Run(ctx, listen)
}

func runTUI(ctx context.Context, d deps, prefsPath string) error {
	store := state.NewStore(
		state.WithPageSize(d.cfg.PageSize),
		state.WithPublishedOnly(d.prefs.PublishedOnly()),
		state.WithLogger(d.log),
	)
	ctrl, err := page.New(d.posts, store, d.doc, d.locale,
		page.WithRecentLimit(d.cfg.RecentLimit),
		page.WithPageSize(d.cfg.PageSize),
		page.WithLogger(d.log),
	)
	if err != nil {
		return fmt.Errorf("init page controller: %w", err)
	}

	StartRefresher(ctx, ctrl, d.cfg.RefreshEvery, d.log)

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Store:      store,
		Document:   d.doc,
		LogFile:    d.cfg.LogFile,
		PrefsPath:  prefsPath,
		Prefs:      d.prefs,
		Logger:     d.log,
	})
}

// logOutput picks where logs go: stderr when serving, the log file when the
// terminal belongs to the UI.
func logOutput(cfg config.Config, mode Mode) (io.Writer, func(), error) {
	if mode != ModeTUI {
		return os.Stderr, func() {}, nil
	}
	file, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

func traceOutput(mode Mode, logOut io.Writer) io.Writer {
	if mode == ModeTUI {
		return logOut
	}
	return os.Stdout
}
