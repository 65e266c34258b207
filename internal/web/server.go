package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/page"
	"github.com/five82/blogfront/internal/posts"
	"github.com/five82/blogfront/internal/state"
)

const (
	metricsPath     = "/metrics"
	healthPath      = "/healthz"
	shutdownTimeout = 5 * time.Second
)

// Server renders the blog pages over HTTP.
type Server struct {
	engine      *gin.Engine
	posts       posts.Service
	locale      i18n.Locale
	pageSize    int
	recentLimit int
	log         zerolog.Logger
	registry    *prometheus.Registry
}

// Option customizes a Server.
type Option func(*Server)

// WithLocale sets the language used when a request has no Accept-Language.
func WithLocale(locale i18n.Locale) Option {
	return func(s *Server) { s.locale = locale }
}

// WithPageSize sets the list page size.
func WithPageSize(n int) Option {
	return func(s *Server) { s.pageSize = n }
}

// WithRecentLimit sets how many posts the home page shows.
func WithRecentLimit(n int) Option {
	return func(s *Server) { s.recentLimit = n }
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithRegistry registers HTTP metrics on reg and serves it on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// New builds the gin engine and its routes.
func New(svc posts.Service, opts ...Option) *Server {
	s := &Server{
		posts:  svc,
		locale: i18n.Fallback(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	engine := gin.New()
	engine.SetHTMLTemplate(layout)
	engine.Use(gin.Recovery())
	engine.Use(localeSelector(s.locale))
	engine.Use(newHTTPMetrics(s.registry).middleware())
	engine.Use(requestLogger(s.log))

	engine.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	engine.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "blogfront",
			"time":    time.Now().Unix(),
		})
	})
	for _, path := range []string{"/", "/index.html", "/blog", "/blog.html", "/blog/:id"} {
		engine.GET(path, s.renderPage)
	}
	engine.NoRoute(s.renderPage)

	s.engine = engine
	return s
}

// Handler returns the traced HTTP handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, "blogfront")
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// renderPage runs one page view: a fresh document, store and controller per
// request.
func (s *Server) renderPage(c *gin.Context) {
	ctx := c.Request.Context()
	log := zerolog.Ctx(ctx)
	locale := localeOf(c)

	doc := dom.NewPage()
	store := state.NewStore(state.WithPageSize(s.pageSize), state.WithLogger(*log))
	if q := c.Query("q"); q != "" {
		store.SetSearchQuery(q)
	}
	if all, _ := strconv.ParseBool(c.Query("all")); all {
		store.SetPublishedOnly(false)
	}

	ctrl, err := page.New(s.posts, store, doc, locale,
		page.WithPageSize(s.pageSize),
		page.WithRecentLimit(s.recentLimit),
		page.WithSuccessDelay(0),
		page.WithLogger(*log),
	)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	status := http.StatusOK
	route, err := page.Resolve(c.Request.URL.Path, c.Request.URL.Query())
	if err != nil {
		status = http.StatusNotFound
		ctrl.ShowError(i18n.T(locale, i18n.MsgPageNotFound))
	} else if err := ctrl.Navigate(ctx, route); err != nil {
		log.Debug().Err(err).Str("view", route.View.String()).Msg("page rendered with error")
	}

	c.HTML(status, "layout", s.layoutData(doc, route.View, locale, store.Snapshot()))
}

func (s *Server) layoutData(doc *dom.Page, view page.View, locale i18n.Locale, snap state.Snapshot) layoutData {
	title := doc.Title()
	if title == "" {
		title = i18n.T(locale, i18n.MsgBlogTitle)
	}
	pagination := doc.HTML(dom.Pagination)
	if snap.Filters.SearchQuery != "" {
		// search narrows only the fetched page; the server's page count no longer applies
		pagination = ""
	}
	return layoutData{
		Lang:        string(locale),
		Title:       title,
		BlogTitle:   i18n.T(locale, i18n.MsgBlogTitle),
		View:        view.String(),
		Loading:     doc.HTML(dom.Loading),
		ShowLoading: doc.Visible(dom.Loading),
		Error:       doc.HTML(dom.Errors),
		ShowError:   doc.Visible(dom.Errors),
		Success:     doc.HTML(dom.Success),
		ShowSuccess: doc.Visible(dom.Success),
		Recent:      doc.HTML(dom.RecentPosts),
		Posts:       doc.HTML(dom.PostsList),
		Pagination:  pagination,
		PostTitle:   doc.HTML(dom.PostTitle),
		PostMeta:    doc.HTML(dom.PostMeta),
		PostContent: doc.HTML(dom.PostContent),
		Query:       snap.Filters.SearchQuery,
	}
}
