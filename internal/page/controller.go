package page

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/posts"
	"github.com/five82/blogfront/internal/render"
	"github.com/five82/blogfront/internal/state"
)

// ErrSuperseded is returned by a load whose result arrived after a newer load
// started. Its result was dropped.
var ErrSuperseded = errors.New("navigation superseded by a newer load")

const (
	defaultRecentLimit  = 5
	defaultPageSize     = 10
	defaultSuccessDelay = 3 * time.Second

	tracerName = "blogfront/page"

	recentTruncateLength = 150
	listTruncateLength   = 200
)

// Controller loads posts into the store and renders them into the document.
type Controller struct {
	posts  posts.Service
	store  *state.Store
	doc    dom.Document
	locale i18n.Locale
	log    zerolog.Logger

	recentLimit  int
	pageSize     int
	successDelay time.Duration
	afterFunc    func(time.Duration, func())

	generation atomic.Uint64

	mu   sync.Mutex
	last Route
}

// Option customizes a Controller.
type Option func(*Controller)

// WithRecentLimit sets how many posts the home page shows (default 5).
func WithRecentLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.recentLimit = n
		}
	}
}

// WithPageSize sets the list page size used by Initialize (default 10).
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSuccessDelay sets how long the success banner stays visible (default 3s).
// Zero keeps it visible.
func WithSuccessDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.successDelay = d
		}
	}
}

// WithAfterFunc replaces the timer used to hide the success banner.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(c *Controller) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// New wires a controller to its collaborators.
func New(svc posts.Service, store *state.Store, doc dom.Document, locale i18n.Locale, opts ...Option) (*Controller, error) {
	switch {
	case svc == nil:
		return nil, fmt.Errorf("page controller requires a posts service")
	case store == nil:
		return nil, fmt.Errorf("page controller requires a state store")
	case doc == nil:
		return nil, fmt.Errorf("page controller requires a document")
	}
	c := &Controller{
		posts:        svc,
		store:        store,
		doc:          doc,
		locale:       locale,
		log:          zerolog.Nop(),
		recentLimit:  defaultRecentLimit,
		pageSize:     defaultPageSize,
		successDelay: defaultSuccessDelay,
		afterFunc:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		last:         Route{View: ViewHome},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Locale returns the language the controller renders in.
func (c *Controller) Locale() i18n.Locale {
	return c.locale
}

// Initialize resolves path and query and runs the matching load.
func (c *Controller) Initialize(ctx context.Context, path string, query url.Values) error {
	route, err := Resolve(path, query)
	if err != nil {
		c.log.Debug().Str("path", path).Msg("no page for path")
		return err
	}
	return c.Navigate(ctx, route)
}

// Navigate runs the load for route.
func (c *Controller) Navigate(ctx context.Context, route Route) error {
	switch route.View {
	case ViewHome:
		return c.LoadRecentPosts(ctx)
	case ViewList:
		return c.LoadAllPosts(ctx, route.Page, route.Limit)
	case ViewDetail:
		return c.LoadPost(ctx, route.PostID)
	default:
		return ErrUnknownPage
	}
}

// Reload repeats the most recent navigation.
func (c *Controller) Reload(ctx context.Context) error {
	return c.Navigate(ctx, c.Current())
}

// Current returns the most recent navigation.
func (c *Controller) Current() Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// LoadRecentPosts fetches the newest posts for the home page.
func (c *Controller) LoadRecentPosts(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "page.LoadRecentPosts")
	defer span.End()
	gen := c.begin(Route{View: ViewHome})
	defer c.finish(gen)

	res, err := c.posts.List(ctx, posts.ListOptions{
		Limit:         c.recentLimit,
		PublishedOnly: c.store.Snapshot().Filters.PublishedOnly,
	})
	if !c.current(gen) {
		return c.superseded("recent", err)
	}
	if err != nil {
		return c.fail(ctx, "load recent posts", err)
	}

	c.store.SetPosts(res.Items)
	c.doc.Hide(dom.Errors)
	c.doc.SetHTML(dom.RecentPosts, render.PostList(c.store.Snapshot().VisiblePosts(), render.ListOptions{
		ContainerClass: "recent-posts",
		Card:           render.CardOptions{TruncateLength: recentTruncateLength, Locale: c.locale},
	}))
	c.log.Debug().Int("count", len(res.Items)).Msg("recent posts loaded")
	return nil
}

// LoadAllPosts fetches one page of the post list. Pages start at 1; a
// non-positive limit uses the configured page size.
func (c *Controller) LoadAllPosts(ctx context.Context, page, limit int) error {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = c.pageSize
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "page.LoadAllPosts", trace.WithAttributes(
		attribute.Int("page.number", page),
		attribute.Int("page.limit", limit),
	))
	defer span.End()
	gen := c.begin(Route{View: ViewList, Page: page, Limit: limit})
	defer c.finish(gen)

	c.store.SetState(func(s *state.Snapshot) {
		s.Pagination.CurrentPage = page
		s.Pagination.Limit = limit
	})

	res, err := c.posts.List(ctx, posts.ListOptions{
		Limit:         limit,
		Skip:          (page - 1) * limit,
		PublishedOnly: c.store.Snapshot().Filters.PublishedOnly,
	})
	if !c.current(gen) {
		return c.superseded("list", err)
	}
	if err != nil {
		return c.fail(ctx, "load posts", err)
	}

	c.store.SetPosts(res.Items)
	c.store.SetPaginationData(res.Count)
	c.doc.Hide(dom.Errors)
	c.doc.SetHTML(dom.PostsList, render.PostList(c.store.Snapshot().VisiblePosts(), render.ListOptions{
		ContainerClass: "all-posts",
		EmptyMessage:   i18n.T(c.locale, i18n.MsgNoPostsYet),
		Card:           render.CardOptions{TruncateLength: listTruncateLength, ShowAuthor: true, Locale: c.locale},
	}))
	c.doc.SetHTML(dom.Pagination, render.Pagination(res.Count, page, limit, c.locale))
	c.log.Debug().Int("page", page).Int("count", res.Count).Msg("post list loaded")
	return nil
}

// LoadPost fetches a single post for the detail page and shows a success banner
// that hides itself after the success delay.
func (c *Controller) LoadPost(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "page.LoadPost", trace.WithAttributes(
		attribute.String("post.id", id),
	))
	defer span.End()
	gen := c.begin(Route{View: ViewDetail, PostID: id})
	defer c.finish(gen)

	post, err := c.posts.Get(ctx, id)
	if !c.current(gen) {
		return c.superseded("detail", err)
	}
	if err != nil {
		return c.fail(ctx, "load post", err)
	}

	c.store.SetCurrentPost(&post)
	c.doc.Hide(dom.Errors)
	c.doc.SetText(dom.PostTitle, post.Title)
	c.doc.SetTitle(i18n.T(c.locale, i18n.MsgDocTitleSuffix, post.Title))
	c.doc.SetText(dom.PostContent, post.Content)
	c.doc.SetHTML(dom.PostMeta, render.PostMeta(post, c.locale))
	c.showSuccess(i18n.T(c.locale, i18n.MsgPostLoaded))
	c.log.Debug().Str("id", post.ID.String()).Msg("post loaded")
	return nil
}

// BindLoading mirrors the store's loading flag into the loading region. The
// returned func detaches it.
func (c *Controller) BindLoading() func() {
	return c.store.Subscribe(func(s state.Snapshot) {
		if s.Loading {
			c.doc.SetHTML(dom.Loading, render.LoadingBanner(c.locale))
			c.doc.Show(dom.Loading)
			return
		}
		c.doc.Hide(dom.Loading)
	})
}

// ShowError renders message in the error region.
func (c *Controller) ShowError(message string) {
	c.doc.SetHTML(dom.Errors, render.ErrorBanner(message, c.locale))
	c.doc.Show(dom.Errors)
}

func (c *Controller) showSuccess(message string) {
	c.doc.SetHTML(dom.Success, render.SuccessBanner(message, c.locale))
	c.doc.Show(dom.Success)
	if c.successDelay > 0 {
		c.afterFunc(c.successDelay, func() { c.doc.Hide(dom.Success) })
	}
}

func (c *Controller) begin(route Route) uint64 {
	gen := c.generation.Add(1)
	c.mu.Lock()
	c.last = route
	c.mu.Unlock()
	c.store.SetLoading(true)
	return gen
}

// finish clears loading unless a newer load owns it.
func (c *Controller) finish(gen uint64) {
	if c.current(gen) {
		c.store.SetLoading(false)
	}
}

func (c *Controller) current(gen uint64) bool {
	return c.generation.Load() == gen
}

func (c *Controller) fail(ctx context.Context, action string, err error) error {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, action+" failed")
	msg := err.Error()
	c.store.SetError(msg)
	c.ShowError(msg)
	c.log.Error().Err(err).Msg(action + " failed")
	return err
}

func (c *Controller) superseded(view string, err error) error {
	ev := c.log.Debug().Str("view", view)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("dropping stale load result")
	return ErrSuperseded
}
