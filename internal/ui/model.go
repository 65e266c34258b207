package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/logtail"
	"github.com/five82/blogfront/internal/page"
	"github.com/five82/blogfront/internal/prefs"
	"github.com/five82/blogfront/internal/state"
)

const logTailLines = 400

// screen is what the body of the UI shows.
type screen int

const (
	screenHome screen = iota
	screenList
	screenDetail
	screenLogs
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *page.Controller
	Store      *state.Store
	Document   *dom.Page
	Start      page.Route
	LogFile    string
	PrefsPath  string
	Prefs      prefs.Prefs
	Tick       time.Duration
	Logger     zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *page.Controller
	store     *state.Store
	doc       *dom.Page
	locale    i18n.Locale
	start     page.Route
	logFile   string
	prefsPath string
	prefs     prefs.Prefs
	tick      time.Duration
	log       zerolog.Logger

	feed        *snapshotFeed
	unsubscribe func()

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	search   textinput.Model
	detail   viewport.Model
	logs     viewport.Model
	screen   screen
	prev     screen
	back     page.Route
	width    int
	height   int
	ready    bool
	showHelp bool
	selected int

	// Data state
	snapshot    state.Snapshot
	entries     []logtail.Entry
	logErr      error
	lastUpdated time.Time
}

// New creates a Model and subscribes it to the store. Call Close when done.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	start := opts.Start
	if start.View == 0 {
		start = page.Route{View: page.ViewHome}
	}

	doc := opts.Document
	if doc == nil {
		doc = dom.NewPage()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search posts"
	search.CharLimit = 120

	feed := newSnapshotFeed()
	unsubscribe := func() {}
	if opts.Store != nil {
		unsubscribe = opts.Store.Subscribe(feed.push)
	}

	locale := i18n.Fallback()
	if opts.Controller != nil {
		locale = opts.Controller.Locale()
	}

	return Model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		store:       opts.Store,
		doc:         doc,
		locale:      locale,
		start:       start,
		logFile:     opts.LogFile,
		prefsPath:   prefsPath,
		prefs:       opts.Prefs,
		tick:        tick,
		log:         opts.Logger,
		feed:        feed,
		unsubscribe: unsubscribe,
		theme:       GetTheme(opts.Prefs.Theme),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		search:      search,
		screen:      screenFor(start.View),
	}
}

// Close detaches the model from the store.
func (m Model) Close() {
	m.unsubscribe()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.feed.wait(m.ctx),
		m.spinner.Tick,
		tickCmd(m.tick),
		m.load(m.start),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, m.feed.wait(m.ctx)

	case loadedMsg:
		m.handleLoaded(msg)
		return m, nil

	case logsMsg:
		m.entries = msg.entries
		m.logErr = msg.err
		m.refreshLogs()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.tick)}
		if m.screen == screenLogs {
			cmds = append(cmds, m.loadLogs())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.screen != screenLogs {
			m.prev = m.screen
			m.screen = screenLogs
		}
		return m, m.loadLogs()

	case key.Matches(msg, m.keys.Back):
		return m.goBack()

	case key.Matches(msg, m.keys.SwitchList):
		if m.screen == screenHome {
			cmd := m.navigate(page.Route{View: page.ViewList, Page: 1})
			return m, cmd
		}
		if m.screen == screenList {
			cmd := m.navigate(page.Route{View: page.ViewHome})
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.screen == screenLogs {
			return m, m.loadLogs()
		}
		return m, m.reload()

	case key.Matches(msg, m.keys.Undo):
		if !m.store.Undo() {
			m.log.Debug().Msg("nothing to undo")
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAll):
		m.prefs.ShowDrafts = !m.prefs.ShowDrafts
		m.store.SetPublishedOnly(m.prefs.PublishedOnly())
		m.savePrefs()
		if m.screen == screenHome || m.screen == screenList {
			return m, m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.screen != screenHome && m.screen != screenList {
			return m, nil
		}
		m.search.SetValue(m.snapshot.Filters.SearchQuery)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	}

	switch m.screen {
	case screenHome, screenList:
		return m.handleListKey(msg)
	case screenDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case screenLogs:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.snapshot.VisiblePosts()
	pg := m.snapshot.Pagination

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(visible)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Open):
		if m.selected >= len(visible) {
			return m, nil
		}
		m.back = m.ctrl.Current()
		cmd := m.navigate(page.Route{View: page.ViewDetail, PostID: visible[m.selected].ID.String()})
		return m, cmd
	case key.Matches(msg, m.keys.NextPage):
		if m.screen == screenList && pg.CurrentPage < pg.TotalPages {
			cmd := m.navigate(page.Route{View: page.ViewList, Page: pg.CurrentPage + 1, Limit: pg.Limit})
			return m, cmd
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.screen == screenList && pg.CurrentPage > 1 {
			cmd := m.navigate(page.Route{View: page.ViewList, Page: pg.CurrentPage - 1, Limit: pg.Limit})
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.search.Blur()
		m.selected = 0
		m.store.SetSearchQuery(m.search.Value())
		return m, nil
	case key.Matches(msg, m.keys.CancelEdit):
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) goBack() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenDetail:
		route := m.back
		if route.View == 0 {
			route = page.Route{View: page.ViewHome}
		}
		cmd := m.navigate(route)
		return m, cmd
	case screenLogs:
		m.screen = m.prev
		return m, nil
	default:
		if m.snapshot.Filters.SearchQuery != "" {
			m.store.SetSearchQuery("")
		}
		return m, nil
	}
}

// navigate switches the body to route and loads it.
func (m *Model) navigate(route page.Route) tea.Cmd {
	m.screen = screenFor(route.View)
	if route.View != page.ViewDetail {
		m.selected = 0
	}
	return m.load(route)
}

func (m Model) load(route page.Route) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return loadedMsg{route: route, err: ctrl.Navigate(ctx, route)}
	}
}

func (m Model) reload() tea.Cmd {
	return m.load(m.ctrl.Current())
}

func (m Model) loadLogs() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		entries, err := logtail.Tail(path, logTailLines)
		return logsMsg{entries: entries, err: err}
	}
}

func (m *Model) handleLoaded(msg loadedMsg) {
	if errors.Is(msg.err, page.ErrSuperseded) {
		return
	}
	if msg.err != nil {
		m.log.Debug().Err(msg.err).Str("view", msg.route.View.String()).Msg("load finished with error")
		return
	}
	if msg.route.View == page.ViewDetail {
		m.detail.GotoTop()
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	if n := len(snap.VisiblePosts()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	m.refreshDetail()
}

func (m *Model) savePrefs() {
	m.prefs.Theme = m.theme.Name
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save preferences failed")
	}
}

func (m *Model) resize() {
	body := m.bodyHeight()
	if !m.ready {
		m.detail = viewport.New(m.width, body)
		m.logs = viewport.New(m.width, body)
	} else {
		m.detail.Width, m.detail.Height = m.width, body
		m.logs.Width, m.logs.Height = m.width, body
	}
	m.help.Width = m.width
	m.search.Width = max(m.width-4, 10)
	m.refreshDetail()
	m.refreshLogs()
}

// bodyHeight leaves room for the header, status and footer lines.
func (m Model) bodyHeight() int {
	return max(m.height-3, 1)
}

func screenFor(v page.View) screen {
	switch v {
	case page.ViewList:
		return screenList
	case page.ViewDetail:
		return screenDetail
	default:
		return screenHome
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type loadedMsg struct {
	route page.Route
	err   error
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits or ctx ends.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, programOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
