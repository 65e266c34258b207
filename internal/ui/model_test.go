package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/page"
	"github.com/five82/blogfront/internal/posts"
	"github.com/five82/blogfront/internal/prefs"
	"github.com/five82/blogfront/internal/state"
)

type stubService struct {
	mu    sync.Mutex
	items []posts.Post
	count int
	err   error
	lists []posts.ListOptions
	gets  []string
}

func (s *stubService) List(_ context.Context, opts posts.ListOptions) (posts.ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, opts)
	if s.err != nil {
		return posts.ListResult{}, s.err
	}
	count := s.count
	if count == 0 {
		count = len(s.items)
	}
	return posts.ListResult{Items: posts.Clone(s.items), Count: count}, nil
}

func (s *stubService) Get(_ context.Context, id string) (posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets = append(s.gets, id)
	for _, p := range s.items {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return posts.Post{}, errors.New("missing")
}

func (s *stubService) Create(context.Context, posts.PostCreate) (posts.Post, error) {
	return posts.Post{}, errors.New("not stubbed")
}

func (s *stubService) Update(context.Context, string, posts.PostUpdate) (posts.Post, error) {
	return posts.Post{}, errors.New("not stubbed")
}

func (s *stubService) Delete(context.Context, string) (posts.DeleteResult, error) {
	return posts.DeleteResult{}, errors.New("not stubbed")
}

func (s *stubService) lastList() posts.ListOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists[len(s.lists)-1]
}

func samplePosts(titles ...string) []posts.Post {
	out := make([]posts.Post, len(titles))
	for i, title := range titles {
		out[i] = posts.Post{
			ID:        uuid.New(),
			Title:     title,
			Content:   "content of " + title,
			Author:    "kim",
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Published: true,
		}
	}
	return out
}

func newTestModel(t *testing.T, svc *stubService) (Model, *state.Store) {
	t.Helper()
	store := state.NewStore()
	doc := dom.NewPage()
	ctrl, err := page.New(svc, store, doc, i18n.LocaleEn, page.WithSuccessDelay(0))
	if err != nil {
		t.Fatalf("page.New: %v", err)
	}
	m := New(Options{
		Controller: ctrl,
		Store:      store,
		Document:   doc,
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Prefs:      prefs.Prefs{Theme: "Nightfox"},
		LogFile:    filepath.Join(t.TempDir(), "blogfront.log"),
	})
	t.Cleanup(m.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), store
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, s string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyMsg(s))
	return next.(Model), cmd
}

// run executes a load command and feeds its result and the latest snapshot
// back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("cmd = nil, want a command")
	}
	next, _ := m.Update(cmd())
	return settle(next.(Model))
}

func settle(m Model) Model {
	select {
	case snap := <-m.feed.ch:
		next, _ := m.Update(snapshotMsg(snap))
		return next.(Model)
	default:
		return m
	}
}

func TestModel_HomeShowsRecentPosts(t *testing.T) {
	svc := &stubService{items: samplePosts("first", "second")}
	m, _ := newTestModel(t, svc)

	m = run(t, m, m.load(page.Route{View: page.ViewHome}))

	view := m.View()
	if !strings.Contains(view, "first") || !strings.Contains(view, "second") {
		t.Fatalf("view missing post titles:\n%s", view)
	}
	if got := svc.lastList(); got.Limit != 5 || !got.PublishedOnly {
		t.Fatalf("List opts = %+v, want limit 5 published only", got)
	}
}

func TestModel_EnterOpensSelectedPost(t *testing.T) {
	items := samplePosts("first", "second")
	svc := &stubService{items: items}
	m, _ := newTestModel(t, svc)
	m = run(t, m, m.load(page.Route{View: page.ViewHome}))

	m, _ = press(m, "j")
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}
	m, cmd := press(m, "enter")
	if m.screen != screenDetail {
		t.Fatalf("screen = %v, want detail", m.screen)
	}
	m = run(t, m, cmd)

	if len(svc.gets) != 1 || svc.gets[0] != items[1].ID.String() {
		t.Fatalf("gets = %v, want [%s]", svc.gets, items[1].ID)
	}
	view := m.View()
	if !strings.Contains(view, "content of second") {
		t.Fatalf("detail view missing content:\n%s", view)
	}
	if !strings.Contains(view, i18n.T(i18n.LocaleEn, i18n.MsgPostLoaded)) {
		t.Fatalf("detail view missing success status:\n%s", view)
	}
}

func TestModel_BackReturnsToPreviousList(t *testing.T) {
	svc := &stubService{items: samplePosts("first"), count: 25}
	m, _ := newTestModel(t, svc)

	m, cmd := press(m, "tab")
	if m.screen != screenList {
		t.Fatalf("screen = %v, want list", m.screen)
	}
	m = run(t, m, cmd)
	m, cmd = press(m, "n")
	m = run(t, m, cmd)
	m, cmd = press(m, "enter")
	m = run(t, m, cmd)

	m, cmd = press(m, "b")
	if m.screen != screenList {
		t.Fatalf("screen after back = %v, want list", m.screen)
	}
	m = run(t, m, cmd)
	if got := svc.lastList(); got.Skip != 10 {
		t.Fatalf("List skip after back = %d, want 10 (page 2)", got.Skip)
	}
	if m.snapshot.Pagination.CurrentPage != 2 {
		t.Fatalf("current page = %d, want 2", m.snapshot.Pagination.CurrentPage)
	}
}

func TestModel_PagingStopsAtBounds(t *testing.T) {
	svc := &stubService{items: samplePosts("a"), count: 25}
	m, _ := newTestModel(t, svc)

	m, cmd := press(m, "tab")
	m = run(t, m, cmd)
	if _, cmd := press(m, "p"); cmd != nil {
		t.Fatalf("prev on page 1 returned a command")
	}
	for n := 2; n <= 3; n++ {
		m, cmd = press(m, "n")
		m = run(t, m, cmd)
		if got := svc.lastList().Skip; got != (n-1)*10 {
			t.Fatalf("skip = %d, want %d", got, (n-1)*10)
		}
	}
	if _, cmd := press(m, "n"); cmd != nil {
		t.Fatalf("next on last page returned a command")
	}
	if view := m.View(); !strings.Contains(view, i18n.T(i18n.LocaleEn, i18n.MsgPageN, 3)) || !strings.Contains(view, "/ 3") {
		t.Fatalf("view missing pager:\n%s", view)
	}
}

func TestModel_SearchFiltersAndEscClears(t *testing.T) {
	svc := &stubService{items: samplePosts("golang tips", "rust notes")}
	m, store := newTestModel(t, svc)
	m = run(t, m, m.load(page.Route{View: page.ViewHome}))

	m, _ = press(m, "/")
	if !m.search.Focused() {
		t.Fatalf("search not focused after /")
	}
	m, _ = press(m, "go")
	m, _ = press(m, "enter")
	m = settle(m)

	if got := store.Snapshot().Filters.SearchQuery; got != "go" {
		t.Fatalf("search query = %q, want go", got)
	}
	view := m.View()
	if !strings.Contains(view, "golang tips") || strings.Contains(view, "rust notes") {
		t.Fatalf("view not filtered:\n%s", view)
	}

	m, _ = press(m, "esc")
	m = settle(m)
	if got := store.Snapshot().Filters.SearchQuery; got != "" {
		t.Fatalf("search query after esc = %q, want empty", got)
	}
}

func TestModel_ToggleDraftsSavesPrefsAndReloads(t *testing.T) {
	svc := &stubService{items: samplePosts("a")}
	m, store := newTestModel(t, svc)
	m = run(t, m, m.load(page.Route{View: page.ViewHome}))

	m, cmd := press(m, "a")
	if store.Snapshot().Filters.PublishedOnly {
		t.Fatalf("publishedOnly = true after toggle, want false")
	}
	if !prefs.Load(m.prefsPath).ShowDrafts {
		t.Fatalf("prefs not saved with show_drafts")
	}
	m = run(t, m, cmd)
	if got := svc.lastList(); got.PublishedOnly {
		t.Fatalf("List after toggle = %+v, want drafts included", got)
	}
	if !strings.Contains(m.View(), "drafts") {
		t.Fatalf("header missing drafts marker")
	}
}

func TestModel_UndoRestoresPreviousState(t *testing.T) {
	m, store := newTestModel(t, &stubService{})
	store.SetSearchQuery("first")
	store.SetSearchQuery("second")

	m, _ = press(m, "u")
	m = settle(m)
	if got := m.snapshot.Filters.SearchQuery; got != "first" {
		t.Fatalf("search query after undo = %q, want first", got)
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	m, _ := newTestModel(t, &stubService{})

	m, _ = press(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestModel_ErrorShownInStatus(t *testing.T) {
	svc := &stubService{err: errors.New("backend down")}
	m, _ := newTestModel(t, svc)

	m = run(t, m, m.load(page.Route{View: page.ViewHome}))
	if !strings.Contains(m.View(), "backend down") {
		t.Fatalf("view missing error:\n%s", m.View())
	}
}

func TestModel_LogsViewParsesFile(t *testing.T) {
	m, _ := newTestModel(t, &stubService{})
	line := `{"level":"warn","time":"2024-01-15T10:00:00Z","message":"slow response","path":"/blog"}`
	if err := os.WriteFile(m.logFile, []byte(line+"\nplain text line\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, cmd := press(m, "l")
	if m.screen != screenLogs {
		t.Fatalf("screen = %v, want logs", m.screen)
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"WARN", "slow response", "path=/blog", "plain text line"} {
		if !strings.Contains(view, want) {
			t.Fatalf("logs view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(m, "esc")
	if m.screen != screenHome {
		t.Fatalf("screen after esc = %v, want home", m.screen)
	}
}

func TestModel_HelpOverlayClosesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t, &stubService{})

	m, _ = press(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m, cmd := press(m, "q")
	if cmd != nil || m.showHelp {
		t.Fatalf("key while help open should only close help")
	}
}

func TestModel_SupersededLoadIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, &stubService{})
	m.screen = screenList

	next, _ := m.Update(loadedMsg{route: page.Route{View: page.ViewHome}, err: page.ErrSuperseded})
	if next.(Model).screen != screenList {
		t.Fatalf("superseded load changed the screen")
	}
}

func TestSnapshotFeed_KeepsNewest(t *testing.T) {
	feed := newSnapshotFeed()
	for _, q := range []string{"a", "b", "c"} {
		snap := state.Defaults()
		snap.Filters.SearchQuery = q
		feed.push(snap)
	}

	msg := feed.wait(context.Background())()
	snap, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("wait returned %T, want snapshotMsg", msg)
	}
	if got := snap.Filters.SearchQuery; got != "c" {
		t.Fatalf("snapshot query = %q, want c", got)
	}
}

func TestSnapshotFeed_WaitStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if msg := newSnapshotFeed().wait(ctx)(); msg != nil {
		t.Fatalf("wait after cancel = %v, want nil", msg)
	}
}

func TestModel_StatusShowsInFlightRequests(t *testing.T) {
	svc := &stubService{items: samplePosts("first")}
	m, _ := newTestModel(t, svc)
	m = run(t, m, m.load(page.Route{View: page.ViewHome}))

	loading := i18n.T(i18n.LocaleEn, i18n.MsgLoading)
	if strings.Contains(m.View(), loading) {
		t.Fatalf("status shows loading while idle")
	}
	ind := page.NewRequestIndicator(m.doc, i18n.LocaleEn)
	ind.SetLoading(true)
	if !strings.Contains(m.View(), loading) {
		t.Fatalf("status missing loading while a request is in flight:\n%s", m.View())
	}
	ind.SetLoading(false)
	if strings.Contains(m.View(), loading) {
		t.Fatalf("status still shows loading after the request finished")
	}
}

func TestModel_PagerHiddenWhileSearching(t *testing.T) {
	svc := &stubService{items: samplePosts("first", "second"), count: 25}
	m, store := newTestModel(t, svc)
	m, cmd := press(m, "tab")
	m = run(t, m, cmd)
	if !strings.Contains(m.View(), "/ 3") {
		t.Fatalf("pager missing before search:\n%s", m.View())
	}

	store.SetSearchQuery("first")
	m = settle(m)
	if strings.Contains(m.View(), "/ 3") {
		t.Fatalf("pager shown over a filtered page:\n%s", m.View())
	}
}
