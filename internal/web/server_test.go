package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/posts"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	mu    sync.Mutex
	lists []posts.ListOptions
	items []posts.Post
	count int
	get   func(id string) (posts.Post, error)
}

func (s *stubService) List(_ context.Context, opts posts.ListOptions) (posts.ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, opts)
	return posts.ListResult{Items: s.items, Count: s.count}, nil
}

func (s *stubService) Get(_ context.Context, id string) (posts.Post, error) {
	if s.get == nil {
		return posts.Post{}, errors.New("not stubbed")
	}
	return s.get(id)
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

func newStub() *stubService {
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &stubService{
		items: []posts.Post{
			{ID: uuid.New(), Title: "Learning Go", Content: "goroutines", Author: "kim", CreatedAt: created, Published: true},
			{ID: uuid.New(), Title: "Rust notes", Content: "ownership", Author: "lee", CreatedAt: created, Published: true},
		},
		count: 2,
	}
}

func serve(t *testing.T, srv *Server, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHome_RendersRecentPosts(t *testing.T) {
	stub := newStub()
	srv := New(stub, WithRecentLimit(3))

	rec := serve(t, srv, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="recent-posts-container"`, "Learning Go", "Rust notes", `data-view="home"`, `lang="ko"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("response has no %s header", requestIDHeader)
	}
	if got := stub.lists[0]; got.Limit != 3 || !got.PublishedOnly {
		t.Fatalf("List options = %#v, want limit 3 published only", got)
	}
}

func TestHome_KeepsIncomingRequestID(t *testing.T) {
	srv := New(newStub())
	rec := serve(t, srv, "/index.html", http.Header{requestIDHeader: {"abc123"}})
	if got := rec.Header().Get(requestIDHeader); got != "abc123" {
		t.Fatalf("%s = %q, want abc123", requestIDHeader, got)
	}
}

func TestList_PaginationSearchAndDrafts(t *testing.T) {
	stub := newStub()
	stub.count = 25
	srv := New(stub, WithPageSize(10))

	rec := serve(t, srv, "/blog?page=2&all=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `aria-current="page" class="active"`) {
		t.Fatalf("pagination missing:\n%s", body)
	}
	got := stub.lists[0]
	if got.Skip != 10 || got.Limit != 10 || got.PublishedOnly {
		t.Fatalf("List options = %#v, want skip 10 limit 10 all posts", got)
	}

	rec = serve(t, srv, "/blog?page=2&q=go", nil)
	body = rec.Body.String()
	if !strings.Contains(body, "Learning Go") || strings.Contains(body, "Rust notes") {
		t.Fatalf("search filter not applied:\n%s", body)
	}
	if !strings.Contains(body, `value="go"`) {
		t.Fatalf("search box does not echo the query:\n%s", body)
	}
	if strings.Contains(body, `aria-current="page"`) {
		t.Fatalf("pagination shown for a filtered page:\n%s", body)
	}
}

func TestDetail_SetsTitle(t *testing.T) {
	stub := newStub()
	post := stub.items[0]
	stub.get = func(id string) (posts.Post, error) { return post, nil }
	srv := New(stub)

	rec := serve(t, srv, "/blog/"+post.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>Learning Go | 블로그</title>") {
		t.Fatalf("title missing:\n%s", body)
	}
	if !strings.Contains(body, `<h1 id="post-title">Learning Go</h1>`) || !strings.Contains(body, "goroutines") {
		t.Fatalf("post body missing:\n%s", body)
	}
}

func TestDetail_FetchFailureShowsBanner(t *testing.T) {
	stub := newStub()
	stub.get = func(string) (posts.Post, error) { return posts.Post{}, errors.New("backend down") }
	srv := New(stub)

	rec := serve(t, srv, "/blog/"+uuid.NewString(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "backend down") || !strings.Contains(rec.Body.String(), `class="error-message"`) {
		t.Fatalf("error banner missing:\n%s", rec.Body.String())
	}
}

func TestUnknownPath_NotFound(t *testing.T) {
	srv := New(newStub(), WithLocale(i18n.LocaleKo))

	rec := serve(t, srv, "/about", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "페이지를 찾을 수 없습니다") {
		t.Fatalf("not-found banner missing:\n%s", rec.Body.String())
	}

	rec = serve(t, srv, "/about", http.Header{"Accept-Language": {"en-US,en;q=0.9"}})
	if !strings.Contains(rec.Body.String(), "Page not found") || rec.Header().Get("Content-Language") != "en" {
		t.Fatalf("english not-found page missing:\n%s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	rec := serve(t, New(newStub()), "/healthz", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestMetrics_CountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := New(newStub(), WithRegistry(reg))
	serve(t, srv, "/", nil)

	rec := serve(t, srv, "/metrics", nil)
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `blogfront_http_requests_total{method="GET",path="/",status="200"} 1`) {
		t.Fatalf("metrics output missing request counter:\n%s", body)
	}
}
