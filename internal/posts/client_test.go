package posts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/five82/blogfront/internal/api"
	"github.com/five82/blogfront/internal/i18n"
)

type fakeDoer struct {
	calls []api.Request
	res   api.Result
}

func (f *fakeDoer) Do(_ context.Context, req api.Request) api.Result {
	f.calls = append(f.calls, req)
	return f.res
}

func newTestClient(t *testing.T, doer Doer, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(doer, "http://blog.test/api/v1/", opts...)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestClient_MissingIDFailsBeforeRequest(t *testing.T) {
	doer := &fakeDoer{}
	c := newTestClient(t, doer)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["get"] = c.Get(ctx, "")
	_, checks["update"] = c.Update(ctx, "   ", PostUpdate{})
	_, checks["delete"] = c.Delete(ctx, "")

	for op, err := range checks {
		if !IsValidation(err) || !errors.Is(err, ErrMissingID) {
			t.Fatalf("%s error = %v, want ErrMissingID validation error", op, err)
		}
	}
	if len(doer.calls) != 0 {
		t.Fatalf("request helper called %d times, want 0", len(doer.calls))
	}
}

func TestClient_MalformedIDFailsBeforeRequest(t *testing.T) {
	doer := &fakeDoer{}
	c := newTestClient(t, doer, WithLocale(i18n.LocaleEn))

	_, err := c.Get(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("Get error = %v, want ErrInvalidID", err)
	}
	if !strings.Contains(err.Error(), "not-a-uuid") {
		t.Fatalf("Get error = %q, want it to name the id", err.Error())
	}
	if len(doer.calls) != 0 {
		t.Fatalf("request helper called %d times, want 0", len(doer.calls))
	}
}

func TestClient_ListEncodesQuery(t *testing.T) {
	doer := &fakeDoer{res: api.Result{Data: json.RawMessage(`{"items":[{"title":"a"}],"count":25}`)}}
	c := newTestClient(t, doer)

	out, err := c.List(context.Background(), ListOptions{Limit: 5, Skip: 10, PublishedOnly: false})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if out.Count != 25 || len(out.Items) != 1 || out.Items[0].Title != "a" {
		t.Fatalf("List = %#v, want count=25 one item", out)
	}
	req := doer.calls[0]
	u, err := url.Parse(req.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if req.Method != http.MethodGet || u.Path != "/api/v1/posts/" {
		t.Fatalf("request = %s %s, want GET /api/v1/posts/", req.Method, u.Path)
	}
	q := u.Query()
	if q.Get("limit") != "5" || q.Get("skip") != "10" || q.Get("published_only") != "false" {
		t.Fatalf("query = %v, want limit=5 skip=10 published_only=false", q)
	}
}

func TestClient_NotFoundUsesStatusCode(t *testing.T) {
	id := uuid.New().String()
	doer := &fakeDoer{res: api.Result{Err: &api.Error{Kind: api.KindStatus, Status: http.StatusNotFound}}}
	c := newTestClient(t, doer)

	_, err := c.Get(context.Background(), id)
	if !IsNotFound(err) {
		t.Fatalf("Get error = %v, want not found", err)
	}
	if err.Error() != "게시글을 찾을 수 없습니다" {
		t.Fatalf("Get error = %q, want Korean not-found message", err.Error())
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Status != http.StatusNotFound || pe.Op != OpGet {
		t.Fatalf("Get error = %#v, want op=get status=404", err)
	}
}

func TestClient_MessageContaining404IsNotNotFound(t *testing.T) {
	id := uuid.New().String()
	doer := &fakeDoer{res: api.Result{Err: &api.Error{Kind: api.KindTransport, Err: errors.New("dial tcp: port 404 refused")}}}
	c := newTestClient(t, doer)

	_, err := c.Get(context.Background(), id)
	if IsNotFound(err) {
		t.Fatalf("Get error = %v, transport failure must not be not-found", err)
	}
	if !strings.HasPrefix(err.Error(), "게시글을 불러올 수 없습니다: ") {
		t.Fatalf("Get error = %q, want generic failure message", err.Error())
	}
}

func TestClient_ListFailureMessage(t *testing.T) {
	doer := &fakeDoer{res: api.Result{Err: &api.Error{Kind: api.KindStatus, Status: 404}}}
	c := newTestClient(t, doer, WithLocale(i18n.LocaleEn))

	_, err := c.List(context.Background(), DefaultListOptions())
	if IsNotFound(err) {
		t.Fatalf("List 404 reported as post not found")
	}
	if err.Error() != "could not load posts: HTTP error! status: 404" {
		t.Fatalf("List error = %q", err.Error())
	}
}

func TestClient_DecodeFailure(t *testing.T) {
	doer := &fakeDoer{res: api.Result{Data: json.RawMessage(`[1,2]`)}}
	c := newTestClient(t, doer)
	_, err := c.Get(context.Background(), uuid.New().String())
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindFailed {
		t.Fatalf("Get error = %v, want KindFailed", err)
	}
}

func TestNewClient_RequiresDoerAndDefaultsBase(t *testing.T) {
	if _, err := NewClient(nil, ""); err == nil {
		t.Fatalf("NewClient(nil) returned nil error")
	}
	doer := &fakeDoer{res: api.Result{Data: json.RawMessage(`{"items":[],"count":0}`)}}
	c, err := NewClient(doer, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background(), DefaultListOptions()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !strings.HasPrefix(doer.calls[0].URL, "/api/v1/posts/?") {
		t.Fatalf("URL = %q, want /api/v1/posts/?...", doer.calls[0].URL)
	}
}

func TestClient_AgainstHTTPServer(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("0b7c5c9e-6f43-4a6e-9d8c-2d7b5a1f0c11")
	created := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	var gotUpdate map[string]any
	var gotCreate PostCreate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/posts/"+id.String():
			_ = json.NewEncoder(w).Encode(Post{ID: id, Title: "Hello", Author: "kim", CreatedAt: created, Published: true})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/posts/":
			_ = json.NewDecoder(r.Body).Decode(&gotCreate)
			_ = json.NewEncoder(w).Encode(Post{ID: id, Title: gotCreate.Title})
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/posts/"+id.String():
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotUpdate)
			_ = json.NewEncoder(w).Encode(Post{ID: id, Title: "Renamed"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/posts/"+id.String():
			_, _ = io.WriteString(w, `{"message":"Post deleted successfully"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(api.New(), server.URL+"/api/v1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	post, err := c.Get(ctx, id.String())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if post.ID != id || post.Title != "Hello" || !post.CreatedAt.Equal(created) {
		t.Fatalf("Get = %#v", post)
	}

	if _, err := c.Create(ctx, PostCreate{Title: "New", Content: "body", Author: "lee", Published: true}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if gotCreate.Title != "New" || gotCreate.Author != "lee" || !gotCreate.Published {
		t.Fatalf("create body = %#v", gotCreate)
	}

	title := "Renamed"
	if _, err := c.Update(ctx, id.String(), PostUpdate{Title: &title}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(gotUpdate) != 1 || gotUpdate["title"] != "Renamed" {
		t.Fatalf("update body = %v, want only title", gotUpdate)
	}

	del, err := c.Delete(ctx, id.String())
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if del.Message != "Post deleted successfully" {
		t.Fatalf("Delete = %#v", del)
	}

	_, err = c.Get(ctx, uuid.New().String())
	if !IsNotFound(err) {
		t.Fatalf("Get unknown id error = %v, want not found", err)
	}
}

func TestClone(t *testing.T) {
	if Clone(nil) != nil {
		t.Fatalf("Clone(nil) != nil")
	}
	src := []Post{{Title: "a"}}
	dup := Clone(src)
	dup[0].Title = "b"
	if src[0].Title != "a" {
		t.Fatalf("Clone shares backing array")
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ count, limit, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 1},
	}
	for _, tc := range cases {
		if got := PageCount(tc.count, tc.limit); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.count, tc.limit, got, tc.want)
		}
	}
}
