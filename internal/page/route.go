package page

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnknownPage is returned for a path that is not one of the blog pages.
var ErrUnknownPage = errors.New("unknown page")

// View names a blog page.
type View int

const (
	ViewHome View = iota + 1
	ViewList
	ViewDetail
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Route is a resolved page request. A zero Limit means the controller's page size.
type Route struct {
	View   View
	Page   int
	Limit  int
	PostID string
}

// Resolve maps a request path and query onto a page. "/" and "/index.html" are
// the home page, "/blog" and "/blog.html" the paged list (?page=N, default 1),
// and "/blog/{id}" a single post.
func Resolve(path string, query url.Values) (Route, error) {
	switch path {
	case "/", "/index.html":
		return Route{View: ViewHome}, nil
	case "/blog", "/blog.html":
		return Route{View: ViewList, Page: pageParam(query)}, nil
	}
	if rest, ok := strings.CutPrefix(path, "/blog/"); ok {
		id := rest
		if i := strings.LastIndex(rest, "/"); i >= 0 {
			id = rest[i+1:]
		}
		if id != "" {
			return Route{View: ViewDetail, PostID: id}, nil
		}
	}
	return Route{}, ErrUnknownPage
}

func pageParam(query url.Values) int {
	n, err := strconv.Atoi(strings.TrimSpace(query.Get("page")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
