package posts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/blogfront/internal/api"
	"github.com/five82/blogfront/internal/i18n"
)

// Doer is the request helper the client is built on. *api.Requester implements it.
type Doer interface {
	Do(ctx context.Context, req api.Request) api.Result
}

// Service is the set of post operations. *Client implements it; page controllers
// and tests depend on this interface.
type Service interface {
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	Get(ctx context.Context, id string) (Post, error)
	Create(ctx context.Context, post PostCreate) (Post, error)
	Update(ctx context.Context, id string, post PostUpdate) (Post, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

var _ Service = (*Client)(nil)

// Client builds endpoint-specific requests for /posts.
type Client struct {
	doer    Doer
	baseURL string
	locale  i18n.Locale
}

const defaultBaseURL = "/api/v1"

// Option customizes a Client.
type Option func(*Client)

// WithLocale selects the language of error messages.
func WithLocale(locale i18n.Locale) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// NewClient returns a client for the posts resource under baseURL
// (for example "http://127.0.0.1:8000/api/v1"). An empty baseURL uses "/api/v1".
func NewClient(doer Doer, baseURL string, opts ...Option) (*Client, error) {
	if doer == nil {
		return nil, fmt.Errorf("posts client requires a request helper")
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	c := &Client{doer: doer, baseURL: base, locale: i18n.Fallback()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches a page of posts.
func (c *Client) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(opts.Limit))
	values.Set("skip", strconv.Itoa(opts.Skip))
	values.Set("published_only", strconv.FormatBool(opts.PublishedOnly))

	res := c.doer.Do(ctx, api.Request{Method: http.MethodGet, URL: c.collectionURL() + "?" + values.Encode()})
	if res.Err != nil {
		return ListResult{}, c.wrap(OpList, "", res.Err)
	}
	var out ListResult
	if err := res.Decode(&out); err != nil {
		return ListResult{}, c.decodeFailure(OpList, "", err)
	}
	return out, nil
}

// Get fetches one post. A blank or malformed id fails without a request.
func (c *Client) Get(ctx context.Context, id string) (Post, error) {
	postID, err := c.checkID(OpGet, id)
	if err != nil {
		return Post{}, err
	}
	res := c.doer.Do(ctx, api.Request{Method: http.MethodGet, URL: c.itemURL(postID)})
	if res.Err != nil {
		return Post{}, c.wrap(OpGet, id, res.Err)
	}
	var out Post
	if err := res.Decode(&out); err != nil {
		return Post{}, c.decodeFailure(OpGet, id, err)
	}
	return out, nil
}

// Create submits a new post.
func (c *Client) Create(ctx context.Context, post PostCreate) (Post, error) {
	res := c.doer.Do(ctx, api.Request{Method: http.MethodPost, URL: c.collectionURL(), Body: post})
	if res.Err != nil {
		return Post{}, c.wrap(OpCreate, "", res.Err)
	}
	var out Post
	if err := res.Decode(&out); err != nil {
		return Post{}, c.decodeFailure(OpCreate, "", err)
	}
	return out, nil
}

// Update replaces the fields set in post.
func (c *Client) Update(ctx context.Context, id string, post PostUpdate) (Post, error) {
	postID, err := c.checkID(OpUpdate, id)
	if err != nil {
		return Post{}, err
	}
	res := c.doer.Do(ctx, api.Request{Method: http.MethodPut, URL: c.itemURL(postID), Body: post})
	if res.Err != nil {
		return Post{}, c.wrap(OpUpdate, id, res.Err)
	}
	var out Post
	if err := res.Decode(&out); err != nil {
		return Post{}, c.decodeFailure(OpUpdate, id, err)
	}
	return out, nil
}

// Delete removes a post.
func (c *Client) Delete(ctx context.Context, id string) (DeleteResult, error) {
	postID, err := c.checkID(OpDelete, id)
	if err != nil {
		return DeleteResult{}, err
	}
	res := c.doer.Do(ctx, api.Request{Method: http.MethodDelete, URL: c.itemURL(postID)})
	if res.Err != nil {
		return DeleteResult{}, c.wrap(OpDelete, id, res.Err)
	}
	var out DeleteResult
	if err := res.Decode(&out); err != nil {
		return DeleteResult{}, c.decodeFailure(OpDelete, id, err)
	}
	return out, nil
}

func (c *Client) checkID(op Op, id string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return uuid.Nil, c.invalid(op, id, ErrMissingID)
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, c.invalid(op, id, fmt.Errorf("%w: %v", ErrInvalidID, err))
	}
	return parsed, nil
}

func (c *Client) decodeFailure(op Op, id string, err error) *Error {
	return c.wrap(op, id, &api.Error{Kind: api.KindDecode, Err: err})
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/posts/"
}

func (c *Client) itemURL(id uuid.UUID) string {
	return c.baseURL + "/posts/" + id.String()
}
