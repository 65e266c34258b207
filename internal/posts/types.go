package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post mirrors PostPublic from the blog API.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Published bool      `json:"published"`
}

// ListResult mirrors PostsPublic. Count is the total number of matching posts on
// the server, not len(Items).
type ListResult struct {
	Items []Post `json:"items"`
	Count int    `json:"count"`
}

// PostCreate is the body of a create request.
type PostCreate struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

// PostUpdate is the body of an update request. Nil fields are left unchanged.
type PostUpdate struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Author    *string `json:"author,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// DeleteResult is the API's acknowledgement of a delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// ListOptions configures List. The zero value is not used directly; see
// DefaultListOptions.
type ListOptions struct {
	Limit         int
	Skip          int
	PublishedOnly bool
}

// DefaultListOptions returns limit 10, skip 0, published only.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 10, PublishedOnly: true}
}

// Clone returns a deep copy of the post slice.
func Clone(items []Post) []Post {
	if items == nil {
		return nil
	}
	dup := make([]Post, len(items))
	copy(dup, items)
	return dup
}

// PageCount returns ceil(count/limit), the number of pages needed to show count
// posts limit at a time. A non-positive limit puts everything on one page.
func PageCount(count, limit int) int {
	if count <= 0 {
		return 0
	}
	if limit <= 0 {
		return 1
	}
	return (count + limit - 1) / limit
}
