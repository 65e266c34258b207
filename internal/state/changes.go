package state

import "github.com/five82/blogfront/internal/posts"

// Change replaces one top-level branch of a snapshot. SetState applies a list of
// changes, which is the shallow merge of a partial snapshot.
type Change func(*Snapshot)

// ReplacePosts sets posts.
func ReplacePosts(items []posts.Post) Change {
	items = posts.Clone(items)
	if items == nil {
		items = []posts.Post{}
	}
	return func(s *Snapshot) { s.Posts = items }
}

// ReplaceCurrentPost sets currentPost; nil clears it.
func ReplaceCurrentPost(post *posts.Post) Change {
	var dup *posts.Post
	if post != nil {
		p := *post
		dup = &p
	}
	return func(s *Snapshot) { s.CurrentPost = dup }
}

// ReplaceLoading sets loading.
func ReplaceLoading(loading bool) Change {
	return func(s *Snapshot) { s.Loading = loading }
}

// ReplaceError sets error; an empty message clears it.
func ReplaceError(msg string) Change {
	return func(s *Snapshot) { s.Error = msg }
}

// ReplacePagination sets the whole pagination branch.
func ReplacePagination(p Pagination) Change {
	return func(s *Snapshot) { s.Pagination = p }
}

// ReplaceFilters sets the whole filters branch.
func ReplaceFilters(f Filters) Change {
	return func(s *Snapshot) { s.Filters = f }
}
