package state

import "github.com/five82/blogfront/internal/posts"

// SetCurrentPage sets pagination.currentPage.
func (s *Store) SetCurrentPage(page int) {
	_ = s.UpdateNested("pagination.currentPage", page)
}

// SetPaginationData records the server-side total and recomputes totalPages from
// the current limit.
func (s *Store) SetPaginationData(count int) {
	s.update(func(next *Snapshot) error {
		next.Pagination.TotalCount = count
		next.Pagination.TotalPages = posts.PageCount(count, next.Pagination.Limit)
		return nil
	})
}

// SetPosts replaces the post list and clears any error.
func (s *Store) SetPosts(items []posts.Post) {
	s.SetState(ReplacePosts(items), ReplaceError(""))
}

// SetCurrentPost replaces the open post and clears any error.
func (s *Store) SetCurrentPost(post *posts.Post) {
	s.SetState(ReplaceCurrentPost(post), ReplaceError(""))
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.SetState(ReplaceLoading(loading))
}

// SetError records an error message and clears the loading flag.
func (s *Store) SetError(msg string) {
	s.SetState(ReplaceError(msg), ReplaceLoading(false))
}

// SetSearchQuery sets filters.searchQuery.
func (s *Store) SetSearchQuery(query string) {
	_ = s.UpdateNested("filters.searchQuery", query)
}

// SetPublishedOnly sets filters.publishedOnly.
func (s *Store) SetPublishedOnly(publishedOnly bool) {
	_ = s.UpdateNested("filters.publishedOnly", publishedOnly)
}
