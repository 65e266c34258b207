// Package posts is the client for the blog API's /posts resource.
//
// Each method validates identifiers locally (blank ids fail with ErrMissingID and
// non-UUID ids with ErrInvalidID, without a request being made), delegates to the
// request helper in package api with the matching HTTP verb, and turns failures
// into *Error values whose message is localized for the reader:
//
//	게시글을 찾을 수 없습니다                      (KindNotFound, API answered 404)
//	게시글 목록을 불러올 수 없습니다: HTTP error! status: 500
//
// Not-found is decided from the structured status code carried by *api.Error.
//
// Endpoints:
//
//	GET    {base}/posts/?limit=&skip=&published_only=
//	GET    {base}/posts/{id}
//	POST   {base}/posts/
//	PUT    {base}/posts/{id}
//	DELETE {base}/posts/{id}
package posts
