// Package web serves the blog pages over HTTP with gin.
//
// Each page request gets its own dom.Page, state.Store and page.Controller, so
// a request is one page view. The controller fills the document regions and the
// layout template places them in a full HTML page.
//
// Routes:
//
//	GET /  /index.html       recent posts
//	GET /blog  /blog.html    paged list (?page=N, ?q=search, ?all=1 for drafts)
//	GET /blog/:id            one post
//	GET /healthz             liveness
//	GET /metrics             Prometheus
//
// Unknown paths render the layout with a "page not found" banner and status 404.
// Fetch failures render with the error banner and status 200.
package web
