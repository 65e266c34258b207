// Package page drives the blog pages: it fetches posts, records them in the
// state store and renders them into a document.
//
// # Pages
//
// Resolve maps a path onto a View:
//
//	/  /index.html       home, LoadRecentPosts
//	/blog  /blog.html    list, LoadAllPosts (?page=N)
//	/blog/{id}           detail, LoadPost
//
// Anything else is ErrUnknownPage.
//
// # Load cycle
//
// Every load sets loading, fetches, writes the store, renders into the document
// and clears loading. On failure the store's error is set and the error banner is
// shown. LoadPost also shows a success banner that hides after three seconds.
//
// Each load takes a new generation number. A result that arrives after a newer
// load began is dropped without touching the store or the document, and the
// load returns ErrSuperseded.
package page
