// Package render turns posts and page state into HTML fragments.
//
// Every component is an html/template, so titles, authors, excerpts and
// messages are escaped for the context they land in. Only the fixed markup of
// the templates is trusted. Components return template.HTML so they can be
// placed into a dom.Document or a larger template without being escaped twice.
//
// Labels and fixed texts come from internal/i18n; dates use FormatDate.
package render
