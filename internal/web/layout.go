package web

import "html/template"

type layoutData struct {
	Lang        string
	Title       string
	BlogTitle   string
	View        string
	Loading     template.HTML
	ShowLoading bool
	Error       template.HTML
	ShowError   bool
	Success     template.HTML
	ShowSuccess bool
	Recent      template.HTML
	Posts       template.HTML
	Pagination  template.HTML
	PostTitle   template.HTML
	PostMeta    template.HTML
	PostContent template.HTML
	Query       string
}

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    .success-message { animation: fade 0s 3s forwards; }
    @keyframes fade { to { visibility: hidden; height: 0; } }
  </style>
</head>
<body data-view="{{.View}}">
  <header><a href="/">{{.BlogTitle}}</a> <a href="/blog">/blog</a></header>
  <div id="loading-container"{{if not .ShowLoading}} hidden{{end}}>{{.Loading}}</div>
  <div id="error-container"{{if not .ShowError}} hidden{{end}}>{{.Error}}</div>
  <div id="success-container"{{if not .ShowSuccess}} hidden{{end}}>{{.Success}}</div>
  <main>
  {{- if eq .View "home"}}
    <section id="recent-posts-container">{{.Recent}}</section>
  {{- else if eq .View "list"}}
    <form method="get" action="/blog"><input type="search" name="q" value="{{.Query}}"></form>
    <section id="posts-container">{{.Posts}}</section>
    <div id="pagination">{{.Pagination}}</div>
  {{- else if eq .View "detail"}}
    <article>
      <h1 id="post-title">{{.PostTitle}}</h1>
      <div id="post-meta" class="post-meta">{{.PostMeta}}</div>
      <div id="post-content" class="post-content">{{.PostContent}}</div>
    </article>
  {{- end}}
  </main>
</body>
</html>
{{end}}`

var layout = template.Must(template.New("layout").Parse(layoutTemplate))
