package render

import "html/template"

const componentTemplates = `
{{define "card"}}<article class="post-card" role="article" aria-labelledby="post-{{.ID}}">
  <h4 id="post-{{.ID}}">
    <a href="/blog/{{.ID}}" aria-label="{{.ReadLabel}}">{{.Title}}</a>
  </h4>
  <div class="post-meta">
    {{- if .ShowAuthor}}
    <span class="author">{{.AuthorLabel}}</span>
    {{- end}}
    <time datetime="{{.Datetime}}" aria-label="{{.PublishedLabel}}">{{.Date}}</time>
  </div>
  <p class="post-excerpt" aria-label="{{.SummaryLabel}}">{{.Excerpt}}</p>
  <a href="/blog/{{.ID}}" class="read-more" aria-label="{{.ReadAllLabel}}">{{.ReadMore}}</a>
</article>
{{end}}

{{define "list"}}{{if .Cards -}}
<div class="{{.Class}}" role="feed" aria-label="{{.FeedLabel}}">
{{range .Cards}}{{template "card" .}}{{end -}}
</div>
{{- else -}}
<div class="{{.Class}} empty">
  <p>{{.Empty}}</p>
</div>
{{- end}}{{end}}

{{define "meta"}}<span class="author">{{.AuthorLabel}}</span>
<time datetime="{{.Datetime}}" aria-label="{{.PublishedLabel}}">{{.Date}}</time>{{end}}

{{define "pagination"}}<nav aria-label="{{.Label}}"><ul class="pagination">
{{- with .Prev}}
  <li><a href="?page={{.Page}}" aria-label="{{.Label}}">{{.Text}}</a></li>
{{- end}}
{{- range .Pages}}
  <li><a href="?page={{.Page}}"{{if .Active}} aria-current="page" class="active"{{end}} aria-label="{{.Label}}">{{.Page}}</a></li>
{{- end}}
{{- with .Next}}
  <li><a href="?page={{.Page}}" aria-label="{{.Label}}">{{.Text}}</a></li>
{{- end}}
</ul></nav>{{end}}

{{define "banner"}}<div class="{{.Class}}" role="alert">
  <span>{{.Message}}</span>
  <button type="button" onclick="this.parentElement.remove()" aria-label="{{.Close}}">×</button>
</div>{{end}}

{{define "loading"}}<div class="loading-spinner" role="status">
  <span class="spinner"></span>
  <span class="loading-text">{{.}}</span>
</div>{{end}}
`

var components = template.Must(template.New("components").Parse(componentTemplates))
