// Package dom models the page regions that controllers render into.
package dom

import (
	"html"
	"html/template"
	"sync"
)

// Region identifiers used by the blog pages.
const (
	RecentPosts = "recent-posts-container"
	PostsList   = "posts-container"
	PostTitle   = "post-title"
	PostContent = "post-content"
	PostMeta    = "post-meta"
	Pagination  = "pagination"
	Loading     = "loading-container"
	Errors      = "error-container"
	Success     = "success-container"
)

// Document is the surface a controller writes to. Operations on an unknown
// region are ignored by implementations that only know a fixed set of regions.
type Document interface {
	SetHTML(id string, content template.HTML)
	SetText(id string, text string)
	Show(id string)
	Hide(id string)
	SetTitle(title string)
}

type region struct {
	content template.HTML
	visible bool
	set     bool
}

// Page is an in-memory Document. It is safe for concurrent use.
type Page struct {
	mu      sync.RWMutex
	regions map[string]*region
	title   string
	strict  bool
}

// NewPage returns a Page. When ids are given only those regions exist and writes
// to any other id are dropped, mirroring a document without that element.
// With no ids every region exists.
func NewPage(ids ...string) *Page {
	p := &Page{regions: make(map[string]*region)}
	for _, id := range ids {
		p.regions[id] = &region{}
	}
	p.strict = len(ids) > 0
	return p
}

var _ Document = (*Page)(nil)

func (p *Page) lookupLocked(id string) *region {
	r, ok := p.regions[id]
	if !ok {
		if p.strict {
			return nil
		}
		r = &region{}
		p.regions[id] = r
	}
	return r
}

// SetHTML replaces the region's content with trusted markup.
func (p *Page) SetHTML(id string, content template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r := p.lookupLocked(id); r != nil {
		r.content = content
		r.set = true
	}
}

// SetText replaces the region's content with escaped text.
func (p *Page) SetText(id string, text string) {
	p.SetHTML(id, template.HTML(html.EscapeString(text)))
}

// Show makes the region visible.
func (p *Page) Show(id string) { p.setVisible(id, true) }

// Hide makes the region invisible. Its content is kept.
func (p *Page) Hide(id string) { p.setVisible(id, false) }

func (p *Page) setVisible(id string, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r := p.lookupLocked(id); r != nil {
		r.visible = visible
	}
}

// SetTitle sets the document title.
func (p *Page) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// HTML returns the region's content, or "" for an unknown region.
func (p *Page) HTML(id string) template.HTML {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if r, ok := p.regions[id]; ok {
		return r.content
	}
	return ""
}

// Visible reports whether the region was shown and not hidden since.
func (p *Page) Visible(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.regions[id]
	return ok && r.visible
}

// Written reports whether anything was ever rendered into the region.
func (p *Page) Written(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.regions[id]
	return ok && r.set
}

// Title returns the document title.
func (p *Page) Title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.title
}
