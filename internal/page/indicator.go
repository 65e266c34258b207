package page

import (
	"sync"

	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/render"
)

// RequestIndicator shows the loading region of a document while at least one
// request is in flight. It satisfies api.LoadingIndicator.
type RequestIndicator struct {
	doc    dom.Document
	locale i18n.Locale

	mu       sync.Mutex
	inflight int
}

// NewRequestIndicator returns an indicator drawing into doc.
func NewRequestIndicator(doc dom.Document, locale i18n.Locale) *RequestIndicator {
	return &RequestIndicator{doc: doc, locale: locale}
}

// SetLoading counts a request in or out.
func (r *RequestIndicator) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loading {
		r.inflight++
		if r.inflight == 1 {
			r.doc.SetHTML(dom.Loading, render.LoadingBanner(r.locale))
			r.doc.Show(dom.Loading)
		}
		return
	}
	if r.inflight == 0 {
		return
	}
	r.inflight--
	if r.inflight == 0 {
		r.doc.Hide(dom.Loading)
	}
}
