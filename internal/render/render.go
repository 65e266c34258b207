package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/posts"
)

// DefaultTruncateLength is the excerpt length used when CardOptions leaves it unset.
const DefaultTruncateLength = 150

// CardOptions controls PostCard.
type CardOptions struct {
	TruncateLength int
	ShowAuthor     bool
	Locale         i18n.Locale
}

// DefaultCardOptions returns a 150 character excerpt with the author shown.
func DefaultCardOptions() CardOptions {
	return CardOptions{TruncateLength: DefaultTruncateLength, ShowAuthor: true, Locale: i18n.Fallback()}
}

// ListOptions controls PostList. An empty EmptyMessage uses the localized
// "no posts" text.
type ListOptions struct {
	ContainerClass string
	EmptyMessage   string
	Card           CardOptions
}

// DefaultListOptions returns the "posts-list" container with default cards.
func DefaultListOptions() ListOptions {
	return ListOptions{ContainerClass: "posts-list", Card: DefaultCardOptions()}
}

type cardView struct {
	ID             string
	Title          string
	ShowAuthor     bool
	AuthorLabel    string
	Datetime       string
	Date           string
	Excerpt        string
	ReadLabel      string
	ReadAllLabel   string
	ReadMore       string
	PublishedLabel string
	SummaryLabel   string
}

func newCardView(p posts.Post, opts CardOptions) cardView {
	length := opts.TruncateLength
	if length <= 0 {
		length = DefaultTruncateLength
	}
	loc := opts.Locale
	return cardView{
		ID:             p.ID.String(),
		Title:          p.Title,
		ShowAuthor:     opts.ShowAuthor,
		AuthorLabel:    i18n.T(loc, i18n.MsgAuthor, p.Author),
		Datetime:       datetime(p.CreatedAt),
		Date:           FormatDate(p.CreatedAt, loc),
		Excerpt:        Truncate(p.Content, length),
		ReadLabel:      i18n.T(loc, i18n.MsgRead, p.Title),
		ReadAllLabel:   i18n.T(loc, i18n.MsgReadAll, p.Title),
		ReadMore:       i18n.T(loc, i18n.MsgReadMore),
		PublishedLabel: i18n.T(loc, i18n.MsgPublishedAt),
		SummaryLabel:   i18n.T(loc, i18n.MsgSummary),
	}
}

// PostCard renders one post as an article linking to /blog/{id}.
func PostCard(p posts.Post, opts CardOptions) template.HTML {
	return execute("card", newCardView(p, opts))
}

// PostList renders a feed of cards, or an empty-state block when there are no posts.
func PostList(items []posts.Post, opts ListOptions) template.HTML {
	class := strings.TrimSpace(opts.ContainerClass)
	if class == "" {
		class = "posts-list"
	}
	empty := opts.EmptyMessage
	if empty == "" {
		empty = i18n.T(opts.Card.Locale, i18n.MsgNoPosts)
	}
	cards := make([]cardView, 0, len(items))
	for _, p := range items {
		cards = append(cards, newCardView(p, opts.Card))
	}
	return execute("list", struct {
		Class     string
		FeedLabel string
		Empty     string
		Cards     []cardView
	}{class, i18n.T(opts.Card.Locale, i18n.MsgFeedLabel), empty, cards})
}

// PostMeta renders the author and date line of the detail page.
func PostMeta(p posts.Post, locale i18n.Locale) template.HTML {
	return execute("meta", struct {
		AuthorLabel    string
		Datetime       string
		Date           string
		PublishedLabel string
	}{
		i18n.T(locale, i18n.MsgAuthor, p.Author),
		datetime(p.CreatedAt),
		FormatDate(p.CreatedAt, locale),
		i18n.T(locale, i18n.MsgPublishedAt),
	})
}

type pageLink struct {
	Page   int
	Label  string
	Text   string
	Active bool
}

// Pagination renders page links for totalCount posts shown limit at a time.
// Nothing is rendered when everything fits on one page.
func Pagination(totalCount, currentPage, limit int, locale i18n.Locale) template.HTML {
	totalPages := posts.PageCount(totalCount, limit)
	if totalPages <= 1 {
		return ""
	}
	view := struct {
		Label string
		Prev  *pageLink
		Pages []pageLink
		Next  *pageLink
	}{Label: i18n.T(locale, i18n.MsgPagination)}

	if currentPage > 1 {
		view.Prev = &pageLink{Page: currentPage - 1, Label: i18n.T(locale, i18n.MsgPrevPage), Text: i18n.T(locale, i18n.MsgPrev)}
	}
	for i := 1; i <= totalPages; i++ {
		view.Pages = append(view.Pages, pageLink{Page: i, Label: i18n.T(locale, i18n.MsgPageN, i), Active: i == currentPage})
	}
	if currentPage < totalPages {
		view.Next = &pageLink{Page: currentPage + 1, Label: i18n.T(locale, i18n.MsgNextPage), Text: i18n.T(locale, i18n.MsgNext)}
	}
	return execute("pagination", view)
}

// ErrorBanner renders a dismissible alert for message.
func ErrorBanner(message string, locale i18n.Locale) template.HTML {
	return banner("error-message", message, locale)
}

// SuccessBanner renders a dismissible confirmation for message.
func SuccessBanner(message string, locale i18n.Locale) template.HTML {
	return banner("success-message", message, locale)
}

// LoadingBanner renders the spinner shown while a request is in flight.
func LoadingBanner(locale i18n.Locale) template.HTML {
	return execute("loading", i18n.T(locale, i18n.MsgLoading))
}

func banner(class, message string, locale i18n.Locale) template.HTML {
	return execute("banner", struct {
		Class   string
		Message string
		Close   string
	}{class, message, i18n.T(locale, i18n.MsgClose)})
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := components.ExecuteTemplate(&buf, name, data); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}
