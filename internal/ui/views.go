package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/blogfront/internal/dom"
	"github.com/five82/blogfront/internal/i18n"
	"github.com/five82/blogfront/internal/logtail"
	"github.com/five82/blogfront/internal/posts"
	"github.com/five82/blogfront/internal/render"
)

const (
	recentExcerpt = 150
	listExcerpt   = 200
	cardLines     = 4 // title, meta, excerpt, gap
)

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(m.renderBody()),
		m.renderStatus(),
		m.renderFooter(),
	)
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := bar{bg: lipgloss.Color(m.theme.Surface)}

	parts := []string{
		bg.text("blogfront", styles.Logo),
		bg.text(m.screenTitle(), styles.Text.Bold(true)),
	}
	if m.screen == screenList {
		pg := m.snapshot.Pagination
		parts = append(parts, bg.text(fmt.Sprintf("%d/%d", pg.CurrentPage, max(pg.TotalPages, 1)), styles.MutedText))
	}
	if !m.snapshot.Filters.PublishedOnly {
		parts = append(parts, bg.text("drafts", styles.WarningText))
	}
	if q := m.snapshot.Filters.SearchQuery; q != "" {
		parts = append(parts, bg.text("/"+q, styles.InfoText))
	}
	parts = append(parts, bg.text(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.join(parts, "  "))
}

// bar styles header segments on a shared background so the gaps between them
// are not left unpainted. See https://github.com/charmbracelet/lipgloss/discussions/78
type bar struct {
	bg lipgloss.Color
}

func (b bar) text(s string, style lipgloss.Style) string {
	return style.Background(b.bg).Render(s)
}

func (b bar) join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

func (m Model) screenTitle() string {
	switch m.screen {
	case screenList:
		return i18n.T(m.locale, i18n.MsgFeedLabel)
	case screenDetail:
		if title := m.doc.Title(); title != "" {
			return title
		}
		return i18n.T(m.locale, i18n.MsgBlogTitle)
	case screenLogs:
		return "Logs"
	default:
		return i18n.T(m.locale, i18n.MsgBlogTitle)
	}
}

func (m Model) renderBody() string {
	switch m.screen {
	case screenDetail:
		if m.snapshot.CurrentPost == nil {
			return m.renderPlaceholder()
		}
		return m.detail.View()
	case screenLogs:
		if m.logErr != nil {
			return m.theme.Styles().DangerText.Render(m.logErr.Error())
		}
		if len(m.entries) == 0 {
			return m.theme.Styles().MutedText.Render("No log lines yet.")
		}
		return m.logs.View()
	default:
		return m.renderPosts()
	}
}

func (m Model) renderPlaceholder() string {
	styles := m.theme.Styles()
	if m.snapshot.Loading {
		return m.spinner.View() + " " + styles.MutedText.Render(i18n.T(m.locale, i18n.MsgLoading))
	}
	return ""
}

func (m Model) renderPosts() string {
	styles := m.theme.Styles()
	visible := m.snapshot.VisiblePosts()
	if len(visible) == 0 {
		if m.snapshot.Loading {
			return m.renderPlaceholder()
		}
		empty := i18n.MsgNoPosts
		if m.screen == screenList {
			empty = i18n.MsgNoPostsYet
		}
		return styles.MutedText.Render(i18n.T(m.locale, empty))
	}

	height := m.bodyHeight()
	pager := m.renderPager()
	if pager != "" {
		height--
	}
	count := max(height/cardLines, 1)
	start := 0
	if m.selected >= count {
		start = m.selected - count + 1
	}
	end := min(start+count, len(visible))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(visible[i], i == m.selected))
		b.WriteString("\n")
	}
	out := strings.TrimRight(b.String(), "\n")
	if pager != "" {
		out = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Height(height).Render(out),
			pager,
		)
	}
	return out
}

func (m Model) renderCard(p posts.Post, selected bool) string {
	styles := m.theme.Styles()

	title := styles.Title.Render(p.Title)
	if selected {
		title = styles.Selected.Render("> " + p.Title)
	}

	meta := []string{render.FormatDate(p.CreatedAt, m.locale)}
	excerpt := recentExcerpt
	if m.screen == screenList {
		excerpt = listExcerpt
		if p.Author != "" {
			meta = append(meta, i18n.T(m.locale, i18n.MsgAuthor, p.Author))
		}
	}
	line := styles.MutedText.Render(strings.Join(meta, " · "))
	if !p.Published {
		line += " " + styles.Draft.Render("draft")
	}

	body := strings.Join(strings.Fields(render.Truncate(p.Content, excerpt)), " ")
	body = lipgloss.NewStyle().Width(max(m.width-2, 10)).MaxHeight(1).Render(body)

	return strings.Join([]string{title, line, styles.FaintText.Render(body), ""}, "\n")
}

// renderPager renders the list pagination line, or "" for a single page. A
// search only filters the loaded page, so the pager is hidden while one is active.
func (m Model) renderPager() string {
	pg := m.snapshot.Pagination
	if m.screen != screenList || pg.TotalPages <= 1 || m.snapshot.Filters.SearchQuery != "" {
		return ""
	}
	styles := m.theme.Styles()
	prev := styles.FaintText.Render(i18n.T(m.locale, i18n.MsgPrev))
	if pg.CurrentPage > 1 {
		prev = styles.AccentText.Render(i18n.T(m.locale, i18n.MsgPrev))
	}
	next := styles.FaintText.Render(i18n.T(m.locale, i18n.MsgNext))
	if pg.CurrentPage < pg.TotalPages {
		next = styles.AccentText.Render(i18n.T(m.locale, i18n.MsgNext))
	}
	current := styles.Text.Render(i18n.T(m.locale, i18n.MsgPageN, pg.CurrentPage))
	return fmt.Sprintf("%s  %s / %d  %s", prev, current, pg.TotalPages, next)
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	switch {
	case m.search.Focused():
		return m.search.View()
	case m.snapshot.Loading || m.doc.Visible(dom.Loading):
		return m.spinner.View() + " " + styles.InfoText.Render(i18n.T(m.locale, i18n.MsgLoading))
	case m.snapshot.HasError():
		return styles.DangerText.Render(m.snapshot.Error)
	case m.doc.Visible(dom.Success):
		return styles.SuccessText.Render(i18n.T(m.locale, i18n.MsgPostLoaded))
	case !m.lastUpdated.IsZero():
		return styles.FaintText.Render("updated " + m.lastUpdated.Format("15:04:05"))
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys))
}

// refreshDetail re-renders the open post into the detail viewport.
func (m *Model) refreshDetail() {
	if !m.ready && m.detail.Width == 0 {
		return
	}
	p := m.snapshot.CurrentPost
	if p == nil {
		m.detail.SetContent("")
		return
	}
	styles := m.theme.Styles()
	width := max(m.width-2, 10)

	meta := []string{render.FormatDate(p.CreatedAt, m.locale)}
	if p.Author != "" {
		meta = append(meta, i18n.T(m.locale, i18n.MsgAuthor, p.Author))
	}
	header := styles.Title.Render(p.Title) + "\n" + styles.MutedText.Render(strings.Join(meta, " · "))
	if !p.Published {
		header += " " + styles.Draft.Render("draft")
	}
	body := lipgloss.NewStyle().Width(width).Render(p.Content)
	m.detail.SetContent(header + "\n\n" + styles.Text.Render(body))
}

// refreshLogs renders parsed log entries into the logs viewport and follows the tail.
func (m *Model) refreshLogs() {
	if !m.ready && m.logs.Width == 0 {
		return
	}
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, m.formatEntry(e))
	}
	m.logs.SetContent(strings.Join(lines, "\n"))
	m.logs.GotoBottom()
}

func (m Model) formatEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if !e.Structured {
		return styles.Text.Render(e.Raw)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Format("15:04:05")))
		b.WriteString(" ")
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.LevelColor(e.Level))).
		Width(6).
		Render(levelLabel(e.Level)))
	b.WriteString(styles.Text.Render(e.Message))
	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(f.Key + "=" + f.Value))
	}
	return b.String()
}

func levelLabel(level zerolog.Level) string {
	if level == zerolog.NoLevel {
		return "-"
	}
	return strings.ToUpper(level.String())
}
