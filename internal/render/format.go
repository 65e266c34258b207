package render

import (
	"fmt"
	"time"

	"github.com/five82/blogfront/internal/i18n"
)

const ellipsis = "..."

// Truncate shortens text to at most length characters and appends "..." when
// anything was cut. Length counts runes, so multi-byte text is never split.
func Truncate(text string, length int) string {
	if length < 0 {
		length = 0
	}
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + ellipsis
}

// FormatDate renders the calendar date of t the way the locale writes short
// dates: "2024. 1. 15." for Korean, "1/15/2024" for English. The zero time
// renders as an empty string.
func FormatDate(t time.Time, locale i18n.Locale) string {
	if t.IsZero() {
		return ""
	}
	y, m, d := t.Date()
	if locale == i18n.LocaleEn {
		return fmt.Sprintf("%d/%d/%d", int(m), d, y)
	}
	return fmt.Sprintf("%d. %d. %d.", y, int(m), d)
}

func datetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
