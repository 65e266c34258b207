// Package i18n holds the user-facing strings of blogfront in Korean and English.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale represents a supported language.
type Locale string

const (
	LocaleKo Locale = "ko"
	LocaleEn Locale = "en"
)

// Message keys.
const (
	MsgListFailed     = "posts.list_failed"
	MsgGetFailed      = "posts.get_failed"
	MsgNotFound       = "posts.not_found"
	MsgCreateFailed   = "posts.create_failed"
	MsgUpdateFailed   = "posts.update_failed"
	MsgDeleteFailed   = "posts.delete_failed"
	MsgIDRequired     = "posts.id_required"
	MsgIDInvalid      = "posts.id_invalid"
	MsgPostLoaded     = "page.post_loaded"
	MsgLoading        = "page.loading"
	MsgClose          = "page.close"
	MsgNoPosts        = "list.empty"
	MsgNoPostsYet     = "list.empty_yet"
	MsgFeedLabel      = "list.feed_label"
	MsgAuthor         = "card.author"
	MsgPublishedAt    = "card.published_at"
	MsgSummary        = "card.summary"
	MsgRead           = "card.read"
	MsgReadAll        = "card.read_all"
	MsgReadMore       = "card.read_more"
	MsgPagination     = "pagination.label"
	MsgPrevPage       = "pagination.prev_label"
	MsgPrev           = "pagination.prev"
	MsgNextPage       = "pagination.next_label"
	MsgNext           = "pagination.next"
	MsgPageN          = "pagination.page"
	MsgBlogTitle      = "site.title"
	MsgDocTitleSuffix = "site.title_suffix"
	MsgPageNotFound   = "site.page_not_found"
)

var catalog = map[Locale]map[string]string{
	LocaleKo: {
		MsgListFailed:     "게시글 목록을 불러올 수 없습니다: %s",
		MsgGetFailed:      "게시글을 불러올 수 없습니다: %s",
		MsgNotFound:       "게시글을 찾을 수 없습니다",
		MsgCreateFailed:   "게시글을 생성할 수 없습니다: %s",
		MsgUpdateFailed:   "게시글을 수정할 수 없습니다: %s",
		MsgDeleteFailed:   "게시글을 삭제할 수 없습니다: %s",
		MsgIDRequired:     "게시글 ID가 필요합니다",
		MsgIDInvalid:      "게시글 ID 형식이 올바르지 않습니다: %s",
		MsgPostLoaded:     "게시글을 불러왔습니다",
		MsgLoading:        "로딩 중...",
		MsgClose:          "닫기",
		MsgNoPosts:        "게시글이 없습니다.",
		MsgNoPostsYet:     "아직 게시글이 없습니다.",
		MsgFeedLabel:      "게시글 목록",
		MsgAuthor:         "작성자: %s",
		MsgPublishedAt:    "작성일",
		MsgSummary:        "요약",
		MsgRead:           "%s 읽기",
		MsgReadAll:        "%s 전체 읽기",
		MsgReadMore:       "더 읽기 →",
		MsgPagination:     "페이지네이션",
		MsgPrevPage:       "이전 페이지",
		MsgPrev:           "← 이전",
		MsgNextPage:       "다음 페이지",
		MsgNext:           "다음 →",
		MsgPageN:          "페이지 %d",
		MsgBlogTitle:      "블로그",
		MsgDocTitleSuffix: "%s | 블로그",
		MsgPageNotFound:   "페이지를 찾을 수 없습니다",
	},
	LocaleEn: {
		MsgListFailed:     "could not load posts: %s",
		MsgGetFailed:      "could not load post: %s",
		MsgNotFound:       "post not found",
		MsgCreateFailed:   "could not create post: %s",
		MsgUpdateFailed:   "could not update post: %s",
		MsgDeleteFailed:   "could not delete post: %s",
		MsgIDRequired:     "post id is required",
		MsgIDInvalid:      "post id is malformed: %s",
		MsgPostLoaded:     "Post loaded",
		MsgLoading:        "Loading...",
		MsgClose:          "Close",
		MsgNoPosts:        "No posts.",
		MsgNoPostsYet:     "No posts yet.",
		MsgFeedLabel:      "Posts",
		MsgAuthor:         "By %s",
		MsgPublishedAt:    "Published",
		MsgSummary:        "Summary",
		MsgRead:           "Read %s",
		MsgReadAll:        "Read all of %s",
		MsgReadMore:       "Read more →",
		MsgPagination:     "Pagination",
		MsgPrevPage:       "Previous page",
		MsgPrev:           "← Previous",
		MsgNextPage:       "Next page",
		MsgNext:           "Next →",
		MsgPageN:          "Page %d",
		MsgBlogTitle:      "Blog",
		MsgDocTitleSuffix: "%s | Blog",
		MsgPageNotFound:   "Page not found",
	},
}

const fallback = LocaleKo

var (
	supported = []language.Tag{language.Korean, language.English}
	matcher   = language.NewMatcher(supported)
)

// Parse maps a BCP 47 tag or Accept-Language value ("en-US", "ko-KR,en;q=0.5")
// onto a supported locale. Unknown input yields the fallback locale.
func Parse(value string) Locale {
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return Fallback()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Fallback()
	}
	if supported[idx] == language.English {
		return LocaleEn
	}
	return LocaleKo
}

// Fallback returns the locale used for unknown tags and missing keys.
func Fallback() Locale {
	return fallback
}

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	if l == LocaleEn {
		return language.English
	}
	return language.Korean
}

// T translates key for the locale, formatting args when present.
// Missing keys fall back to the fallback locale, then to the key itself.
func T(locale Locale, key string, args ...any) string {
	msg, ok := catalog[locale][key]
	if !ok {
		msg, ok = catalog[Fallback()][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
