package i18n

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Locale
	}{
		{"", LocaleKo},
		{"ko", LocaleKo},
		{"ko-KR", LocaleKo},
		{"en", LocaleEn},
		{"en-US,en;q=0.9", LocaleEn},
		{"fr-FR,en;q=0.8", LocaleEn},
		{"not a tag!!", LocaleKo},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := Parse(tc.in); got != tc.want {
				t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestT_FormatsAndFallsBack(t *testing.T) {
	if got := T(LocaleKo, MsgNotFound); got != "게시글을 찾을 수 없습니다" {
		t.Fatalf("T(ko, not_found) = %q", got)
	}
	if got := T(LocaleEn, MsgListFailed, "boom"); got != "could not load posts: boom" {
		t.Fatalf("T(en, list_failed) = %q", got)
	}
	if got := T(Locale("ja"), MsgClose); got != "닫기" {
		t.Fatalf("T(ja, close) = %q, want Korean fallback", got)
	}
	if got := T(LocaleEn, "missing.key"); got != "missing.key" {
		t.Fatalf("T(en, missing) = %q, want key", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalog[LocaleKo] {
		if _, ok := catalog[LocaleEn][key]; !ok {
			t.Fatalf("key %q missing from en catalog", key)
		}
	}
	if len(catalog[LocaleKo]) != len(catalog[LocaleEn]) {
		t.Fatalf("catalog sizes differ: ko=%d en=%d", len(catalog[LocaleKo]), len(catalog[LocaleEn]))
	}
}
