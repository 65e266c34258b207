package ui

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames len = %d, want 3", len(names))
	}
	for _, name := range names {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"unknown":  "Nightfox",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown) = %q, want Nightfox", got)
	}
}

func TestLevelColor(t *testing.T) {
	th := GetTheme("Slate")
	cases := []struct {
		level zerolog.Level
		want  string
	}{
		{zerolog.DebugLevel, th.Faint},
		{zerolog.InfoLevel, th.Info},
		{zerolog.WarnLevel, th.Warning},
		{zerolog.ErrorLevel, th.Danger},
		{zerolog.NoLevel, th.Muted},
	}
	for _, tc := range cases {
		if got := th.LevelColor(tc.level); got != tc.want {
			t.Fatalf("LevelColor(%v) = %q, want %q", tc.level, got, tc.want)
		}
	}
}
