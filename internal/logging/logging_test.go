package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":         zerolog.InfoLevel,
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"nonsense": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONIncludesServiceAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Str("path", "/blog").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if entry["service"] != "blogfront" || entry["message"] != "shown" || entry["path"] != "/blog" {
		t.Fatalf("entry = %#v, want service/message/path fields", entry)
	}
}

func TestNew_ConsoleWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "console", Output: &buf})
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("console output = %q, want it to contain hello", buf.String())
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("console output = %q, want no color codes for non-terminal", buf.String())
	}
}

func TestOpenFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "blogfront.log")
	file, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	if _, err := file.WriteString("{}\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
}

func TestOpenFile_EmptyPathErrors(t *testing.T) {
	if _, err := OpenFile("  "); err == nil {
		t.Fatalf("OpenFile returned nil error, want error")
	}
}
