package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Field is one extra key/value of a structured log line.
type Field struct {
	Key   string
	Value string
}

// Entry is a parsed log line. Lines that are not zerolog JSON keep only Raw
// and Message.
type Entry struct {
	Time       time.Time
	Level      zerolog.Level
	Message    string
	Fields     []Field
	Structured bool
	Raw        string
}

// Parse decodes one zerolog JSON line. Anything else becomes an unstructured
// entry with the line as its message and NoLevel.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Message: line, Level: zerolog.NoLevel}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return entry
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return entry
	}

	entry.Structured = true
	entry.Message = ""
	if v, ok := raw[zerolog.MessageFieldName].(string); ok {
		entry.Message = v
	}
	if v, ok := raw[zerolog.LevelFieldName].(string); ok {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			entry.Level = lvl
		}
	}
	if v, ok := raw[zerolog.TimestampFieldName].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			entry.Time = ts
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		switch k {
		case zerolog.MessageFieldName, zerolog.LevelFieldName, zerolog.TimestampFieldName:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry.Fields = append(entry.Fields, Field{Key: k, Value: fieldValue(raw[k])})
	}
	return entry
}

// ParseLines parses every line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out
}

// Tail reads and parses the last maxLines of the file at path.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines), nil
}

func fieldValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
