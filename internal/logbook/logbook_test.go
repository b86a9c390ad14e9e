package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines := book.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestMinLevelFiltersInfo(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.SetMinLevel(LevelWarn)
	book.Info("quiet")
	book.Warn("loud")
	lines := book.Tail(10)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "loud") {
		t.Fatalf("line = %q, want warn entry", lines[0])
	}
}

func TestRequestLogsFailuresAsWarn(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Request("GET", "/cookies", 200, 12*time.Millisecond)
	book.Request("POST", "/cookies", 500, 40*time.Millisecond)
	lines := book.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "WARN") {
		t.Fatalf("500 response must log as WARN, got %q", lines[1])
	}
}
