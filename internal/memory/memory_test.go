package memory

import (
	"testing"
	"time"
)

func openTestMemory(t *testing.T, retention time.Duration) *Memory {
	t.Helper()
	m, err := Open(":memory:", retention)
	if err != nil {
		t.Fatalf("failed to open memory db: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestMarkAndRecall(t *testing.T) {
	m := openTestMemory(t, time.Hour)

	url := "https://example.com/story"
	if m.RecentlyShown(url) {
		t.Error("unseen url reported as shown")
	}

	m.MarkShown(url)
	if !m.RecentlyShown(url) {
		t.Error("marked url not reported as shown")
	}
	if m.RecentlyShown("https://example.com/other") {
		t.Error("different url reported as shown")
	}
}

func TestMarkShownIsIdempotentPerURL(t *testing.T) {
	m := openTestMemory(t, time.Hour)

	url := "https://example.com/story"
	m.MarkShown(url)
	m.MarkShown(url)
	m.MarkShown(url)

	if got := m.Count(); got != 1 {
		t.Errorf("expected 1 row after repeated marks, got %d", got)
	}
}

func TestEmptyURLIgnored(t *testing.T) {
	m := openTestMemory(t, time.Hour)

	m.MarkShown("")
	if got := m.Count(); got != 0 {
		t.Errorf("empty url should not be stored, got %d rows", got)
	}
	if m.RecentlyShown("") {
		t.Error("empty url reported as shown")
	}
}

func TestRetentionExpiry(t *testing.T) {
	m := openTestMemory(t, 50*time.Millisecond)

	url := "https://example.com/old-story"
	m.MarkShown(url)
	if !m.RecentlyShown(url) {
		t.Fatal("freshly marked url not shown")
	}

	time.Sleep(80 * time.Millisecond)

	// Outside the retention window the entry no longer counts,
	// whether or not cleanup has physically deleted it yet.
	if m.RecentlyShown(url) {
		t.Error("url still reported shown past retention")
	}

	m.cleanup()
	if got := m.Count(); got != 0 {
		t.Errorf("expected cleanup to delete expired rows, got %d", got)
	}
}

func TestOpenSurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/memory.db"

	m, err := Open(path, time.Hour)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	m.MarkShown("https://example.com/persisted")
	m.Close()

	m2, err := Open(path, time.Hour)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer m2.Close()

	if !m2.RecentlyShown("https://example.com/persisted") {
		t.Error("shown record lost across reopen")
	}
}
