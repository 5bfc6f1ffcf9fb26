package ui

import (
	"strings"
	"testing"

	"github.com/abelbrown/tickerd/internal/feeds"
)

// plainItem has no category, author, or timestamp, so its marquee text
// is exactly its title.
func plainItem(id, title string) feeds.Item {
	return feeds.Item{ID: id, Title: title, URL: "https://example.com/" + id}
}

func TestStripAdvanceWrapsToNextSegment(t *testing.T) {
	s := newStrip([]feeds.Item{
		plainItem("1", "AAAA"), // width 4 + gap 2 = 6
		plainItem("2", "BBBB"),
	}, 2)

	s.advance(3)
	if s.cur != 0 || s.offset != 3 {
		t.Errorf("after 3 columns: cur=%d offset=%d", s.cur, s.offset)
	}

	s.advance(3) // total 6: exactly one segment consumed
	if s.cur != 1 || s.offset != 0 {
		t.Errorf("after 6 columns: cur=%d offset=%d", s.cur, s.offset)
	}

	s.advance(6) // wraps back around the ring
	if s.cur != 0 || s.offset != 0 {
		t.Errorf("after full ring: cur=%d offset=%d", s.cur, s.offset)
	}
}

func TestStripAdvanceLargeStepCrossesMultipleSegments(t *testing.T) {
	s := newStrip([]feeds.Item{
		plainItem("1", "AA"), // width 2+2
		plainItem("2", "BB"),
		plainItem("3", "CC"),
	}, 2)

	s.advance(9) // 4+4+1
	if s.cur != 2 || s.offset != 1 {
		t.Errorf("cur=%d offset=%d, want cur=2 offset=1", s.cur, s.offset)
	}
}

func TestStripAdoptPreservesPositionWhenItemSurvives(t *testing.T) {
	s := newStrip([]feeds.Item{
		plainItem("1", "AAAA"),
		plainItem("2", "BBBB"),
	}, 2)
	s.advance(7) // into segment 2
	if s.cur != 1 || s.offset != 1 {
		t.Fatalf("setup: cur=%d offset=%d", s.cur, s.offset)
	}

	// New batch reorders and adds items; the on-screen one survives.
	s.adopt([]feeds.Item{
		plainItem("3", "CCCC"),
		plainItem("2", "BBBB"),
		plainItem("4", "DDDD"),
	})

	if got := s.current(); got == nil || got.ID != "2" {
		t.Fatalf("current item changed after adopt: %+v", got)
	}
	if s.offset != 1 {
		t.Errorf("offset not preserved: %d", s.offset)
	}
	if len(s.segs) != 3 {
		t.Errorf("expected 3 segments, got %d", len(s.segs))
	}
}

func TestStripAdoptKeepsDroppedItemInFront(t *testing.T) {
	s := newStrip([]feeds.Item{plainItem("1", "AAAA")}, 2)
	s.advance(2)

	s.adopt([]feeds.Item{plainItem("9", "ZZZZ")})

	// The old headline finishes scrolling out before the new ring.
	if got := s.current(); got == nil || got.ID != "1" {
		t.Fatalf("expected dropped item kept at front, got %+v", got)
	}
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
	if len(s.segs) != 2 {
		t.Errorf("expected 2 segments, got %d", len(s.segs))
	}

	// Once it scrolls past, the new batch takes over.
	s.advance(4) // remaining 2 text cols + gap 2
	if got := s.current(); got == nil || got.ID != "9" {
		t.Errorf("expected new item after scroll-out, got %+v", got)
	}
}

func TestStripAdoptIntoEmpty(t *testing.T) {
	s := newStrip(nil, 2)
	if !s.empty() {
		t.Fatal("expected empty strip")
	}
	s.adopt([]feeds.Item{plainItem("1", "AAAA")})
	if s.empty() || s.current().ID != "1" {
		t.Error("first batch not adopted")
	}
}

func TestStripVisibleLayout(t *testing.T) {
	s := newStrip([]feeds.Item{
		plainItem("1", "AAAA"),
		plainItem("2", "BBBB"),
	}, 2)
	s.advance(2) // half of the first headline gone

	var b strings.Builder
	for _, sp := range s.visible(10) {
		b.WriteString(sp.text)
	}
	// "AA" + "  " + "BBBB" + "  " = exactly 10 columns
	if got := b.String(); got != "AA  BBBB  " {
		t.Errorf("visible = %q", got)
	}
}

func TestStripVisibleWrapsAroundShortRing(t *testing.T) {
	s := newStrip([]feeds.Item{plainItem("1", "AB")}, 2)

	var b strings.Builder
	for _, sp := range s.visible(9) {
		b.WriteString(sp.text)
	}
	if got := b.String(); got != "AB  AB  A" {
		t.Errorf("visible = %q", got)
	}
}

func TestStripItemAt(t *testing.T) {
	s := newStrip([]feeds.Item{
		plainItem("1", "AAAA"),
		plainItem("2", "BBBB"),
	}, 2)

	// Columns 0-3 are headline 1, 4-5 gap, 6-9 headline 2.
	if got := s.itemAt(0, 40); got == nil || got.ID != "1" {
		t.Errorf("itemAt(0) = %+v", got)
	}
	if got := s.itemAt(4, 40); got != nil {
		t.Errorf("itemAt(4) in gap = %+v, want nil", got)
	}
	if got := s.itemAt(7, 40); got == nil || got.ID != "2" {
		t.Errorf("itemAt(7) = %+v", got)
	}
}

func TestStripUnshownMarksOnce(t *testing.T) {
	s := newStrip([]feeds.Item{
		plainItem("1", "AAAA"),
		plainItem("2", "BBBB"),
	}, 2)

	first := s.unshown(40)
	if len(first) != 2 {
		t.Fatalf("expected both items new, got %d", len(first))
	}
	if again := s.unshown(40); len(again) != 0 {
		t.Errorf("expected no repeats, got %d", len(again))
	}
}

func TestStripSkipsEmptyTitles(t *testing.T) {
	s := newStrip([]feeds.Item{
		{ID: "1", Title: "   "},
		plainItem("2", "Real headline"),
	}, 2)
	if len(s.segs) != 1 {
		t.Errorf("expected blank headline dropped, got %d segments", len(s.segs))
	}
}
