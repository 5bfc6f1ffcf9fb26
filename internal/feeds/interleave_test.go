package feeds

import "testing"

func TestInterleaveRoundRobin(t *testing.T) {
	items := []Item{
		item("A", "A1", "https://a.com/1"),
		item("A", "A2", "https://a.com/2"),
		item("A", "A3", "https://a.com/3"),
		item("B", "B1", "https://b.com/1"),
		item("B", "B2", "https://b.com/2"),
		item("C", "C1", "https://c.com/1"),
	}

	out := Interleave(items, 0)

	want := []string{"A1", "B1", "C1", "A2", "B2", "A3"}
	if len(out) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(out))
	}
	for i, title := range want {
		if out[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, out[i].Title)
		}
	}
}

func TestInterleaveCapsAtLimit(t *testing.T) {
	items := []Item{
		item("A", "A1", "https://a.com/1"),
		item("A", "A2", "https://a.com/2"),
		item("B", "B1", "https://b.com/1"),
		item("B", "B2", "https://b.com/2"),
	}

	out := Interleave(items, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	// Cap applies after interleaving, so both sources are represented
	if out[0].Title != "A1" || out[1].Title != "B1" || out[2].Title != "A2" {
		t.Errorf("unexpected order: %s %s %s", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestInterleaveEmpty(t *testing.T) {
	if out := Interleave(nil, 10); len(out) != 0 {
		t.Errorf("expected empty result, got %d items", len(out))
	}
}

func TestInterleaveSingleSource(t *testing.T) {
	items := []Item{
		item("A", "A1", "https://a.com/1"),
		item("A", "A2", "https://a.com/2"),
	}
	out := Interleave(items, 0)
	if len(out) != 2 || out[0].Title != "A1" || out[1].Title != "A2" {
		t.Errorf("single source order not preserved: %+v", out)
	}
}
