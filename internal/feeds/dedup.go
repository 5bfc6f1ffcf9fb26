package feeds

import "strings"

// Key is the derived identity used to recognize the same story across
// feeds: the normalized link when one exists, otherwise the normalized
// title. Not persisted; recomputed per poll cycle.
type Key string

// KeyFor computes the dedup key for an item.
func KeyFor(item Item) Key {
	if u := normalizeLink(item.URL); u != "" {
		return Key(u)
	}
	return Key(normalizeTitle(item.Title))
}

// normalizeLink strips the scheme, "www." prefix, query string, and
// trailing slash so the same article URL from different feeds compares
// equal (NYT feeds disagree on tracking params).
func normalizeLink(u string) string {
	u = strings.TrimSpace(strings.ToLower(u))
	if idx := strings.Index(u, "://"); idx != -1 {
		u = u[idx+3:]
	}
	u = strings.TrimPrefix(u, "www.")
	if idx := strings.IndexAny(u, "?#"); idx != -1 {
		u = u[:idx]
	}
	return strings.TrimSuffix(u, "/")
}

func normalizeTitle(t string) string {
	return strings.Join(strings.Fields(strings.ToLower(t)), " ")
}

// Window remembers the dedup keys of a bounded number of recent poll
// cycles so republished or boosted stories are suppressed. Zero value is
// not usable; construct with NewWindow. Not safe for concurrent use —
// the poller is its only caller.
type Window struct {
	cycles  int
	history []map[Key]struct{}
}

// NewWindow creates a dedup window remembering the given number of
// prior cycles. cycles < 1 is treated as 1.
func NewWindow(cycles int) *Window {
	if cycles < 1 {
		cycles = 1
	}
	return &Window{cycles: cycles}
}

// Filter returns the items whose key has not been seen in the current
// cycle or the remembered prior cycles, and records the surviving keys
// as the newest cycle. Input order is preserved.
func (w *Window) Filter(items []Item) []Item {
	seen := make(map[Key]struct{}, len(items))
	out := make([]Item, 0, len(items))

	for _, item := range items {
		k := KeyFor(item)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		if w.seenBefore(k) {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}

	w.history = append(w.history, seen)
	if len(w.history) > w.cycles {
		w.history = w.history[len(w.history)-w.cycles:]
	}
	return out
}

func (w *Window) seenBefore(k Key) bool {
	for _, cycle := range w.history {
		if _, ok := cycle[k]; ok {
			return true
		}
	}
	return false
}

// Remembered returns the number of keys currently held across all
// remembered cycles.
func (w *Window) Remembered() int {
	n := 0
	for _, cycle := range w.history {
		n += len(cycle)
	}
	return n
}
