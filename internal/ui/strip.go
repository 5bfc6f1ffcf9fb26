package ui

import "github.com/abelbrown/tickerd/internal/feeds"

// segment is one headline laid out on the marquee.
type segment struct {
	item  feeds.Item
	runes []rune
	shown bool // reported to cross-session memory
}

// span is a visible slice of the marquee: either part of a headline
// (seg >= 0) or the gap between headlines (seg == -1).
type span struct {
	start int // column on screen
	text  string
	seg   int
}

// strip owns the marquee scroll state: an ordered ring of headline
// segments, the index of the leftmost one, and how many columns of it
// have scrolled off screen. Mutated only by the display loop.
type strip struct {
	segs   []segment
	gap    int
	cur    int
	offset int
}

func newStrip(items []feeds.Item, gap int) *strip {
	if gap < 1 {
		gap = 1
	}
	s := &strip{gap: gap}
	s.segs = buildSegments(items)
	return s
}

func buildSegments(items []feeds.Item) []segment {
	segs := make([]segment, 0, len(items))
	for _, item := range items {
		text := headlineText(item)
		if text == "" {
			continue
		}
		segs = append(segs, segment{item: item, runes: []rune(text)})
	}
	return segs
}

func (s *strip) empty() bool { return len(s.segs) == 0 }

// width of a segment including its trailing gap.
func (s *strip) segTotal(i int) int {
	return len(s.segs[i].runes) + s.gap
}

// current returns the leftmost headline, the one a keyboard open acts on.
func (s *strip) current() *feeds.Item {
	if s.empty() {
		return nil
	}
	return &s.segs[s.cur].item
}

// advance scrolls the marquee left by step columns, moving to the next
// headline once the current one (and its gap) has fully passed.
func (s *strip) advance(step int) {
	if s.empty() || step <= 0 {
		return
	}
	s.offset += step
	for s.offset >= s.segTotal(s.cur) {
		s.offset -= s.segTotal(s.cur)
		s.cur = (s.cur + 1) % len(s.segs)
	}
}

// adopt replaces the headline ring with a new batch while preserving the
// scroll position. If the on-screen headline survives in the new batch
// the ring continues from it; otherwise it is kept transiently at the
// head so the animation does not jump.
func (s *strip) adopt(items []feeds.Item) {
	if s.empty() {
		s.segs = buildSegments(items)
		s.cur, s.offset = 0, 0
		return
	}

	old := s.segs[s.cur]
	segs := buildSegments(items)

	for i := range segs {
		if segs[i].item.ID == old.item.ID {
			segs[i].shown = old.shown
			s.segs = segs
			s.cur = i
			// offset stays; clamp in case the text shrank
			if s.offset >= s.segTotal(s.cur) {
				s.offset = 0
			}
			return
		}
	}

	// Current headline dropped from the batch: let it finish scrolling
	// out ahead of the new ring.
	s.segs = append([]segment{old}, segs...)
	s.cur = 0
	if s.offset >= s.segTotal(0) {
		s.offset = 0
	}
}

// visible lays out the marquee for a viewport of the given width,
// wrapping around the ring as needed. Returns the spans left to right.
func (s *strip) visible(width int) []span {
	if s.empty() || width <= 0 {
		return nil
	}

	var spans []span
	col := 0
	seg := s.cur
	skip := s.offset

	for col < width {
		text := s.segs[seg].runes
		// Headline part
		if skip < len(text) {
			part := text[skip:]
			if col+len(part) > width {
				part = part[:width-col]
			}
			spans = append(spans, span{start: col, text: string(part), seg: seg})
			col += len(part)
		}
		// Gap part
		gapSkip := 0
		if skip > len(text) {
			gapSkip = skip - len(text)
		}
		if col < width {
			gapLen := s.gap - gapSkip
			if gapLen > 0 {
				if col+gapLen > width {
					gapLen = width - col
				}
				spans = append(spans, span{start: col, text: spaces(gapLen), seg: -1})
				col += gapLen
			}
		}
		seg = (seg + 1) % len(s.segs)
		skip = 0
	}
	return spans
}

// itemAt resolves a screen column (e.g. a mouse click) to the headline
// under it, or nil for a gap.
func (s *strip) itemAt(x, width int) *feeds.Item {
	for _, sp := range s.visible(width) {
		if sp.seg < 0 {
			continue
		}
		if x >= sp.start && x < sp.start+len([]rune(sp.text)) {
			return &s.segs[sp.seg].item
		}
	}
	return nil
}

// unshown returns the items currently visible that have not yet been
// reported shown, marking them. Called once per rendered frame.
func (s *strip) unshown(width int) []feeds.Item {
	var out []feeds.Item
	for _, sp := range s.visible(width) {
		if sp.seg < 0 || s.segs[sp.seg].shown {
			continue
		}
		s.segs[sp.seg].shown = true
		out = append(out, s.segs[sp.seg].item)
	}
	return out
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
