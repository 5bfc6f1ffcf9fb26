package feeds

import "time"

// Item is a single headline parsed from a feed.
// Immutable once produced by the fetcher.
type Item struct {
	ID         string
	SourceName string // "NYT Politics", "TechCrunch"
	SourceURL  string // Feed URL
	Title      string
	Summary    string
	URL        string // Link to original article
	Author     string
	Category   string
	Published  time.Time
	Fetched    time.Time
}

// Batch is one delivered snapshot of merged, deduplicated entries,
// tagged with the poll cycle that produced it. Ownership transfers to
// the display loop when the batch is placed on the hand-off channel.
type Batch struct {
	Cycle int
	Items []Item
}
