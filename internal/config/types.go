package config

import "time"

// Config is the immutable runtime configuration. It is constructed once
// at startup and passed by reference to the poller and the display loop;
// nothing mutates it afterwards.
type Config struct {
	// Paths
	DataDir     string
	SourcesFile string

	// Feed polling
	PollInterval  time.Duration
	FetchTimeout  time.Duration
	RetryAttempts int
	RetryBase     time.Duration
	RetryMax      time.Duration
	DedupCycles   int
	MaxHeadlines  int
	UserAgent     string

	// Display
	ScrollDelay time.Duration
	ScrollStep  int
	HeadlineGap int

	// Cross-session shown-headline memory
	MemoryRetention time.Duration

	Debug   bool
	Version string

	Sources []Source
}

// Source is one configured feed: a URL plus display metadata.
// Immutable once loaded.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}
