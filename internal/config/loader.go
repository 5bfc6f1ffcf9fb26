package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	DataDir     string `long:"data-dir" env:"TICKERD_DATA_DIR" description:"Directory for logs, memory db and sources file (default ~/.tickerd)"`
	SourcesFile string `long:"sources" env:"TICKERD_SOURCES" description:"YAML file listing feed sources (default <data-dir>/sources.yml)"`

	PollInterval  time.Duration `long:"poll-interval" env:"TICKERD_POLL_INTERVAL" default:"2m" description:"How often to poll all feeds"`
	FetchTimeout  time.Duration `long:"fetch-timeout" env:"TICKERD_FETCH_TIMEOUT" default:"30s" description:"Timeout for each feed request"`
	RetryAttempts int           `long:"retry-attempts" env:"TICKERD_RETRY_ATTEMPTS" default:"3" description:"Fetch attempts per source per cycle"`
	RetryBase     time.Duration `long:"retry-base" env:"TICKERD_RETRY_BASE" default:"2s" description:"Base delay for per-source retry backoff"`
	RetryMax      time.Duration `long:"retry-max" env:"TICKERD_RETRY_MAX" default:"30s" description:"Maximum per-source retry backoff delay"`
	DedupCycles   int           `long:"dedup-cycles" env:"TICKERD_DEDUP_CYCLES" default:"5" description:"Prior poll cycles remembered for cross-cycle dedup"`
	MaxHeadlines  int           `long:"max-headlines" env:"TICKERD_MAX_HEADLINES" default:"50" description:"Maximum headlines per batch"`
	UserAgent     string        `long:"user-agent" env:"TICKERD_USER_AGENT" default:"tickerd/1.0 (+https://github.com/abelbrown/tickerd)" description:"User agent for feed requests"`

	ScrollDelay time.Duration `long:"scroll-delay" env:"TICKERD_SCROLL_DELAY" default:"30ms" description:"Interval between ticker animation frames"`
	ScrollStep  int           `long:"scroll-step" env:"TICKERD_SCROLL_STEP" default:"2" description:"Columns the ticker advances per frame"`
	HeadlineGap int           `long:"headline-gap" env:"TICKERD_HEADLINE_GAP" default:"8" description:"Blank columns between headlines"`

	MemoryRetention time.Duration `long:"memory-retention" env:"TICKERD_MEMORY_RETENTION" default:"168h" description:"How long shown headlines are remembered across sessions"`

	Debug   bool `long:"debug" env:"TICKERD_DEBUG" description:"Enable debug logging"`
	Version bool `long:"version" short:"v" description:"Print version and exit"`
}

// Load parses flags and environment into a Config. Returns (nil, nil)
// when the process should exit cleanly (--help, --version).
func Load(args []string) (*Config, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Version {
		fmt.Println("tickerd " + GetVersion())
		return nil, nil
	}

	dataDir := raw.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tickerd")
	}

	cfg := &Config{
		DataDir:         dataDir,
		SourcesFile:     cmp.Or(raw.SourcesFile, filepath.Join(dataDir, "sources.yml")),
		PollInterval:    raw.PollInterval,
		FetchTimeout:    raw.FetchTimeout,
		RetryAttempts:   raw.RetryAttempts,
		RetryBase:       raw.RetryBase,
		RetryMax:        raw.RetryMax,
		DedupCycles:     raw.DedupCycles,
		MaxHeadlines:    raw.MaxHeadlines,
		UserAgent:       raw.UserAgent,
		ScrollDelay:     raw.ScrollDelay,
		ScrollStep:      raw.ScrollStep,
		HeadlineGap:     raw.HeadlineGap,
		MemoryRetention: raw.MemoryRetention,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.RetryAttempts)
	}
	if c.RetryMax < c.RetryBase {
		return fmt.Errorf("retry max %s is below retry base %s", c.RetryMax, c.RetryBase)
	}
	if c.ScrollStep < 1 {
		return fmt.Errorf("scroll step must be at least 1, got %d", c.ScrollStep)
	}
	return nil
}
