package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abelbrown/tickerd/internal/browser"
	"github.com/abelbrown/tickerd/internal/logging"
)

// ErrNoSources is returned when the sources file yields no usable feeds.
var ErrNoSources = errors.New("no valid feed sources configured")

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// defaultSources seeds the sources file on first run.
var defaultSources = []Source{
	{Name: "NYT Politics", URL: "https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml", Category: "Politics"},
	{Name: "NYT Home Page", URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml", Category: "HomePage"},
	{Name: "NYT Technology", URL: "https://rss.nytimes.com/services/xml/rss/nyt/Technology.xml", Category: "Technology"},
	{Name: "POLITICO", URL: "https://rss.politico.com/politics-news.xml", Category: "Politics"},
	{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Category: "Technology"},
	{Name: "WIRED", URL: "https://www.wired.com/feed/rss", Category: "Technology"},
}

// LoadSources reads the YAML sources file into cfg.Sources, writing the
// default set first if the file does not exist. Sources with unsafe or
// malformed URLs are skipped with a warning; an error is returned only
// when nothing usable remains.
func LoadSources(cfg *Config) error {
	data, err := os.ReadFile(cfg.SourcesFile)
	if os.IsNotExist(err) {
		if err := writeDefaultSources(cfg.SourcesFile); err != nil {
			return err
		}
		data, err = os.ReadFile(cfg.SourcesFile)
		if err != nil {
			return fmt.Errorf("failed to read sources file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to read sources file: %w", err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.SourcesFile, err)
	}

	cfg.Sources = cfg.Sources[:0]
	for _, src := range f.Sources {
		if src.URL == "" {
			logging.Warn("skipping source with empty URL", "name", src.Name)
			continue
		}
		if err := browser.Validate(src.URL); err != nil {
			logging.Warn("skipping source with unsafe URL", "name", src.Name, "error", err)
			continue
		}
		if src.Name == "" {
			src.Name = src.URL
		}
		if src.Category == "" {
			src.Category = "Default"
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	if len(cfg.Sources) == 0 {
		return ErrNoSources
	}
	return nil
}

func writeDefaultSources(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(sourcesFile{Sources: defaultSources})
	if err != nil {
		return err
	}
	header := []byte("# Feed sources for tickerd. Add or remove entries freely;\n# failures in one feed never affect the others.\n")
	return os.WriteFile(path, append(header, data...), 0644)
}
