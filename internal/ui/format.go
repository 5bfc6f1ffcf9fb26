package ui

import (
	"strings"
	"time"

	"github.com/abelbrown/tickerd/internal/feeds"
)

// headlineText builds the plain (unstyled) ticker text for one item:
// "[POL] Title — Author (3:04PM)".
func headlineText(item feeds.Item) string {
	var b strings.Builder

	if tag, ok := categoryTags[item.Category]; ok {
		b.WriteString(tag)
		b.WriteString(" ")
	}
	b.WriteString(strings.TrimSpace(item.Title))

	if item.Author != "" {
		b.WriteString(" — ")
		b.WriteString(item.Author)
	}
	if !item.Published.IsZero() && time.Since(item.Published) < 24*time.Hour {
		b.WriteString(" (")
		b.WriteString(item.Published.Local().Format("3:04PM"))
		b.WriteString(")")
	}
	return b.String()
}

var htmlEntities = strings.NewReplacer(
	"&#39;", "'",
	"&#34;", "\"",
	"&quot;", "\"",
	"&apos;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
	"&#x27;", "'",
	"&#x22;", "\"",
	"&mdash;", "-",
	"&ndash;", "-",
	"&hellip;", "...",
	"&ldquo;", "\"",
	"&rdquo;", "\"",
	"&lsquo;", "'",
	"&rsquo;", "'",
)

// cleanSummary strips HTML tags and entities and collapses whitespace so
// feed descriptions fit on the description line.
func cleanSummary(s string) string {
	result := s
	for {
		start := strings.Index(result, "<")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], ">")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}

	result = htmlEntities.Replace(result)
	return strings.Join(strings.Fields(result), " ")
}

// truncate shortens a string to maxLen runes, ".."-terminated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 2 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-2]) + ".."
}
