// Package browser opens article links in the user's default browser.
// Opening is fire-and-forget: failures are reported to the caller for
// logging but are never fatal.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ValidationError reports a URL that was rejected before opening.
type ValidationError struct {
	URL    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

// suspicious substrings that have no business in a headline link.
var suspiciousPatterns = []string{
	"javascript:",
	"data:",
	"file:",
	"about:",
	"<script",
	"onclick",
	"onerror",
}

// Validate checks that a URL is safe to hand to the system browser:
// http(s) scheme, a host, and none of the known-bad patterns.
func Validate(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{URL: rawURL, Reason: "empty"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{URL: rawURL, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{URL: rawURL, Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return &ValidationError{URL: rawURL, Reason: "missing host"}
	}

	lower := strings.ToLower(rawURL)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			return &ValidationError{URL: rawURL, Reason: "suspicious pattern " + pattern}
		}
	}
	return nil
}

// Opener opens a URL in the user's default browser.
type Opener interface {
	Open(url string) error
}

// ExecOpener shells out to the platform's URL handler.
type ExecOpener struct{}

// Open validates the URL and launches the default browser. The browser
// process is started, not waited on.
func (ExecOpener) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
