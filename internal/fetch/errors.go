package fetch

import "fmt"

// FetchError reports a network or HTTP failure retrieving a feed.
// Recovered in the poller via per-source retry/backoff.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports malformed feed content. Like FetchError it is
// scoped to one source and never fatal to the process.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
