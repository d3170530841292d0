package scraper

import "fmt"

// UpstreamError indicates the fetch of a book detail page failed at the HTTP
// layer, either with an error status from the source site or with no response
// at all. The API maps it to 502; every other scrape failure maps to 500.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream: fetch %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
