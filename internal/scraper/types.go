// Package scraper resolves book titles against the lubimyczytac.pl search
// endpoint and extracts structured metadata from book detail pages.
package scraper

import "context"

// Sentinel values returned when a field could not be extracted. Downstream
// consumers rely on these exact strings, so a miss must never surface as an
// empty title or author.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// Book is the metadata record assembled from a book detail page.
// It is constructed once per request and never persisted.
type Book struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Query       string `json:"query"`
}

// Page is the outcome of a single outbound fetch. FinalURL reflects any
// redirects followed by the client.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// Fetcher fetches a URL and returns the body plus metadata. A Page with a
// non-2xx StatusCode is returned without an error; the error return is
// reserved for requests that produced no HTTP response at all.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// Service is the book lookup surface consumed by the HTTP API.
type Service interface {
	// ResolveBookURL maps a free-text query to an absolute book page URL.
	// The boolean is false when no candidate was found; resolution faults
	// are swallowed and reported as not-found.
	ResolveBookURL(ctx context.Context, query string) (string, bool)

	// ScrapeBook fetches a resolved book page and extracts its metadata.
	ScrapeBook(ctx context.Context, bookURL string) (Book, error)
}
