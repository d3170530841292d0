package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mwiatrak/bookmeta/internal/metrics"
)

// Config points the scraper at the source site.
type Config struct {
	BaseURL         string
	SearchPath      string
	BookPathSegment string
}

// Scraper implements Service against lubimyczytac.pl. It holds no mutable
// state; every lookup runs on its own fetch.
type Scraper struct {
	cfg     Config
	fetcher Fetcher
	logger  *zap.Logger
}

// New builds a Scraper. A nil logger falls back to a no-op logger.
func New(cfg Config, fetcher Fetcher, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
	}
}

// ScrapeBook fetches a book detail page and extracts title, author and
// description. A fetch that fails at the HTTP layer returns an
// *UpstreamError; any other fault is an internal error. Fields that cannot
// be extracted fall back to their sentinel defaults. No retries are made.
func (s *Scraper) ScrapeBook(ctx context.Context, bookURL string) (Book, error) {
	page, err := s.fetcher.Fetch(ctx, bookURL)
	if err != nil {
		metrics.ObserveUpstreamRequest("detail", 0)
		metrics.ObserveScrapeError("upstream")
		s.logger.Error("book page fetch failed",
			zap.String("url", bookURL),
			zap.Error(err),
		)
		return Book{}, &UpstreamError{URL: bookURL, Err: err}
	}
	metrics.ObserveUpstreamRequest("detail", page.StatusCode)
	if page.StatusCode >= http.StatusBadRequest {
		metrics.ObserveScrapeError("upstream")
		s.logger.Error("book page returned error status",
			zap.String("url", bookURL),
			zap.Int("status", page.StatusCode),
		)
		return Book{}, &UpstreamError{URL: bookURL, StatusCode: page.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		metrics.ObserveScrapeError("internal")
		return Book{}, fmt.Errorf("parse book page %s: %w", bookURL, err)
	}

	title, ok := extractFirst(doc, titleRules)
	if !ok {
		title = UnknownTitle
	}
	author, ok := extractFirst(doc, authorRules)
	if !ok {
		author = UnknownAuthor
	}
	description := normalizeDescription(firstSelection(doc, descriptionSelectors))

	return Book{
		Title:       title,
		Author:      author,
		Description: description,
		URL:         bookURL,
	}, nil
}

// absoluteURL prefixes relative hrefs with the site origin.
func (s *Scraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(s.cfg.BaseURL, "/") + href
}
