package scraper

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mwiatrak/bookmeta/internal/metrics"
)

// ResolveBookURL searches the site for query and returns the absolute URL of
// the first matching book page. When the search has exactly one unambiguous
// result the site redirects straight to the book page; that final URL is
// returned as-is without parsing the body. Network and HTTP failures are
// logged and reported as not-found rather than propagated: an unreachable
// search is treated the same as a search with no results.
func (s *Scraper) ResolveBookURL(ctx context.Context, query string) (string, bool) {
	page, err := s.fetcher.Fetch(ctx, s.searchURL(query))
	if err != nil {
		metrics.ObserveUpstreamRequest("search", 0)
		metrics.ObserveLookup("search_error")
		s.logger.Warn("book search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return "", false
	}
	metrics.ObserveUpstreamRequest("search", page.StatusCode)
	if page.StatusCode >= http.StatusBadRequest {
		metrics.ObserveLookup("search_error")
		s.logger.Warn("book search returned error status",
			zap.String("query", query),
			zap.Int("status", page.StatusCode),
		)
		return "", false
	}

	if strings.Contains(page.FinalURL, s.cfg.BookPathSegment) {
		metrics.ObserveLookup("direct_redirect")
		s.logger.Info("search redirected directly to book page",
			zap.String("query", query),
			zap.String("url", page.FinalURL),
		)
		return page.FinalURL, true
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		metrics.ObserveLookup("search_error")
		s.logger.Warn("search results page could not be parsed",
			zap.String("query", query),
			zap.Error(err),
		)
		return "", false
	}

	href, ok := extractFirst(doc, searchLinkRules)
	if !ok {
		metrics.ObserveLookup("not_found")
		return "", false
	}
	metrics.ObserveLookup("matched")
	return s.absoluteURL(href), true
}

// searchURL builds the search endpoint URL for query.
func (s *Scraper) searchURL(query string) string {
	params := url.Values{"phrase": {query}}
	return strings.TrimRight(s.cfg.BaseURL, "/") + s.cfg.SearchPath + "?" + params.Encode()
}
