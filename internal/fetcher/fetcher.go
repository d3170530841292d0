// Package fetcher implements scraper.Fetcher using gocolly.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/mwiatrak/bookmeta/internal/scraper"
)

// Config controls collector behavior.
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	IgnoreRobots bool

	// Transport overrides the HTTP transport, used by tests to plug in a
	// mock round tripper. Nil selects the pooled default.
	Transport http.RoundTripper
}

// Client performs single-page fetches with a fresh collector clone per call,
// so concurrent requests never share collector state.
type Client struct {
	cfg           Config
	baseCollector *colly.Collector
}

// New builds a Client. Revisits are allowed: every inbound request triggers
// its own outbound fetch, and a resolved book page is fetched again right
// after a search redirected to it.
func New(cfg Config) *Client {
	c := colly.NewCollector(
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	c.IgnoreRobotsTxt = cfg.IgnoreRobots

	transport := cfg.Transport
	if transport == nil {
		transport = newHTTPTransport()
	}
	c.WithTransport(transport)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	c.SetRequestTimeout(timeout)

	return &Client{
		cfg:           cfg,
		baseCollector: c,
	}
}

// Fetch executes a single HTTP GET, following redirects. A response with an
// error status is returned as a Page with that status and a nil error; the
// error return is reserved for requests that produced no response at all.
func (c *Client) Fetch(ctx context.Context, rawURL string) (scraper.Page, error) {
	collector := c.baseCollector.Clone()

	var (
		page     scraper.Page
		fetchErr error
	)

	collector.OnResponse(func(r *colly.Response) {
		page = scraper.Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			final := rawURL
			if r.Request != nil && r.Request.URL != nil {
				final = r.Request.URL.String()
			}
			page = scraper.Page{
				URL:        rawURL,
				FinalURL:   final,
				StatusCode: r.StatusCode,
				Body:       append([]byte(nil), r.Body...),
			}
			return
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return scraper.Page{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if page.StatusCode > 0 {
			return page, nil
		}
		if fetchErr != nil {
			return scraper.Page{}, fmt.Errorf("fetch %s: %w", rawURL, fetchErr)
		}
		if err != nil {
			return scraper.Page{}, fmt.Errorf("visit %s: %w", rawURL, err)
		}
		return scraper.Page{}, errors.New("fetch produced no response")
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
