package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Fatalf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeoutSeconds != 30 {
		t.Fatalf("expected default request timeout 30s, got %d", cfg.Server.RequestTimeoutSeconds)
	}
	if cfg.Scraper.BaseURL != "https://lubimyczytac.pl" {
		t.Fatalf("unexpected default base url %q", cfg.Scraper.BaseURL)
	}
	if cfg.Scraper.SearchPath != "/szukaj/ksiazki" {
		t.Fatalf("unexpected default search path %q", cfg.Scraper.SearchPath)
	}
	if cfg.Scraper.BookPathSegment != "/ksiazka/" {
		t.Fatalf("unexpected default book path segment %q", cfg.Scraper.BookPathSegment)
	}
	if cfg.Scraper.TimeoutSeconds != 10 {
		t.Fatalf("expected default timeout 10s, got %d", cfg.Scraper.TimeoutSeconds)
	}
	if !strings.Contains(cfg.Scraper.UserAgent, "Mozilla/5.0") {
		t.Fatalf("expected browser-like user agent, got %q", cfg.Scraper.UserAgent)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  request_timeout_seconds: 15
logging:
  development: false
scraper:
  base_url: https://lubimyczytac.pl
  search_path: /szukaj/ksiazki
  book_path_segment: /ksiazka/
  user_agent: test-agent
  timeout_seconds: 5
  ignore_robots: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeoutSeconds != 15 {
		t.Fatalf("expected request timeout override, got %d", cfg.Server.RequestTimeoutSeconds)
	}
	if cfg.Logging.Development {
		t.Fatalf("expected development logging to be disabled")
	}
	if cfg.Scraper.UserAgent != "test-agent" {
		t.Fatalf("expected user agent override, got %q", cfg.Scraper.UserAgent)
	}
	if cfg.Scraper.TimeoutSeconds != 5 {
		t.Fatalf("expected timeout override, got %d", cfg.Scraper.TimeoutSeconds)
	}
	if cfg.Scraper.IgnoreRobots {
		t.Fatalf("expected ignore_robots override to apply")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8000, RequestTimeoutSeconds: 30},
		Scraper: ScraperConfig{
			BaseURL:         "https://lubimyczytac.pl",
			SearchPath:      "/szukaj/ksiazki",
			BookPathSegment: "/ksiazka/",
			TimeoutSeconds:  10,
		},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "invalid request timeout",
			cfg: func() Config {
				c := base
				c.Server.RequestTimeoutSeconds = 0
				return c
			}(),
			want: "server.request_timeout_seconds",
		},
		{
			name: "base url missing host",
			cfg: func() Config {
				c := base
				c.Scraper.BaseURL = "lubimyczytac.pl"
				return c
			}(),
			want: "scraper.base_url",
		},
		{
			name: "search path not rooted",
			cfg: func() Config {
				c := base
				c.Scraper.SearchPath = "szukaj"
				return c
			}(),
			want: "scraper.search_path",
		},
		{
			name: "empty book path segment",
			cfg: func() Config {
				c := base
				c.Scraper.BookPathSegment = ""
				return c
			}(),
			want: "scraper.book_path_segment",
		},
		{
			name: "invalid timeout",
			cfg: func() Config {
				c := base
				c.Scraper.TimeoutSeconds = 0
				return c
			}(),
			want: "scraper.timeout_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.name)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}
