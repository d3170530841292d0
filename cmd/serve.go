// Package cmd defines and implements the CLI commands for the bookmeta executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwiatrak/bookmeta/internal/api"
	"github.com/mwiatrak/bookmeta/internal/config"
	"github.com/mwiatrak/bookmeta/internal/fetcher"
	"github.com/mwiatrak/bookmeta/internal/logging"
	"github.com/mwiatrak/bookmeta/internal/scraper"
)

// newServeCmd creates and configures the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the book metadata HTTP server",
		Long: `Starts the HTTP server that resolves book titles against the
lubimyczytac.pl search endpoint and scrapes the matched book page for
metadata. Configuration is read from a config file and environment
variables prefixed with BOOKMETA_.`,

		RunE: runServeCommand,
	}
	return cmd
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetch := fetcher.New(fetcher.Config{
		UserAgent:    cfg.Scraper.UserAgent,
		Timeout:      time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second,
		IgnoreRobots: cfg.Scraper.IgnoreRobots,
	})
	books := scraper.New(scraper.Config{
		BaseURL:         cfg.Scraper.BaseURL,
		SearchPath:      cfg.Scraper.SearchPath,
		BookPathSegment: cfg.Scraper.BookPathSegment,
	}, fetch, logger.Named("scraper"))

	apiServer := api.NewServer(books, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return nil
}
