// ABOUTME: Main entry point for the Newsdesk API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk-api/api"
	"newsdesk-api/api/handlers"
	"newsdesk-api/api/middleware"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/news"
	"newsdesk-api/core/preferences"
	"newsdesk-api/core/scheduler"
	"newsdesk-api/core/scraper"
	"newsdesk-api/core/services"
	"newsdesk-api/core/summary"
	"newsdesk-api/core/workers"
	stdhttp "newsdesk-api/infrastructure/http/standard"
	logruslogger "newsdesk-api/infrastructure/logger/logrus"
	"newsdesk-api/pkg/config"
	"newsdesk-api/pkg/featureflags"
)

const userAgent = "Newsdesk/1.0 (+https://github.com/newsdesk)"

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger, err := logruslogger.New(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting Newsdesk API", map[string]interface{}{
		"port":             cfg.Server.Port,
		"cache_type":       cfg.Cache.Type,
		"prefs_type":       cfg.Prefs.Type,
		"refresh_interval": cfg.Server.RefreshInterval,
	})

	flags := featureflags.NewEnvManager("FEATURE_", featureflags.Defaults)
	ctx := context.Background()

	// Storage
	var store backends
	buildCache(cfg, logger, &store)
	if err := buildPrefs(cfg, logger, &store); err != nil {
		store.close(logger)
		log.Fatalf("Failed to open preferences: %v", err)
	}
	defer store.close(logger)

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30*time.Second, stdhttp.WithUserAgent(userAgent))

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      store.cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	repo := preferences.NewRepository(store.prefs, logger)

	newsOpts := []news.Option{
		news.WithFeedTTL(time.Duration(cfg.News.FeedCacheTTL) * time.Second),
		news.WithMaxItemsPerFeed(cfg.News.MaxItemsPerFeed),
		news.WithConcurrency(cfg.News.FetchConcurrency),
	}

	var thumbnails *workers.ThumbnailWorker
	if flags.IsEnabled(ctx, featureflags.ThumbnailEnrichment) {
		thumbnails = workers.NewThumbnailWorker(services.NewMetadataService(deps), logger, workers.DefaultWorkerConfig())
		if err := thumbnails.Start(); err != nil {
			logger.Error("Failed to start thumbnail worker", map[string]interface{}{
				"error": err.Error(),
			})
			thumbnails = nil
		} else {
			newsOpts = append(newsOpts, news.WithThumbnails(thumbnails))
		}
	}

	newsService := news.NewService(deps, repo, newsOpts...)
	summaryService := summary.NewService(deps, buildSummaryChain(ctx, cfg, flags, logger), cfg.Summary.Sentences)
	scraperService := scraper.NewService(deps, cfg.News.FetchConcurrency)

	// Background refresh
	refreshInterval := time.Duration(cfg.Server.RefreshInterval) * time.Second
	sched := scheduler.New(newsService, flags, logger, scheduler.Config{
		Interval: refreshInterval,
	})
	if started, err := sched.Start(); err != nil {
		logger.Error("Failed to start refresh scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	} else if started {
		logger.Info("Refresh scheduler started", map[string]interface{}{
			"interval": refreshInterval.String(),
		})
		// Warm the item list instead of waiting a full interval
		go func() {
			if err := sched.RunOnce(ctx); err != nil {
				logger.Warn("Startup refresh failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()
	}

	// Create API with middleware
	apiConfig := api.APIConfig{Logger: logger}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) && cfg.Server.RateLimit > 0 {
		apiConfig.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute)
		defer apiConfig.RateLimiter.Close()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	api.Register(humaAPI,
		handlers.NewFeedHandler(repo),
		handlers.NewNewsHandler(newsService, repo, summaryService),
		handlers.NewArticleHandler(scraperService),
		&handlers.HealthHandler{
			CacheBackend: store.cacheName,
			PrefsBackend: store.prefsName,
			Refresh:      newsService,
			LastRefresh:  repo,
			Flags:        flags,
		},
	)

	// Create HTTP server. Refreshes and summaries can run long, so writes
	// get more room than reads.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn("Refresh scheduler did not stop cleanly", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if thumbnails != nil {
		if err := thumbnails.Stop(); err != nil {
			logger.Warn("Thumbnail worker did not stop cleanly", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Server stopped", nil)
}

// buildSummaryChain orders summarizers from best to most reliable. The
// remote model is only tried when a key is configured and the flag is on.
func buildSummaryChain(ctx context.Context, cfg *config.Config, flags featureflags.Manager, logger interfaces.Logger) *summary.Chain {
	var remote summary.Summarizer
	if cfg.Summary.LLMAPIKey != "" && flags.IsEnabled(ctx, featureflags.RemoteSummary) {
		llm, err := summary.NewLLMSummarizer(summary.LLMConfig{
			APIKey:  cfg.Summary.LLMAPIKey,
			Model:   cfg.Summary.LLMModel,
			BaseURL: cfg.Summary.LLMBaseURL,
		})
		if err != nil {
			logger.Warn("Remote summarizer disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			remote = llm
		}
	}

	chain := summary.NewChain(logger, remote, summary.NewFrequencySummarizer(), summary.NewLeadSummarizer())
	logger.Info("Summary chain configured", map[string]interface{}{
		"summarizers": chain.Names(),
	})
	return chain
}

func init() {
	// Print banner
	fmt.Println(`
    _   __                         __          __
   / | / /__ _      _______  ____/ /__  _____/ /__
  /  |/ / _ \ | /| / / ___/ / __  / _ \/ ___/ //_/
 / /|  /  __/ |/ |/ (__  ) / /_/ /  __(__  ) ,<
/_/ |_/\___/|__/|__/____/  \__,_/\___/____/_/|_|
	`)
}
