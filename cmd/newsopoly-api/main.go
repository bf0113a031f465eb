package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsopoly/internal/api"
	"newsopoly/internal/config"
	"newsopoly/internal/game"
	"newsopoly/internal/news"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.LoadDotenv()
	cfg := config.LoadAPIFromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var source game.EventSource
	if cfg.GeminiAPIKey != "" {
		classifier, err := news.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("gemini client failed", "err", err)
			os.Exit(1)
		}
		defer classifier.Close()

		cache, err := news.NewCache(cfg.CacheDir)
		if err != nil {
			logger.Warn("event cache unavailable", "err", err)
			cache = nil
		}
		source = news.NewService(news.NewFeedFetcher(cfg.FeedURL), classifier, cache, logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set; games run on the builtin event feed")
	}

	server := api.New(cfg, logger, source)
	defer server.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("newsopoly api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
