package news

import (
	"context"
	"log/slog"
	"time"

	"newsopoly/internal/game"
)

const (
	fetchAttempts = 3
	retryBackoff  = 500 * time.Millisecond
)

// Service is the news pipeline the engine refills its event queue
// from: fetch headlines, classify them, degrade to the cache and then
// to the built-in fallbacks when the wire or the model is down.
type Service struct {
	fetcher    Fetcher
	classifier Classifier
	cache      *Cache
	log        *slog.Logger
}

// NewService wires the pipeline. cache may be nil to skip persistence.
func NewService(fetcher Fetcher, classifier Classifier, cache *Cache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{fetcher: fetcher, classifier: classifier, cache: cache, log: log}
}

// Fetch implements game.EventSource. It never returns an error and an
// empty batch together; some batch always comes back so a game can
// keep playing offline.
func (s *Service) Fetch(ctx context.Context, limit int) ([]game.MarketEvent, error) {
	events, err := s.fetchLive(ctx, limit)
	if err == nil && len(events) > 0 {
		if s.cache != nil {
			if cerr := s.cache.Save(events); cerr != nil {
				s.log.Warn("event cache write failed", "err", cerr)
			}
		}
		return events, nil
	}
	if err != nil {
		s.log.Warn("live news unavailable", "err", err)
	}

	if s.cache != nil {
		cached, cerr := s.cache.Load()
		if cerr != nil {
			s.log.Warn("event cache read failed", "err", cerr)
		} else if len(cached) > 0 {
			s.log.Info("serving cached events", "count", len(cached))
			return clip(cached, limit), nil
		}
	}

	return clip(game.FallbackEvents(), limit), nil
}

func (s *Service) fetchLive(ctx context.Context, limit int) ([]game.MarketEvent, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryBackoff):
			}
		}
		events, err := s.fetchOnce(ctx, limit)
		if err == nil {
			return events, nil
		}
		lastErr = err
		s.log.Debug("news fetch attempt failed", "attempt", attempt, "err", err)
	}
	return nil, lastErr
}

func (s *Service) fetchOnce(ctx context.Context, limit int) ([]game.MarketEvent, error) {
	headlines, err := s.fetcher.FetchHeadlines(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(headlines) == 0 {
		return nil, nil
	}
	return s.classifier.Classify(ctx, headlines)
}

func clip(events []game.MarketEvent, limit int) []game.MarketEvent {
	if limit > 0 && len(events) > limit {
		return events[:limit]
	}
	return events
}
