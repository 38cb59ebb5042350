package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"dashboard/internal/domain"
)

// QuoteObserver receives the outcome of every quote fetch.
type QuoteObserver interface {
	QuoteFetched(pair string, err error)
}

// PriceService polls a quote source for each configured feed and keeps the
// last good quote of each. Every feed is an independent scheduled job.
type PriceService struct {
	source   domain.QuoteSource
	feeds    []domain.PriceFeed
	interval time.Duration
	clock    Clock
	logger   *slog.Logger
	observer QuoteObserver

	mu     sync.RWMutex
	quotes map[string]domain.Quote
	cron   *cron.Cron
	done   chan struct{}
}

// PriceOption configures a PriceService.
type PriceOption func(*PriceService)

// WithPriceClock sets the clock used to stamp quotes.
func WithPriceClock(c Clock) PriceOption {
	return func(s *PriceService) { s.clock = c }
}

// WithPriceLogger sets the logger used for fetch failures.
func WithPriceLogger(l *slog.Logger) PriceOption {
	return func(s *PriceService) { s.logger = l }
}

// WithQuoteObserver sets a hook called after each fetch.
func WithQuoteObserver(o QuoteObserver) PriceOption {
	return func(s *PriceService) { s.observer = o }
}

// NewPriceService creates a PriceService for feeds polled every interval.
func NewPriceService(source domain.QuoteSource, feeds []domain.PriceFeed, interval time.Duration, opts ...PriceOption) *PriceService {
	s := &PriceService{
		source:   source,
		feeds:    feeds,
		interval: interval,
		clock:    RealClock{},
		logger:   slog.Default(),
		quotes:   make(map[string]domain.Quote, len(feeds)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feeds returns the configured feeds in display order.
func (s *PriceService) Feeds() []domain.PriceFeed {
	out := make([]domain.PriceFeed, len(s.feeds))
	copy(out, s.feeds)
	return out
}

// Refresh fetches one feed and stores the result. On failure the previous
// quote is kept.
func (s *PriceService) Refresh(ctx context.Context, feed domain.PriceFeed) error {
	p, err := s.source.FetchQuote(ctx, feed.Pair)
	if s.observer != nil {
		s.observer.QuoteFetched(feed.Pair, err)
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", feed.Pair, err)
	}
	q := domain.NewQuote(feed, p, s.clock.Now().UTC())

	s.mu.Lock()
	s.quotes[feed.Pair] = q
	s.mu.Unlock()
	return nil
}

func (s *PriceService) refreshJob(ctx context.Context, feed domain.PriceFeed) func() {
	return func() {
		if ctx.Err() != nil {
			return
		}
		ctx, cancel := context.WithTimeout(ctx, s.interval)
		defer cancel()
		if err := s.Refresh(ctx, feed); err != nil {
			s.logger.Error("price refresh failed", "pair", feed.Pair, "error", err)
		}
	}
}

// Start schedules one job per feed, runs each once immediately and returns.
// The jobs stop when ctx is cancelled or Stop is called. Starting again stops
// the previous scheduler first.
func (s *PriceService) Start(ctx context.Context) error {
	s.Stop()

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	spec := "@every " + s.interval.String()
	jobs := make([]func(), 0, len(s.feeds))
	for _, feed := range s.feeds {
		job := s.refreshJob(ctx, feed)
		if _, err := c.AddFunc(spec, job); err != nil {
			return fmt.Errorf("schedule %s: %w", feed.Pair, err)
		}
		jobs = append(jobs, job)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cron = c
	s.done = done
	s.mu.Unlock()

	c.Start()
	for _, job := range jobs {
		go job()
	}
	go func() {
		select {
		case <-ctx.Done():
			s.stopScheduler(done)
		case <-done:
		}
	}()

	s.logger.Info("price polling started", "feeds", len(s.feeds), "interval", s.interval)
	return nil
}

// Stop halts scheduling and waits for running jobs. It is safe to call more
// than once.
func (s *PriceService) Stop() {
	s.stopScheduler(nil)
}

// stopScheduler stops the running scheduler. A non-nil done only stops the
// scheduler started together with it.
func (s *PriceService) stopScheduler(done chan struct{}) {
	s.mu.Lock()
	c := s.cron
	if c == nil || (done != nil && done != s.done) {
		s.mu.Unlock()
		return
	}
	close(s.done)
	s.cron = nil
	s.done = nil
	s.mu.Unlock()

	<-c.Stop().Done()
	s.logger.Info("price polling stopped")
}

// Quotes returns the latest quote of every feed fetched so far, in feed order.
func (s *PriceService) Quotes() []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Quote, 0, len(s.feeds))
	for _, f := range s.feeds {
		if q, ok := s.quotes[f.Pair]; ok {
			out = append(out, q)
		}
	}
	return out
}
