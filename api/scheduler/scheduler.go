// Package scheduler runs the periodic background jobs of the catalog
// backend. The only job today is the feed health probe; catalog reads never
// consume its output, so a stale probe can never serve stale inventory.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/feed"
)

// FeedMonitor periodically fetches every feed dealer configuration and logs
// record counts, so a dead upstream inventory is noticed before customers do
type FeedMonitor struct {
	cron *cron.Cron
	feed *feed.Client
}

// NewFeedMonitor creates a new monitor instance
func NewFeedMonitor(feedClient *feed.Client) *FeedMonitor {
	return &FeedMonitor{
		cron: cron.New(cron.WithLocation(time.UTC)),
		feed: feedClient,
	}
}

// Start begins the scheduler with all registered jobs
func (s *FeedMonitor) Start() {
	// probe the feed hourly, on the hour
	_, err := s.cron.AddFunc("0 * * * *", s.probeFeed)
	if err != nil {
		zap.S().Errorw("failed to register feed probe job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("feed monitor started")
}

// Stop gracefully stops the scheduler
func (s *FeedMonitor) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("feed monitor stopped")
}

func (s *FeedMonitor) probeFeed() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, result := range s.feed.Probe(ctx) {
		if result.Err != nil {
			zap.S().Errorw("feed configuration unavailable",
				"config", result.Config,
				"error", result.Err,
			)
			continue
		}
		zap.S().Infow("feed configuration healthy",
			"config", result.Config,
			"records", result.Records,
		)
	}
}
