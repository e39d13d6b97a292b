package aptekonline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"aptekonline-scraper/config"
	"aptekonline-scraper/models"
	"aptekonline-scraper/utils"
)

// Scraper orchestrates the aptekonline.az scraping pipeline: listing
// resolution, concurrent detail-page scraping, and outcome collection.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher *fetcher
	pool    *utils.WorkerPool
	seenIDs *utils.IDSet
}

// outcome is one finished detail-page task: either a record or a failure.
type outcome struct {
	record  *models.DetailRecord
	failure *models.FailureRecord
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: newFetcher(time.Duration(cfg.RequestTimeoutS)*time.Second, cfg.InsecureTLS),
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		seenIDs: utils.NewIDSet(),
	}
}

// Scrape resolves the worklist from the listing page and scrapes every
// pharmacy's detail page. A listing failure aborts the run; a fetch or
// extraction failure for one pharmacy becomes a FailureRecord and
// never affects the others. All three return slices cover one run;
// completion order of the detail tasks is unspecified.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.ListingEntry, []*models.DetailRecord, []*models.FailureRecord, error) {
	entries, err := s.resolveListing(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	details, failures := s.scrapeDetails(ctx, entries)
	return entries, details, failures, nil
}

// scrapeDetails runs one fetch+extract task per entry on the worker
// pool. Workers push outcomes to a single channel drained by one
// collector goroutine, so the result slices need no locking.
func (s *Scraper) scrapeDetails(ctx context.Context, entries []*models.ListingEntry) ([]*models.DetailRecord, []*models.FailureRecord) {
	total := len(entries)
	s.logger.Info("[scrape] Scraping %d pharmacy pages — concurrency: %d, delay: %dms",
		total, s.cfg.MaxConcurrency, s.cfg.RateLimitMs)

	results := make(chan outcome)
	done := make(chan struct{})

	var details []*models.DetailRecord
	var failures []*models.FailureRecord

	var completed atomic.Int64
	go func() {
		defer close(done)
		for out := range results {
			n := completed.Add(1)
			if out.failure != nil {
				failures = append(failures, out.failure)
				s.logger.Warn("[scrape] [%d/%d] Pharmacy %d failed: %s",
					n, total, out.failure.ID, out.failure.Reason)
				continue
			}
			details = append(details, out.record)
			s.logger.Info("[scrape] [%d/%d] Scraped: %s", n, total, truncate(out.record.Name, 40))
		}
	}()

	for _, entry := range entries {
		id := entry.ID

		// On cancellation pending tasks are converted to failures;
		// in-flight fetches run to completion.
		if ctx.Err() != nil {
			results <- outcome{failure: &models.FailureRecord{ID: id, Reason: ctx.Err().Error()}}
			continue
		}

		s.pool.Submit(func() {
			results <- s.scrapeOne(ctx, id)
		})
	}

	s.pool.Wait()
	close(results)
	<-done

	s.logger.Info("[scrape] Done — %d scraped, %d failed", len(details), len(failures))
	return details, failures
}

// scrapeOne fetches and extracts a single pharmacy page.
func (s *Scraper) scrapeOne(ctx context.Context, id int) outcome {
	url := fmt.Sprintf("%s/pharmacies/%d", s.cfg.BaseURL, id)

	body, err := s.fetcher.fetch(ctx, url)
	if err != nil {
		return outcome{failure: &models.FailureRecord{ID: id, Reason: err.Error()}}
	}

	rec, err := extractDetail(id, url, body)
	if err != nil {
		return outcome{failure: &models.FailureRecord{ID: id, Reason: err.Error()}}
	}
	return outcome{record: rec}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
