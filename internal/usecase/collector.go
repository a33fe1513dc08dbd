// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
	"github.com/naka-gawa/itunes-app-reviews/internal/gateway"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultCountry is the storefront used when no country is given.
const DefaultCountry = "us"

// Result is the single outcome of an asynchronous collection: Reviews on success, Err otherwise.
type Result struct {
	Reviews []domain.Review
	Err     error
}

// Collector is the use case for collecting reviews across feed pages.
// It orchestrates concurrent page fetches and merges them in page order.
type Collector struct {
	fetcher     gateway.Fetcher
	logger      *logrus.Logger
	concurrency int
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithConcurrency caps the number of pages fetched at the same time. Values below 1 mean no cap.
func WithConcurrency(n int) CollectorOption {
	return func(c *Collector) {
		c.concurrency = n
	}
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, logger *logrus.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		fetcher: fetcher,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect fetches pages 1 through pages concurrently and returns their reviews in page order.
// Every page runs to completion; if any page fails, the error of the lowest failed page
// is returned and no reviews are.
func (c *Collector) Collect(ctx context.Context, appID, country string, pages int) ([]domain.Review, error) {
	if appID == "" {
		return nil, fmt.Errorf("%w: app id is required", domain.ErrInvalidArgument)
	}
	if country == "" {
		country = DefaultCountry
	}
	if pages < 1 {
		pages = 1
	}
	log := c.logger.WithFields(logrus.Fields{"app_id": appID, "country": country, "pages": pages})
	log.Debug("Usecase: Starting review collection...")

	results := make([][]domain.Review, pages)
	errs := make([]error, pages)

	// Page goroutines never return an error to the group, so no page is cancelled
	// because another one failed.
	var eg errgroup.Group
	if c.concurrency > 0 {
		eg.SetLimit(c.concurrency)
	}
	for i := range pages {
		eg.Go(func() error {
			results[i], errs[i] = c.fetcher.FetchPage(ctx, appID, country, i+1)
			return nil
		})
	}
	_ = eg.Wait()

	for i, err := range errs {
		if err != nil {
			log.WithError(err).WithField("page", i+1).Debug("Usecase: Review collection failed.")
			return nil, err
		}
	}

	total := 0
	for _, page := range results {
		total += len(page)
	}
	merged := make([]domain.Review, 0, total)
	for _, page := range results {
		merged = append(merged, page...)
	}

	log.WithField("reviews", len(merged)).Debug("Usecase: Review collection complete.")
	return merged, nil
}

// CollectAsync runs Collect in the background. The returned channel delivers exactly one
// Result and is then closed.
func (c *Collector) CollectAsync(ctx context.Context, appID, country string, pages int) <-chan Result {
	out := make(chan Result, 1)
	if appID == "" {
		out <- Result{Err: fmt.Errorf("%w: app id is required", domain.ErrInvalidArgument)}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		reviews, err := c.Collect(ctx, appID, country, pages)
		out <- Result{Reviews: reviews, Err: err}
	}()
	return out
}
