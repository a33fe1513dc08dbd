package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/naka-gawa/itunes-app-reviews/internal/config"
	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
	"github.com/naka-gawa/itunes-app-reviews/internal/gateway"
	"github.com/naka-gawa/itunes-app-reviews/internal/httpclient"
	"github.com/naka-gawa/itunes-app-reviews/internal/metrics"
	"github.com/naka-gawa/itunes-app-reviews/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// deps bundles the dependencies a command needs once flags and config are resolved.
type deps struct {
	cfg       config.Config
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	collector *usecase.Collector
	policy    usecase.RatingPolicy
}

// newLogger discards all logs unless verbose is set.
func newLogger(verbose bool, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if verbose {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// newDeps loads configuration and injects dependencies for a command.
func newDeps(cmd *cobra.Command) (*deps, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose, cfg.LogFormat)

	policy, err := usecase.ParseRatingPolicy(cfg.RatingPolicy)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	fetcher, err := gateway.NewITunesGateway(gateway.Config{
		BaseURL:      cfg.BaseURL,
		StrictStatus: cfg.StrictStatus,
		HTTP: httpclient.Config{
			Timeout:         cfg.Timeout,
			MaxRetries:      cfg.MaxRetries,
			RetryWaitMin:    cfg.RetryWaitMin,
			RetryWaitMax:    cfg.RetryWaitMax,
			MaxConnsPerHost: httpclient.DefaultConfig().MaxConnsPerHost,
			Token:           cfg.Token,
		},
	}, m, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed gateway: %w", err)
	}

	return &deps{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		collector: usecase.NewCollector(fetcher, logger, usecase.WithConcurrency(cfg.Concurrency)),
		policy:    policy,
	}, nil
}

// collect fetches the reviews for the app named in args and applies the --day and
// --app-version filters. Metrics are written afterwards even when fetching failed.
func (d *deps) collect(ctx context.Context, cmd *cobra.Command, appID string) ([]domain.Review, error) {
	country, _ := cmd.Flags().GetString("country")
	if !cmd.Flags().Changed("country") {
		country = d.cfg.Country
	}
	pages, _ := cmd.Flags().GetInt("pages")
	if !cmd.Flags().Changed("pages") {
		pages = d.cfg.Pages
	}

	reviews, err := d.collector.Collect(ctx, appID, country, pages)
	if path, _ := cmd.Flags().GetString("metrics-textfile"); path != "" {
		if werr := d.metrics.WriteTextfile(path); werr != nil {
			d.logger.WithError(werr).Warn("Could not write metrics")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect reviews: %w", err)
	}

	if day, _ := cmd.Flags().GetString("day"); day != "" {
		if reviews, err = usecase.FilterByDate(reviews, day); err != nil {
			return nil, err
		}
	}
	if version, _ := cmd.Flags().GetString("app-version"); version != "" {
		if reviews, err = usecase.FilterByVersion(reviews, version); err != nil {
			return nil, err
		}
	}
	d.logger.WithField("reviews", len(reviews)).Debug("Reviews ready.")
	return reviews, nil
}

// addCollectFlags registers the flags shared by every command that fetches reviews.
func addCollectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("country", "c", usecase.DefaultCountry, "Storefront country code (us, jp, it, ...)")
	cmd.Flags().IntP("pages", "p", 1, "Number of feed pages to fetch, about 50 reviews each")
	cmd.Flags().String("day", "", "Only keep reviews updated on this day (YYYY-MM-DD)")
	cmd.Flags().String("app-version", "", "Only keep reviews written for this app version")
}
