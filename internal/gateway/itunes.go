// Package gateway provides a gateway to the App Store customer reviews feed,
// abstracting away the underlying HTTP transport and XML format.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
	"github.com/naka-gawa/itunes-app-reviews/internal/httpclient"
	"github.com/naka-gawa/itunes-app-reviews/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// DefaultBaseURL is the public host serving the customer reviews feed.
const DefaultBaseURL = "https://itunes.apple.com"

// breakerName names the circuit breaker guarding feed requests.
const breakerName = "itunes-feed"

// maxFeedBytes caps how much of a page body is read.
const maxFeedBytes = 16 << 20

// Fetcher defines the behavior of a gateway for fetching review feed pages.
type Fetcher interface {
	// FetchPage returns the reviews on one 1-indexed feed page, app entry excluded.
	FetchPage(ctx context.Context, appID, country string, page int) ([]domain.Review, error)
}

// PageError describes why a single feed page could not be fetched.
type PageError struct {
	Page int
	// StatusCode is set when the feed answered with a status outside the accepted range.
	StatusCode int
	Err        error
}

func (e *PageError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch page %d: status %d", e.Page, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Is makes every PageError match domain.ErrPageFetch.
func (e *PageError) Is(target error) bool {
	return target == domain.ErrPageFetch
}

// Config configures an ITunesGateway.
type Config struct {
	BaseURL string
	// StrictStatus accepts only 2xx responses. When false, status 300 is also accepted,
	// matching the behavior existing consumers of the feed rely on.
	StrictStatus bool
	HTTP         httpclient.Config
	Breaker      httpclient.CircuitBreakerConfig
}

// ITunesGateway is the concrete implementation of the Fetcher interface.
type ITunesGateway struct {
	client       *httpclient.CircuitBreakerClient
	baseURL      string
	strictStatus bool
	metrics      *metrics.Metrics
	logger       *logrus.Logger
}

// NewITunesGateway is a constructor that creates a new instance of ITunesGateway.
func NewITunesGateway(cfg Config, m *metrics.Metrics, logger *logrus.Logger) (Fetcher, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid feed base URL %q", domain.ErrInvalidArgument, baseURL)
	}

	breakerCfg := cfg.Breaker
	if breakerCfg.Name == "" {
		breakerCfg = httpclient.DefaultCircuitBreakerConfig(breakerName)
	}
	breakerCfg.OnStateChange = func(name string, _, to gobreaker.State) {
		m.SetBreakerState(name, to)
	}
	m.SetBreakerState(breakerCfg.Name, gobreaker.StateClosed)

	return &ITunesGateway{
		client:       httpclient.NewCircuitBreakerClient(httpclient.New(cfg.HTTP), breakerCfg, logger),
		baseURL:      strings.TrimRight(baseURL, "/"),
		strictStatus: cfg.StrictStatus,
		metrics:      m,
		logger:       logger,
	}, nil
}

// PageURL builds the feed address of one page of most recent reviews.
func (g *ITunesGateway) PageURL(appID, country string, page int) string {
	return fmt.Sprintf("%s/%s/rss/customerreviews/page=%d/id=%s/sortBy=mostRecent/xml",
		g.baseURL, url.PathEscape(country), page, url.PathEscape(appID))
}

// FetchPage downloads and parses one feed page.
func (g *ITunesGateway) FetchPage(ctx context.Context, appID, country string, page int) ([]domain.Review, error) {
	pageURL := g.PageURL(appID, country, page)
	log := g.logger.WithFields(logrus.Fields{"app_id": appID, "country": country, "page": page})
	log.Debugf("Fetching feed page %s", pageURL)

	resp, err := g.client.Get(ctx, pageURL)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			g.metrics.ObservePage(country, metrics.OutcomeStatus, 0)
			log.WithField("status", statusErr.StatusCode).Warn("Feed page returned an error status")
			return nil, &PageError{Page: page, StatusCode: statusErr.StatusCode, Err: statusErr}
		}
		g.metrics.ObservePage(country, metrics.OutcomeTransport, 0)
		log.WithError(err).Warn("Feed page request failed")
		return nil, &PageError{Page: page, Err: err}
	}

	if !g.acceptStatus(resp.StatusCode) {
		statusErr := httpclient.NewStatusError(resp)
		g.metrics.ObservePage(country, metrics.OutcomeStatus, 0)
		log.WithField("status", statusErr.StatusCode).Warn("Feed page returned an error status")
		return nil, &PageError{Page: page, StatusCode: statusErr.StatusCode, Err: statusErr}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		g.metrics.ObservePage(country, metrics.OutcomeTransport, 0)
		return nil, &PageError{Page: page, Err: fmt.Errorf("failed to read feed body: %w", err)}
	}

	reviews, err := parseFeed(body)
	if err != nil {
		g.metrics.ObservePage(country, metrics.OutcomeParse, 0)
		log.WithError(err).Warn("Feed page could not be parsed")
		return nil, &PageError{Page: page, Err: err}
	}

	g.metrics.ObservePage(country, metrics.OutcomeSuccess, len(reviews))
	log.Debugf("Completed fetching feed page with %d reviews.", len(reviews))
	return reviews, nil
}

// acceptStatus reports whether a status code counts as a successful page response.
func (g *ITunesGateway) acceptStatus(code int) bool {
	if g.strictStatus {
		return code >= http.StatusOK && code < http.StatusMultipleChoices
	}
	return code >= http.StatusOK && code <= http.StatusMultipleChoices
}
