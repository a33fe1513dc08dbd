package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
)

const dayLayout = "2006-01-02"

// timestampLayouts lists the timestamp spellings accepted for review dates and day arguments.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04:05 PM",
	dayLayout,
	"2006/01/02",
}

// parseTimestamp parses s with the first matching layout. The parsed time keeps the
// offset written in s, so its calendar date is the one the feed reported.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeDay reduces a timestamp to its YYYY-MM-DD calendar date.
// Unparseable text is returned trimmed so it can still be compared verbatim.
func normalizeDay(s string) string {
	if t, ok := parseTimestamp(s); ok {
		return t.Format(dayLayout)
	}
	return strings.TrimSpace(s)
}

// FilterByDate keeps the reviews updated on the same calendar date as day.
func FilterByDate(reviews []domain.Review, day string) ([]domain.Review, error) {
	if reviews == nil {
		return nil, fmt.Errorf("%w: reviews are required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(day) == "" {
		return nil, fmt.Errorf("%w: day is required", domain.ErrInvalidArgument)
	}
	want := normalizeDay(day)
	filtered := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if normalizeDay(review.Updated) == want {
			filtered = append(filtered, review)
		}
	}
	return filtered, nil
}

// FilterByVersion keeps the reviews written against exactly the given app version.
func FilterByVersion(reviews []domain.Review, version string) ([]domain.Review, error) {
	if reviews == nil {
		return nil, fmt.Errorf("%w: reviews are required", domain.ErrInvalidArgument)
	}
	if version == "" {
		return nil, fmt.Errorf("%w: version is required", domain.ErrInvalidArgument)
	}
	filtered := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.Version == version {
			filtered = append(filtered, review)
		}
	}
	return filtered, nil
}
