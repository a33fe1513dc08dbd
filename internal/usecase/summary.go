package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
)

// RatingPolicy decides what Summarize does with a rating outside 1..5.
type RatingPolicy int

const (
	// RatingIgnore counts the review in the total but in no histogram bucket.
	RatingIgnore RatingPolicy = iota
	// RatingClamp moves the rating to the nearest valid star count.
	RatingClamp
	// RatingReject fails the whole summary with domain.ErrRatingOutOfRange.
	RatingReject
)

// ParseRatingPolicy maps a policy name from configuration or flags to a RatingPolicy.
func ParseRatingPolicy(name string) (RatingPolicy, error) {
	switch name {
	case "", "ignore":
		return RatingIgnore, nil
	case "clamp":
		return RatingClamp, nil
	case "reject":
		return RatingReject, nil
	default:
		return RatingIgnore, fmt.Errorf("%w: unknown rating policy %q", domain.ErrInvalidArgument, name)
	}
}

// Summarize builds the star histogram, the review count and the average rating.
// An empty set has an average of 0.
func Summarize(reviews []domain.Review, policy RatingPolicy) (domain.Summary, error) {
	if reviews == nil {
		return domain.Summary{}, fmt.Errorf("%w: reviews are required", domain.ErrInvalidArgument)
	}

	histogram := make(map[int]int, domain.MaxRating)
	for star := domain.MinRating; star <= domain.MaxRating; star++ {
		histogram[star] = 0
	}

	// weighted holds one value per review so that Mean divides by the full total.
	weighted := make(stats.Float64Data, 0, len(reviews))
	for _, review := range reviews {
		rating := review.Rating
		if rating < domain.MinRating || rating > domain.MaxRating {
			switch policy {
			case RatingReject:
				return domain.Summary{}, fmt.Errorf("%w: review %q has rating %d", domain.ErrRatingOutOfRange, review.ID, rating)
			case RatingClamp:
				rating = min(max(rating, domain.MinRating), domain.MaxRating)
			default:
				weighted = append(weighted, 0)
				continue
			}
		}
		histogram[rating]++
		weighted = append(weighted, float64(rating))
	}

	summary := domain.Summary{Histogram: histogram, Total: len(reviews)}
	if summary.Total == 0 {
		return summary, nil
	}

	mean, err := stats.Mean(weighted)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to compute average rating: %w", err)
	}
	summary.Average, err = stats.Round(mean, 2)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to round average rating: %w", err)
	}
	return summary, nil
}
