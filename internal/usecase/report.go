package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
	"github.com/naka-gawa/itunes-app-reviews/internal/render"
)

// Template is a pair of placeholder templates: Header is rendered once, Entry once per review.
type Template struct {
	Header string
	Entry  string
}

// ReportDefaults are the constant tables a Reporter renders with.
type ReportDefaults struct {
	Title     string
	Separator string
	// Icons holds the star glyph for ratings 1 through 5 at indexes 0 through 4.
	Icons    [domain.MaxRating]string
	Template Template
}

// DefaultReportDefaults returns the built-in title, star glyphs and report template.
func DefaultReportDefaults() ReportDefaults {
	return ReportDefaults{
		Title:     "iTunes Review Report",
		Separator: "\n",
		Icons:     [domain.MaxRating]string{"★", "★★", "★★★", "★★★★", "★★★★★"},
		Template: Template{
			Header: "{title} {day}{separator}" +
				"total:{summary.total} avg:{summary.average}{separator}" +
				"{icon.s1} {summary.rating.s1} {icon.s2} {summary.rating.s2} {icon.s3} {summary.rating.s3} " +
				"{icon.s4} {summary.rating.s4} {icon.s5} {summary.rating.s5}{separator}{separator}",
			Entry: "{entry.title} by {entry.author}{separator}" +
				"{entry.rating.icon}{separator}" +
				"{entry.comment}{separator}" +
				"{entry.updated} {entry.version}{separator}{separator}",
		},
	}
}

// ReportOptions tunes a single Report call. Zero values fall back to the Reporter's defaults.
type ReportOptions struct {
	Separator string
	// Sepalator is the historical spelling of Separator. Separator wins when both are set.
	Sepalator string
	Day       string
	Template  *Template
	Policy    RatingPolicy
}

func (o ReportOptions) separator(fallback string) string {
	switch {
	case o.Separator != "":
		return o.Separator
	case o.Sepalator != "":
		return o.Sepalator
	default:
		return fallback
	}
}

// Reporter renders reviews into a text report.
type Reporter struct {
	defaults ReportDefaults
}

// NewReporter creates a Reporter using the given defaults.
func NewReporter(defaults ReportDefaults) *Reporter {
	return &Reporter{defaults: defaults}
}

// Report renders the header template once and the entry template for every review in order.
func (r *Reporter) Report(reviews []domain.Review, opts ReportOptions) (string, error) {
	if reviews == nil {
		return "", fmt.Errorf("%w: reviews are required", domain.ErrInvalidArgument)
	}
	summary, err := Summarize(reviews, opts.Policy)
	if err != nil {
		return "", err
	}

	tmpl := r.defaults.Template
	if opts.Template != nil {
		tmpl = *opts.Template
	}
	separator := opts.separator(r.defaults.Separator)
	icons := r.iconContext()

	var sb strings.Builder
	sb.WriteString(render.Render(tmpl.Header, render.Context{
		"title":     r.defaults.Title,
		"day":       opts.Day,
		"icon":      icons,
		"summary":   summaryContext(summary),
		"separator": separator,
		"sepalator": separator,
	}))
	for _, review := range reviews {
		sb.WriteString(render.Render(tmpl.Entry, render.Context{
			"title":     r.defaults.Title,
			"day":       opts.Day,
			"icon":      icons,
			"entry":     r.entryContext(review),
			"separator": separator,
			"sepalator": separator,
		}))
	}
	return sb.String(), nil
}

func (r *Reporter) iconContext() map[string]any {
	icons := make(map[string]any, len(r.defaults.Icons))
	for i, glyph := range r.defaults.Icons {
		icons[starKey(i+1)] = glyph
	}
	return icons
}

func (r *Reporter) entryContext(review domain.Review) map[string]any {
	var icon string
	if review.Rating >= domain.MinRating && review.Rating <= domain.MaxRating {
		icon = r.defaults.Icons[review.Rating-1]
	}
	return map[string]any{
		"id":      review.ID,
		"title":   review.Title,
		"author":  review.Author,
		"comment": review.Comment,
		"updated": displayTimestamp(review.Updated),
		"version": "v" + review.Version,
		"rating": map[string]any{
			"icon":   icon,
			"number": review.Rating,
		},
	}
}

func summaryContext(summary domain.Summary) map[string]any {
	ratings := make(map[string]any, len(summary.Histogram))
	for star := domain.MinRating; star <= domain.MaxRating; star++ {
		ratings[starKey(star)] = summary.Histogram[star]
	}
	return map[string]any{
		"total":   summary.Total,
		"average": summary.Average,
		"rating":  ratings,
	}
}

func starKey(star int) string {
	return "s" + strconv.Itoa(star)
}

// displayTimestamp formats a feed timestamp as "2006-01-02 3:04:05 PM".
// Text that is not a recognised timestamp is shown unchanged.
func displayTimestamp(updated string) string {
	t, ok := parseTimestamp(updated)
	if !ok {
		return updated
	}
	return t.Format("2006-01-02 3:04:05 PM")
}
