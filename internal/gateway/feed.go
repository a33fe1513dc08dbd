package gateway

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
)

// customerReviewsFeed is the Atom document served by the customer reviews RSS endpoint.
type customerReviewsFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []feedEntry `xml:"entry"`
}

// feedEntry is one <entry>. The first entry of a page describes the app itself.
type feedEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Updated string `xml:"updated"`
	Author  struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Contents []struct {
		Type string `xml:"type,attr"`
		Body string `xml:",chardata"`
	} `xml:"content"`
	Rating    string `xml:"http://itunes.apple.com/rss rating"`
	Version   string `xml:"http://itunes.apple.com/rss version"`
	VoteSum   string `xml:"http://itunes.apple.com/rss voteSum"`
	VoteCount string `xml:"http://itunes.apple.com/rss voteCount"`
}

// comment returns the plain-text content, or the first content element if none is typed text.
func (e feedEntry) comment() string {
	for _, c := range e.Contents {
		if c.Type == "text" {
			return c.Body
		}
	}
	if len(e.Contents) > 0 {
		return e.Contents[0].Body
	}
	return ""
}

func (e feedEntry) toReview() (domain.Review, error) {
	rating, err := parseCount(e.Rating)
	if err != nil {
		return domain.Review{}, fmt.Errorf("invalid rating in entry %q: %w", e.ID, err)
	}
	voteSum, err := parseCount(e.VoteSum)
	if err != nil {
		return domain.Review{}, fmt.Errorf("invalid vote sum in entry %q: %w", e.ID, err)
	}
	voteCount, err := parseCount(e.VoteCount)
	if err != nil {
		return domain.Review{}, fmt.Errorf("invalid vote count in entry %q: %w", e.ID, err)
	}
	return domain.Review{
		ID:        strings.TrimSpace(e.ID),
		Title:     e.Title,
		Author:    e.Author.Name,
		Comment:   e.comment(),
		Updated:   strings.TrimSpace(e.Updated),
		Rating:    rating,
		Version:   strings.TrimSpace(e.Version),
		VoteSum:   voteSum,
		VoteCount: voteCount,
	}, nil
}

// parseCount reads an integer element; a missing element is 0.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseFeed decodes a feed page and returns its reviews with the leading app entry removed.
// A feed without entries yields an empty, non-nil slice.
func parseFeed(body []byte) ([]domain.Review, error) {
	var feed customerReviewsFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	if len(feed.Entries) == 0 {
		return []domain.Review{}, nil
	}
	reviews := make([]domain.Review, 0, len(feed.Entries)-1)
	for _, entry := range feed.Entries[1:] {
		review, err := entry.toReview()
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
