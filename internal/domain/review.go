// Package domain contains the core data structures and domain logic for the application.
package domain

// Review is a single customer review taken from one page of the App Store feed.
// It is the core domain entity of this application.
type Review struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Comment string `json:"comment"`
	// Updated keeps the feed's original timestamp text so it can be re-formatted later.
	Updated   string `json:"updated"`
	Rating    int    `json:"rating"`
	Version   string `json:"version"`
	VoteSum   int    `json:"vote_sum"`
	VoteCount int    `json:"vote_count"`
}

// MinRating and MaxRating bound the star rating a review can carry.
const (
	MinRating = 1
	MaxRating = 5
)

// Summary holds the rating statistics derived from a set of reviews.
type Summary struct {
	// Histogram always has the keys 1 through 5.
	Histogram map[int]int `json:"histogram"`
	Total     int         `json:"total"`
	// Average is rounded to two decimal places and is 0 for an empty set.
	Average float64 `json:"average"`
}
