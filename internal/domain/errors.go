package domain

import "errors"

var (
	// ErrInvalidArgument is returned when a required parameter is missing or malformed.
	// Nothing is fetched or computed when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPageFetch marks the failure of a single feed page request.
	ErrPageFetch = errors.New("page fetch failed")

	// ErrRatingOutOfRange is returned by the reject rating policy for ratings outside 1..5.
	ErrRatingOutOfRange = errors.New("rating out of range")
)
