package usecase

import (
	"testing"

	"github.com/naka-gawa/itunes-app-reviews/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByDate(t *testing.T) {
	testCases := []struct {
		name     string
		reviews  []domain.Review
		day      string
		expected []domain.Review
	}{
		{
			name:     "keeps reviews on the same day",
			reviews:  []domain.Review{{Updated: "2015-01-25"}, {Updated: "2015-01-26"}},
			day:      "2015-01-26",
			expected: []domain.Review{{Updated: "2015-01-26"}},
		},
		{
			name: "ignores time of day and keeps order",
			reviews: []domain.Review{
				{ID: "1", Updated: "2015-01-26T23:59:59-07:00"},
				{ID: "2", Updated: "2015-01-27T00:00:01-07:00"},
				{ID: "3", Updated: "2015-01-26 9:00:00 AM"},
			},
			day: "2015-01-26T12:00:00Z",
			expected: []domain.Review{
				{ID: "1", Updated: "2015-01-26T23:59:59-07:00"},
				{ID: "3", Updated: "2015-01-26 9:00:00 AM"},
			},
		},
		{
			name:     "accepts slash separated days",
			reviews:  []domain.Review{{Updated: "2015-01-26T08:00:00-07:00"}},
			day:      "2015/01/26",
			expected: []domain.Review{{Updated: "2015-01-26T08:00:00-07:00"}},
		},
		{
			name:     "no match is an empty collection",
			reviews:  []domain.Review{{Updated: "2015-01-25"}},
			day:      "2015-01-26",
			expected: []domain.Review{},
		},
		{
			name:     "unparseable timestamps are compared verbatim",
			reviews:  []domain.Review{{Updated: "yesterday"}, {Updated: "today"}},
			day:      "today",
			expected: []domain.Review{{Updated: "today"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered, err := FilterByDate(tc.reviews, tc.day)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, filtered)

			again, err := FilterByDate(filtered, tc.day)
			require.NoError(t, err)
			assert.Equal(t, filtered, again)
		})
	}
}

func TestFilterByDate_InvalidArguments(t *testing.T) {
	_, err := FilterByDate(nil, "2015-01-26")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = FilterByDate([]domain.Review{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestFilterByVersion(t *testing.T) {
	reviews := []domain.Review{{Version: "5.0.1"}, {Version: "5.0.0"}, {Version: "5.0"}}

	filtered, err := FilterByVersion(reviews, "5.0.0")
	require.NoError(t, err)
	assert.Equal(t, []domain.Review{{Version: "5.0.0"}}, filtered)

	again, err := FilterByVersion(filtered, "5.0.0")
	require.NoError(t, err)
	assert.Equal(t, filtered, again)

	none, err := FilterByVersion(reviews, "6.20")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestFilterByVersion_InvalidArguments(t *testing.T) {
	_, err := FilterByVersion(nil, "5.0.0")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = FilterByVersion([]domain.Review{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestFilterByDate_Idempotent(t *testing.T) {
	reviews := []domain.Review{
		{ID: "1", Updated: "2015-01-26T23:30:00-07:00"},
		{ID: "2", Updated: "2015-01-27T06:30:00+09:00"},
		{ID: "3", Updated: "2015-01-26T00:00:00Z"},
		{ID: "4", Updated: "2015-01-26 9:00:00 PM"},
		{ID: "5", Updated: "2015/01/26"},
		{ID: "6", Updated: "last tuesday"},
		{ID: "7", Updated: ""},
	}

	testCases := []struct {
		name        string
		day         string
		expectedIDs []string
	}{
		{name: "plain day", day: "2015-01-26", expectedIDs: []string{"1", "3", "4", "5"}},
		{name: "timestamp with offset", day: "2015-01-27T01:00:00+09:00", expectedIDs: []string{"2"}},
		{name: "unparseable text", day: "last tuesday", expectedIDs: []string{"6"}},
		{name: "no match", day: "2016-01-01", expectedIDs: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			once, err := FilterByDate(reviews, tc.day)
			require.NoError(t, err)
			twice, err := FilterByDate(once, tc.day)
			require.NoError(t, err)

			assert.Equal(t, once, twice)
			ids := make([]string, 0, len(once))
			for _, review := range once {
				ids = append(ids, review.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestFilterByVersion_Idempotent(t *testing.T) {
	reviews := []domain.Review{
		{ID: "1", Version: "5.0.1"},
		{ID: "2", Version: "5.0.0"},
		{ID: "3", Version: "5.0.1"},
		{ID: "4", Version: "5.0.1 "},
		{ID: "5", Version: ""},
		{ID: "6", Version: "6.20"},
	}

	testCases := []struct {
		name        string
		version     string
		expectedIDs []string
	}{
		{name: "repeated version", version: "5.0.1", expectedIDs: []string{"1", "3"}},
		{name: "single version", version: "6.20", expectedIDs: []string{"6"}},
		{name: "no match", version: "7.0", expectedIDs: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			once, err := FilterByVersion(reviews, tc.version)
			require.NoError(t, err)
			twice, err := FilterByVersion(once, tc.version)
			require.NoError(t, err)

			assert.Equal(t, once, twice)
			ids := make([]string, 0, len(once))
			for _, review := range once {
				ids = append(ids, review.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}
