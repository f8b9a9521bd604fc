package lemmyv4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Alcove/internal/schemas"
)

func TestMapPostSortCoversAllSorts(t *testing.T) {
	for _, sort := range schemas.PostSorts {
		mapped := mapPostSort(sort)
		assert.NotEmpty(t, mapped.Sort, "post sort %q has no backend mapping", sort)
	}
}

func TestMapPostSortTopWindows(t *testing.T) {
	tests := []struct {
		sort    schemas.PostSort
		apiSort string
		window  *int64
	}{
		{schemas.PostSortHot, "Hot", nil},
		{schemas.PostSortActive, "Active", nil},
		{schemas.PostSortTopAll, "Top", nil},
		{schemas.PostSortTopHour, "Top", int64Ptr(3600)},
		{schemas.PostSortTopSixHour, "Top", int64Ptr(6 * 3600)},
		{schemas.PostSortTopTwelveHour, "Top", int64Ptr(12 * 3600)},
		{schemas.PostSortTopDay, "Top", int64Ptr(86400)},
		{schemas.PostSortTopWeek, "Top", int64Ptr(604800)},
		{schemas.PostSortTopMonth, "Top", int64Ptr(2592000)},
		{schemas.PostSortTopThreeMonths, "Top", int64Ptr(3 * 2592000)},
		{schemas.PostSortTopSixMonths, "Top", int64Ptr(6 * 2592000)},
		{schemas.PostSortTopNineMonths, "Top", int64Ptr(9 * 2592000)},
		{schemas.PostSortTopYear, "Top", int64Ptr(31536000)},
		{schemas.PostSortMostComments, "MostComments", nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			mapped := mapPostSort(tt.sort)
			assert.Equal(t, tt.apiSort, mapped.Sort)
			if tt.window == nil {
				assert.Nil(t, mapped.TimeRangeSeconds)
			} else {
				require.NotNil(t, mapped.TimeRangeSeconds)
				assert.Equal(t, *tt.window, *mapped.TimeRangeSeconds)
			}
		})
	}
}

func TestMapPostSortEmptyAndUnknown(t *testing.T) {
	assert.Empty(t, mapPostSort("").Sort)
	assert.Equal(t, "Hot", mapPostSort(schemas.PostSort("Bogus")).Sort)
}

func TestMapCommunitySortCoversAllSorts(t *testing.T) {
	for _, sort := range schemas.CommunitySorts {
		mapped := mapCommunitySort(sort)
		assert.NotEmpty(t, mapped.Sort, "community sort %q has no backend mapping", sort)
	}
}

func TestMapCommunitySortTopBySubscribers(t *testing.T) {
	mapped := mapCommunitySort(schemas.CommunitySortTopWeek)
	assert.Equal(t, "Subscribers", mapped.Sort)
	require.NotNil(t, mapped.TimeRangeSeconds)
	assert.Equal(t, int64(604800), *mapped.TimeRangeSeconds)

	all := mapCommunitySort(schemas.CommunitySortTopAll)
	assert.Equal(t, "Subscribers", all.Sort)
	assert.Nil(t, all.TimeRangeSeconds)
}

func TestMapCommentSortCoversAllSorts(t *testing.T) {
	for _, sort := range schemas.CommentSorts {
		assert.NotEmpty(t, mapCommentSort(sort), "comment sort %q has no backend mapping", sort)
	}
}

func int64Ptr(v int64) *int64 { return &v }
