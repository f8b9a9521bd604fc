package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopWindowSeconds_FixedWindows(t *testing.T) {
	cases := map[PostSort]int64{
		PostSortTopHour:        3600,
		PostSortTopSixHour:     6 * 3600,
		PostSortTopTwelveHour:  12 * 3600,
		PostSortTopDay:         86400,
		PostSortTopWeek:        604800,
		PostSortTopMonth:       2592000,
		PostSortTopThreeMonths: 3 * 2592000,
		PostSortTopSixMonths:   6 * 2592000,
		PostSortTopNineMonths:  9 * 2592000,
		PostSortTopYear:        31536000,
	}
	for sort, want := range cases {
		got := TopWindowSeconds(sort)
		require.NotNil(t, got, "sort %s should be time-windowed", sort)
		assert.Equal(t, want, *got, "sort %s", sort)
	}
}

func TestTopWindowSeconds_NonWindowedSorts(t *testing.T) {
	for _, sort := range []PostSort{
		PostSortActive, PostSortHot, PostSortNew, PostSortOld,
		PostSortTopAll, PostSortMostComments, PostSortNewComments,
		PostSortControversial, PostSortScaled,
	} {
		assert.Nil(t, TopWindowSeconds(sort), "sort %s", sort)
	}
}

func TestCommunityTopWindowSeconds(t *testing.T) {
	got := CommunityTopWindowSeconds(CommunitySortTopWeek)
	require.NotNil(t, got)
	assert.Equal(t, int64(604800), *got)
	assert.Nil(t, CommunityTopWindowSeconds(CommunitySortNameAsc))
	assert.Nil(t, CommunityTopWindowSeconds(CommunitySortTopAll))
}
