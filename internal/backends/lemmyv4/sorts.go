package lemmyv4

import "Alcove/internal/schemas"

// Lemmy v4 collapsed the time-windowed Top* sorts into a single "Top"
// enum plus an explicit time_range_seconds parameter. The mapping tables
// below are total over the normalized sort domains: an unmapped input is
// a defect, so lookups fall back to a defined backend value rather than
// sending an empty sort.

type mappedSort struct {
	Sort             string
	TimeRangeSeconds *int64
}

var postSortTable = map[schemas.PostSort]string{
	schemas.PostSortActive:         "Active",
	schemas.PostSortHot:            "Hot",
	schemas.PostSortNew:            "New",
	schemas.PostSortOld:            "Old",
	schemas.PostSortTopAll:         "Top",
	schemas.PostSortTopHour:        "Top",
	schemas.PostSortTopSixHour:     "Top",
	schemas.PostSortTopTwelveHour:  "Top",
	schemas.PostSortTopDay:         "Top",
	schemas.PostSortTopWeek:        "Top",
	schemas.PostSortTopMonth:       "Top",
	schemas.PostSortTopThreeMonths: "Top",
	schemas.PostSortTopSixMonths:   "Top",
	schemas.PostSortTopNineMonths:  "Top",
	schemas.PostSortTopYear:        "Top",
	schemas.PostSortMostComments:   "MostComments",
	schemas.PostSortNewComments:    "NewComments",
	schemas.PostSortControversial:  "Controversial",
	schemas.PostSortScaled:         "Scaled",
}

// mapPostSort maps a normalized post sort onto the backend enum and its
// derived time window. The empty sort maps to no sort parameter at all.
func mapPostSort(sort schemas.PostSort) mappedSort {
	if sort == "" {
		return mappedSort{}
	}
	apiSort, ok := postSortTable[sort]
	if !ok {
		apiSort = "Hot"
	}
	return mappedSort{
		Sort:             apiSort,
		TimeRangeSeconds: schemas.TopWindowSeconds(sort),
	}
}

var communitySortTable = map[schemas.CommunitySort]string{
	schemas.CommunitySortActiveSixMonths: "ActiveSixMonths",
	schemas.CommunitySortActiveMonthly:   "ActiveMonthly",
	schemas.CommunitySortActiveWeekly:    "ActiveWeekly",
	schemas.CommunitySortActiveDaily:     "ActiveDaily",
	schemas.CommunitySortHot:             "Hot",
	schemas.CommunitySortNew:             "New",
	schemas.CommunitySortOld:             "Old",
	schemas.CommunitySortNameAsc:         "NameAsc",
	schemas.CommunitySortNameDesc:        "NameDesc",
	schemas.CommunitySortMostComments:    "Comments",
	schemas.CommunitySortMostPosts:       "Posts",
	schemas.CommunitySortTopAll:          "Subscribers",
	schemas.CommunitySortTopHour:         "Subscribers",
	schemas.CommunitySortTopSixHour:      "Subscribers",
	schemas.CommunitySortTopTwelveHour:   "Subscribers",
	schemas.CommunitySortTopDay:          "Subscribers",
	schemas.CommunitySortTopWeek:         "Subscribers",
	schemas.CommunitySortTopMonth:        "Subscribers",
	schemas.CommunitySortTopThreeMonths:  "Subscribers",
	schemas.CommunitySortTopSixMonths:    "Subscribers",
	schemas.CommunitySortTopNineMonths:   "Subscribers",
	schemas.CommunitySortTopYear:         "Subscribers",
}

func mapCommunitySort(sort schemas.CommunitySort) mappedSort {
	if sort == "" {
		return mappedSort{}
	}
	apiSort, ok := communitySortTable[sort]
	if !ok {
		apiSort = "Hot"
	}
	return mappedSort{
		Sort:             apiSort,
		TimeRangeSeconds: schemas.CommunityTopWindowSeconds(sort),
	}
}

var commentSortTable = map[schemas.CommentSort]string{
	schemas.CommentSortHot:           "Hot",
	schemas.CommentSortTop:           "Top",
	schemas.CommentSortNew:           "New",
	schemas.CommentSortOld:           "Old",
	schemas.CommentSortControversial: "Controversial",
}

func mapCommentSort(sort schemas.CommentSort) string {
	if sort == "" {
		return ""
	}
	apiSort, ok := commentSortTable[sort]
	if !ok {
		apiSort = "Hot"
	}
	return apiSort
}

var listingTypeTable = map[schemas.ListingType]string{
	schemas.ListingAll:           "All",
	schemas.ListingLocal:         "Local",
	schemas.ListingSubscribed:    "Subscribed",
	schemas.ListingModeratorView: "ModeratorView",
}

func mapListingType(t schemas.ListingType) string {
	return listingTypeTable[t]
}
