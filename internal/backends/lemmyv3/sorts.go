package lemmyv3

import "Alcove/internal/schemas"

// v3 keeps the time-windowed Top* variants as first-class sort enum
// values, so post sorts map onto the backend names directly.

var postSortTable = map[schemas.PostSort]string{
	schemas.PostSortActive:         "Active",
	schemas.PostSortHot:            "Hot",
	schemas.PostSortNew:            "New",
	schemas.PostSortOld:            "Old",
	schemas.PostSortTopAll:         "TopAll",
	schemas.PostSortTopHour:        "TopHour",
	schemas.PostSortTopSixHour:     "TopSixHour",
	schemas.PostSortTopTwelveHour:  "TopTwelveHour",
	schemas.PostSortTopDay:         "TopDay",
	schemas.PostSortTopWeek:        "TopWeek",
	schemas.PostSortTopMonth:       "TopMonth",
	schemas.PostSortTopThreeMonths: "TopThreeMonths",
	schemas.PostSortTopSixMonths:   "TopSixMonths",
	schemas.PostSortTopNineMonths:  "TopNineMonths",
	schemas.PostSortTopYear:        "TopYear",
	schemas.PostSortMostComments:   "MostComments",
	schemas.PostSortNewComments:    "NewComments",
	schemas.PostSortControversial:  "Controversial",
	schemas.PostSortScaled:         "Scaled",
}

func mapPostSort(sort schemas.PostSort) string {
	if sort == "" {
		return ""
	}
	apiSort, ok := postSortTable[sort]
	if !ok {
		apiSort = "Hot"
	}
	return apiSort
}

// v3 has no dedicated community sort enum; listings take the post sort
// names. Activity-window and name sorts without a v3 equivalent fall back
// to the closest ranking.
var communitySortTable = map[schemas.CommunitySort]string{
	schemas.CommunitySortActiveSixMonths: "Active",
	schemas.CommunitySortActiveMonthly:   "Active",
	schemas.CommunitySortActiveWeekly:    "Active",
	schemas.CommunitySortActiveDaily:     "Active",
	schemas.CommunitySortHot:             "Hot",
	schemas.CommunitySortNew:             "New",
	schemas.CommunitySortOld:             "Old",
	schemas.CommunitySortNameAsc:         "NameAsc",
	schemas.CommunitySortNameDesc:        "NameDesc",
	schemas.CommunitySortMostComments:    "MostComments",
	schemas.CommunitySortMostPosts:       "TopAll",
	schemas.CommunitySortTopAll:          "TopAll",
	schemas.CommunitySortTopHour:         "TopHour",
	schemas.CommunitySortTopSixHour:      "TopSixHour",
	schemas.CommunitySortTopTwelveHour:   "TopTwelveHour",
	schemas.CommunitySortTopDay:          "TopDay",
	schemas.CommunitySortTopWeek:         "TopWeek",
	schemas.CommunitySortTopMonth:        "TopMonth",
	schemas.CommunitySortTopThreeMonths:  "TopThreeMonths",
	schemas.CommunitySortTopSixMonths:    "TopSixMonths",
	schemas.CommunitySortTopNineMonths:   "TopNineMonths",
	schemas.CommunitySortTopYear:         "TopYear",
}

func mapCommunitySort(sort schemas.CommunitySort) string {
	if sort == "" {
		return ""
	}
	apiSort, ok := communitySortTable[sort]
	if !ok {
		apiSort = "TopAll"
	}
	return apiSort
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
