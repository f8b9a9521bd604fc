package schemas

import "time"

// PostSort is the normalized post sort. It is a superset of what any single
// backend supports: the Top* variants distinguish time windows that some
// backends express as one generic "Top" sort plus an explicit range.
type PostSort string

const (
	PostSortActive         PostSort = "Active"
	PostSortHot            PostSort = "Hot"
	PostSortNew            PostSort = "New"
	PostSortOld            PostSort = "Old"
	PostSortTopAll         PostSort = "TopAll"
	PostSortTopHour        PostSort = "TopHour"
	PostSortTopSixHour     PostSort = "TopSixHour"
	PostSortTopTwelveHour  PostSort = "TopTwelveHour"
	PostSortTopDay         PostSort = "TopDay"
	PostSortTopWeek        PostSort = "TopWeek"
	PostSortTopMonth       PostSort = "TopMonth"
	PostSortTopThreeMonths PostSort = "TopThreeMonths"
	PostSortTopSixMonths   PostSort = "TopSixMonths"
	PostSortTopNineMonths  PostSort = "TopNineMonths"
	PostSortTopYear        PostSort = "TopYear"
	PostSortMostComments   PostSort = "MostComments"
	PostSortNewComments    PostSort = "NewComments"
	PostSortControversial  PostSort = "Controversial"
	PostSortScaled         PostSort = "Scaled"
)

// PostSorts lists every normalized post sort. Order matters: it is the
// order sorts are offered to the presentation layer.
var PostSorts = []PostSort{
	PostSortActive,
	PostSortHot,
	PostSortNew,
	PostSortOld,
	PostSortTopAll,
	PostSortTopHour,
	PostSortTopSixHour,
	PostSortTopTwelveHour,
	PostSortTopDay,
	PostSortTopWeek,
	PostSortTopMonth,
	PostSortTopThreeMonths,
	PostSortTopSixMonths,
	PostSortTopNineMonths,
	PostSortTopYear,
	PostSortMostComments,
	PostSortNewComments,
	PostSortControversial,
	PostSortScaled,
}

// CommentSort is the normalized comment sort.
type CommentSort string

const (
	CommentSortHot           CommentSort = "Hot"
	CommentSortTop           CommentSort = "Top"
	CommentSortNew           CommentSort = "New"
	CommentSortOld           CommentSort = "Old"
	CommentSortControversial CommentSort = "Controversial"
)

var CommentSorts = []CommentSort{
	CommentSortHot,
	CommentSortTop,
	CommentSortNew,
	CommentSortOld,
	CommentSortControversial,
}

// CommunitySort is the normalized community-list sort.
type CommunitySort string

const (
	CommunitySortActiveSixMonths CommunitySort = "ActiveSixMonths"
	CommunitySortActiveMonthly   CommunitySort = "ActiveMonthly"
	CommunitySortActiveWeekly    CommunitySort = "ActiveWeekly"
	CommunitySortActiveDaily     CommunitySort = "ActiveDaily"
	CommunitySortHot             CommunitySort = "Hot"
	CommunitySortNew             CommunitySort = "New"
	CommunitySortOld             CommunitySort = "Old"
	CommunitySortTopAll          CommunitySort = "TopAll"
	CommunitySortTopHour         CommunitySort = "TopHour"
	CommunitySortTopSixHour      CommunitySort = "TopSixHour"
	CommunitySortTopTwelveHour   CommunitySort = "TopTwelveHour"
	CommunitySortTopDay          CommunitySort = "TopDay"
	CommunitySortTopWeek         CommunitySort = "TopWeek"
	CommunitySortTopMonth        CommunitySort = "TopMonth"
	CommunitySortTopThreeMonths  CommunitySort = "TopThreeMonths"
	CommunitySortTopSixMonths    CommunitySort = "TopSixMonths"
	CommunitySortTopNineMonths   CommunitySort = "TopNineMonths"
	CommunitySortTopYear         CommunitySort = "TopYear"
	CommunitySortMostComments    CommunitySort = "MostComments"
	CommunitySortMostPosts       CommunitySort = "MostPosts"
	CommunitySortNameAsc         CommunitySort = "NameAsc"
	CommunitySortNameDesc        CommunitySort = "NameDesc"
)

var CommunitySorts = []CommunitySort{
	CommunitySortActiveSixMonths,
	CommunitySortActiveMonthly,
	CommunitySortActiveWeekly,
	CommunitySortActiveDaily,
	CommunitySortHot,
	CommunitySortNew,
	CommunitySortOld,
	CommunitySortTopAll,
	CommunitySortTopHour,
	CommunitySortTopSixHour,
	CommunitySortTopTwelveHour,
	CommunitySortTopDay,
	CommunitySortTopWeek,
	CommunitySortTopMonth,
	CommunitySortTopThreeMonths,
	CommunitySortTopSixMonths,
	CommunitySortTopNineMonths,
	CommunitySortTopYear,
	CommunitySortMostComments,
	CommunitySortMostPosts,
	CommunitySortNameAsc,
	CommunitySortNameDesc,
}

// ListingType scopes a feed or community listing.
type ListingType string

const (
	ListingAll           ListingType = "All"
	ListingLocal         ListingType = "Local"
	ListingSubscribed    ListingType = "Subscribed"
	ListingModeratorView ListingType = "ModeratorView"
)

// SearchType selects what a search query returns.
type SearchType string

const (
	SearchAll         SearchType = "All"
	SearchPosts       SearchType = "Posts"
	SearchComments    SearchType = "Comments"
	SearchCommunities SearchType = "Communities"
	SearchUsers       SearchType = "Users"
)

// Fixed time windows for the Top* sorts, in seconds. Month is approximated
// at 30 days, matching the windows the backends themselves use.
const (
	WindowHour  = int64(time.Hour / time.Second)
	WindowDay   = 24 * WindowHour
	WindowWeek  = 7 * WindowDay
	WindowMonth = 30 * WindowDay
	WindowYear  = 365 * WindowDay
)

// TopWindowSeconds returns the time window for a Top* post sort, or nil for
// sorts that are not time-windowed (including TopAll, which spans all time).
func TopWindowSeconds(sort PostSort) *int64 {
	return topWindow(string(sort))
}

// CommunityTopWindowSeconds is TopWindowSeconds for community sorts.
func CommunityTopWindowSeconds(sort CommunitySort) *int64 {
	return topWindow(string(sort))
}

func topWindow(sort string) *int64 {
	var secs int64
	switch sort {
	case "TopHour":
		secs = WindowHour
	case "TopSixHour":
		secs = 6 * WindowHour
	case "TopTwelveHour":
		secs = 12 * WindowHour
	case "TopDay":
		secs = WindowDay
	case "TopWeek":
		secs = WindowWeek
	case "TopMonth":
		secs = WindowMonth
	case "TopThreeMonths":
		secs = 3 * WindowMonth
	case "TopSixMonths":
		secs = 6 * WindowMonth
	case "TopNineMonths":
		secs = 9 * WindowMonth
	case "TopYear":
		secs = WindowYear
	default:
		return nil
	}
	return &secs
}
