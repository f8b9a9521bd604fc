package lemmyv3

import (
	"fmt"
	"strconv"
)

// Most v3 list endpoints paginate by page number rather than by token.
// The adapter hides that behind the opaque cursor contract: the cursor is
// the stringified next page number, and exhaustion is inferred from a
// short page.

func pageFromCursor(cursor string) (int, error) {
	if cursor == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(cursor)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("malformed page cursor %q", cursor)
	}
	return page, nil
}

// nextPageCursor returns the cursor for the page after page, or nil when
// the current page came back short of the requested limit.
func nextPageCursor(page, count, limit int) *string {
	if count < limit {
		return nil
	}
	next := strconv.Itoa(page + 1)
	return &next
}
