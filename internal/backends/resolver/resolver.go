// Package resolver memoizes apId-to-numeric-id resolution for one adapter
// instance. Federated identifiers are URLs, but most backend RPCs want the
// instance-local numeric id, so adapters resolve through here: local apIds
// short-circuit to a pure URL parse, remote ones go through the backend's
// federation-resolution endpoint exactly once per distinct apId.
package resolver

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ObjectIDs carries whichever numeric ids a resolution produced. At most
// one field is set for a given apId.
type ObjectIDs struct {
	PostID      *int64
	CommentID   *int64
	CommunityID *int64
	PersonID    *int64
}

// Func performs the remote resolution for an apId not local to the
// adapter's instance.
type Func func(ctx context.Context, apID string) (ObjectIDs, error)

// Resolver caches successful resolutions for the adapter's lifetime.
// Concurrent callers for the same unresolved apId share a single in-flight
// call. The cache has no eviction: keys are the finite set of apIds one
// session touches, so unbounded growth is acceptable; dropping the whole
// resolver only costs repeat lookups, never correctness.
type Resolver struct {
	fn    Func
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]ObjectIDs
}

// New creates a resolver around a remote resolution function.
func New(fn Func) *Resolver {
	return &Resolver{
		fn:    fn,
		cache: make(map[string]ObjectIDs),
	}
}

// Resolve returns the numeric ids for an apId, consulting the cache first.
// Errors are not cached; a later call retries the remote resolution.
func (r *Resolver) Resolve(ctx context.Context, apID string) (ObjectIDs, error) {
	r.mu.RLock()
	ids, ok := r.cache[apID]
	r.mu.RUnlock()
	if ok {
		return ids, nil
	}

	result, err, _ := r.group.Do(apID, func() (any, error) {
		// Re-check under the flight: a previous winner may have filled
		// the cache between our miss and this call.
		r.mu.RLock()
		ids, ok := r.cache[apID]
		r.mu.RUnlock()
		if ok {
			return ids, nil
		}

		ids, err := r.fn(ctx, apID)
		if err != nil {
			return ObjectIDs{}, err
		}

		r.mu.Lock()
		r.cache[apID] = ids
		r.mu.Unlock()
		return ids, nil
	})
	if err != nil {
		return ObjectIDs{}, err
	}
	return result.(ObjectIDs), nil
}

var localApIDPattern = regexp.MustCompile(`^/(post|comment)/(\d+)$`)

// LocalObjectIDs derives numeric ids from an apId that is local to the
// given instance, without any network call. Only posts and comments embed
// their numeric id in the URL; community and person apIds carry names and
// always need remote resolution. Returns false when the apId is not local
// or has no derivable id.
func LocalObjectIDs(instance, apID string) (ObjectIDs, bool) {
	base := strings.TrimRight(instance, "/")
	if !strings.HasPrefix(apID, base+"/") {
		return ObjectIDs{}, false
	}
	m := localApIDPattern.FindStringSubmatch(strings.TrimPrefix(apID, base))
	if m == nil {
		return ObjectIDs{}, false
	}
	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return ObjectIDs{}, false
	}
	switch m[1] {
	case "post":
		return ObjectIDs{PostID: &id}, true
	case "comment":
		return ObjectIDs{CommentID: &id}, true
	}
	return ObjectIDs{}, false
}
