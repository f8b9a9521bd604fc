package resolver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_MemoizesPerApID(t *testing.T) {
	var calls int32
	r := New(func(ctx context.Context, apID string) (ObjectIDs, error) {
		atomic.AddInt32(&calls, 1)
		id := int64(42)
		return ObjectIDs{PostID: &id}, nil
	})

	ctx := context.Background()
	first, err := r.Resolve(ctx, "https://lemmy.world/post/42")
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "https://lemmy.world/post/42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must hit the cache")
}

func TestResolve_ConcurrentCallersShareOneFlight(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	r := New(func(ctx context.Context, apID string) (ObjectIDs, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		id := int64(7)
		return ObjectIDs{CommentID: &id}, nil
	})

	const waiters = 8
	var wg sync.WaitGroup
	results := make([]ObjectIDs, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Resolve(context.Background(), "https://lemmy.ml/comment/7")
		}(i)
	}
	close(release)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i].CommentID)
		assert.Equal(t, int64(7), *results[i].CommentID)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(1), "concurrent callers must share one resolution")
}

func TestResolve_ErrorsAreNotCached(t *testing.T) {
	var calls int32
	r := New(func(ctx context.Context, apID string) (ObjectIDs, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return ObjectIDs{}, errors.New("transient")
		}
		id := int64(9)
		return ObjectIDs{PersonID: &id}, nil
	})

	_, err := r.Resolve(context.Background(), "https://lemmy.ml/u/alice")
	require.Error(t, err)

	ids, err := r.Resolve(context.Background(), "https://lemmy.ml/u/alice")
	require.NoError(t, err)
	require.NotNil(t, ids.PersonID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLocalObjectIDs(t *testing.T) {
	ids, ok := LocalObjectIDs("https://lemmy.world", "https://lemmy.world/post/123")
	require.True(t, ok)
	require.NotNil(t, ids.PostID)
	assert.Equal(t, int64(123), *ids.PostID)

	ids, ok = LocalObjectIDs("https://lemmy.world/", "https://lemmy.world/comment/456")
	require.True(t, ok)
	require.NotNil(t, ids.CommentID)
	assert.Equal(t, int64(456), *ids.CommentID)

	_, ok = LocalObjectIDs("https://lemmy.world", "https://other.host/post/123")
	assert.False(t, ok, "remote apIds need remote resolution")

	_, ok = LocalObjectIDs("https://lemmy.world", "https://lemmy.world/c/technology")
	assert.False(t, ok, "community apIds carry names, not numeric ids")
}
