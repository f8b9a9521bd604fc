package lemmyv3

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/schemas"
)

func newTestAdapter(t *testing.T, token string, handler http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	adapter, err := New(server.URL, "alcove-test/0.0", token, server.Client())
	require.NoError(t, err)
	return adapter, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

const commentViewFixture = `{
	"comment": {"id": 9, "content": "hi", "path": "0.9", "ap_id": "https://remote.example/comment/9", "published": "2025-02-01T10:00:00"},
	"post": {"id": 3, "name": "thread", "ap_id": "https://remote.example/post/3", "published": "2025-01-01T00:00:00"},
	"community": {"id": 7, "name": "books", "actor_id": "https://remote.example/c/books", "published": "2024-01-01T00:00:00"},
	"creator": {"id": 5, "name": "alice", "actor_id": "https://remote.example/u/alice", "published": "2024-01-01T00:00:00"},
	"counts": {"upvotes": 3, "downvotes": 1, "child_count": 0},
	"my_vote": -1,
	"saved": true
}`

func TestGetPostsUsesNativeSortNames(t *testing.T) {
	var gotSort string
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/post/list", r.URL.Path)
		gotSort = r.URL.Query().Get("sort")
		assert.Empty(t, r.URL.Query().Get("time_range_seconds"))
		writeJSON(t, w, http.StatusOK, `{"posts": [], "next_page": "PaginationCursor123"}`)
	})

	resp, err := adapter.GetPosts(context.Background(), schemas.GetPosts{Sort: schemas.PostSortTopWeek})
	require.NoError(t, err)
	assert.Equal(t, "TopWeek", gotSort)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, "PaginationCursor123", *resp.NextCursor)
}

func TestGetCommentsPageNumberCursor(t *testing.T) {
	pageItems := map[string]int{"1": defaultLimit, "2": 3}
	adapter, server := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/comment/list", r.URL.Path)
		n, ok := pageItems[r.URL.Query().Get("page")]
		require.True(t, ok, "unexpected page %q", r.URL.Query().Get("page"))
		views := make([]string, n)
		for i := range views {
			views[i] = commentViewFixture
		}
		writeJSON(t, w, http.StatusOK, `{"comments": [`+strings.Join(views, ",")+`]}`)
	})

	first, err := adapter.GetComments(context.Background(), schemas.GetComments{
		PostApID: server.URL + "/post/3",
	})
	require.NoError(t, err)
	require.NotNil(t, first.NextCursor, "full page implies another page")
	assert.Equal(t, "2", *first.NextCursor)

	second, err := adapter.GetComments(context.Background(), schemas.GetComments{
		PostApID:   server.URL + "/post/3",
		PageCursor: *first.NextCursor,
	})
	require.NoError(t, err)
	assert.Nil(t, second.NextCursor, "short page ends pagination")
	assert.Len(t, second.Comments, 3)

	vote := second.Comments[0].MyVote
	require.NotNil(t, vote)
	assert.Equal(t, -1, *vote)
}

func TestGetCommentsRejectsMalformedCursor(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := adapter.GetComments(context.Background(), schemas.GetComments{PageCursor: "not-a-page"})
	require.Error(t, err)
}

func TestGetSiteIncludesMyUser(t *testing.T) {
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/site", r.URL.Path)
		writeJSON(t, w, http.StatusOK, `{
			"site_view": {
				"site": {"name": "Test"},
				"local_site": {"registration_mode": "RequireApplication", "enable_downvotes": true},
				"counts": {"users": 40}
			},
			"admins": [],
			"version": "0.19.8",
			"my_user": {
				"local_user_view": {
					"person": {"id": 9, "name": "bob", "actor_id": "https://remote.example/u/bob", "published": "2024-01-01T00:00:00"},
					"local_user": {"email": "bob@example.com", "show_nsfw": true}
				},
				"follows": [{"community": {"id": 7, "name": "books", "actor_id": "https://remote.example/c/books", "published": "2024-01-01T00:00:00"}}],
				"person_blocks": [{"target": {"id": 4, "name": "troll", "actor_id": "https://remote.example/u/troll", "published": "2024-01-01T00:00:00"}}]
			}
		}`)
	})

	resp, err := adapter.GetSite(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Site.Me)
	assert.Equal(t, "bob@remote.example", resp.Site.Me.Slug)
	assert.Equal(t, schemas.RegistrationRequireApplication, resp.Site.RegistrationMode)
	assert.Equal(t, []string{"https://remote.example/c/books"}, resp.Site.Follows)
	assert.Equal(t, []string{"https://remote.example/u/troll"}, resp.Site.PersonBlocks)
	assert.True(t, resp.Site.ShowNSFW)
	assert.True(t, resp.Site.EnablePostDownvotes)
}

func TestLikePostSendsScore(t *testing.T) {
	var body map[string]any
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/post/like", r.URL.Path)
		body = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, http.StatusOK, `{"post_view": {
			"post": {"id": 3, "name": "p", "ap_id": "https://remote.example/post/3", "published": "2025-01-01T00:00:00"},
			"community": {"id": 7, "name": "books", "actor_id": "https://remote.example/c/books", "published": "2024-01-01T00:00:00"},
			"creator": {"id": 5, "name": "alice", "actor_id": "https://remote.example/u/alice", "published": "2024-01-01T00:00:00"},
			"counts": {"upvotes": 1, "downvotes": 0, "comments": 0}
		}}`)
	})

	for _, score := range []int{1, 0, -1} {
		_, err := adapter.LikePost(context.Background(), schemas.LikePost{PostID: 3, Score: score})
		require.NoError(t, err)
		assert.Equal(t, float64(score), body["score"])
	}
}

func TestLoginMFARequired(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/user/login", r.URL.Path)
		writeJSON(t, w, http.StatusBadRequest, `{"error": "missing_totp_token"}`)
	})
	_, err := adapter.Login(context.Background(), schemas.Login{Username: "alice", Password: "hunter2"})
	assert.ErrorIs(t, err, blueprint.ErrMFARequired)
}

func TestLockCommentNotImplemented(t *testing.T) {
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := adapter.LockComment(context.Background(), schemas.LockComment{CommentID: 1, Locked: true})
	assert.ErrorIs(t, err, blueprint.ErrNotImplemented)
}

func TestGetRepliesConvertsNotifications(t *testing.T) {
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/user/replies", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("unread_only"))
		writeJSON(t, w, http.StatusOK, `{"replies": [{
			"comment_reply": {"id": 77, "read": false, "published": "2025-02-02T00:00:00"},
			"comment": {"id": 9, "content": "hi", "path": "0.9", "ap_id": "https://remote.example/comment/9", "published": "2025-02-01T10:00:00"},
			"post": {"id": 3, "name": "thread", "ap_id": "https://remote.example/post/3", "published": "2025-01-01T00:00:00"},
			"community": {"id": 7, "name": "books", "actor_id": "https://remote.example/c/books", "published": "2024-01-01T00:00:00"},
			"creator": {"id": 5, "name": "alice", "actor_id": "https://remote.example/u/alice", "published": "2024-01-01T00:00:00"},
			"counts": {"upvotes": 3, "downvotes": 1, "child_count": 0}
		}]}`)
	})

	resp, err := adapter.GetReplies(context.Background(), schemas.GetReplies{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, resp.Replies, 1)
	reply := resp.Replies[0]
	assert.Equal(t, int64(77), reply.ID)
	assert.Equal(t, int64(9), reply.CommentID)
	assert.Equal(t, "thread", reply.PostName)
	assert.False(t, reply.Read)
	require.Len(t, resp.Comments, 1)
	require.Len(t, resp.Profiles, 1)
	assert.Equal(t, "alice@remote.example", resp.Profiles[0].Slug)
}

func TestPageCursorHelpers(t *testing.T) {
	page, err := pageFromCursor("")
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	page, err = pageFromCursor("4")
	require.NoError(t, err)
	assert.Equal(t, 4, page)

	for _, bad := range []string{"0", "-2", "abc"} {
		_, err := pageFromCursor(bad)
		assert.Error(t, err, fmt.Sprintf("cursor %q", bad))
	}

	assert.Nil(t, nextPageCursor(1, 10, 50))
	next := nextPageCursor(2, 50, 50)
	require.NotNil(t, next)
	assert.Equal(t, "3", *next)
}

func TestMapPostSortCoversAllSorts(t *testing.T) {
	for _, sort := range schemas.PostSorts {
		assert.NotEmpty(t, mapPostSort(sort), "post sort %q has no backend mapping", sort)
	}
}

func TestMapCommunitySortCoversAllSorts(t *testing.T) {
	for _, sort := range schemas.CommunitySorts {
		assert.NotEmpty(t, mapCommunitySort(sort), "community sort %q has no backend mapping", sort)
	}
}

func TestMapCommentSortCoversAllSorts(t *testing.T) {
	for _, sort := range schemas.CommentSorts {
		assert.NotEmpty(t, mapCommentSort(sort), "comment sort %q has no backend mapping", sort)
	}
}
