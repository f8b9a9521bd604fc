package lemmyv4

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/schemas"
)

const testUserAgent = "alcove-test/0.0"

func newTestAdapter(t *testing.T, token string, handler http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	adapter, err := New(server.URL, testUserAgent, token, server.Client())
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

const postViewFixture = `{
	"post": {
		"id": 123,
		"name": "A post",
		"ap_id": "https://remote.example/post/123",
		"published_at": "2025-03-01T12:00:00Z",
		"upvotes": 10,
		"downvotes": 2,
		"comments": 4,
		"nsfw": false
	},
	"community": {
		"id": 7,
		"name": "books",
		"ap_id": "https://remote.example/c/books",
		"published_at": "2024-01-01T00:00:00Z",
		"nsfw": true
	},
	"creator": {
		"id": 55,
		"name": "alice",
		"ap_id": "https://remote.example/u/alice",
		"published_at": "2024-01-01T00:00:00Z"
	},
	"post_actions": {
		"read_at": "2025-03-02T00:00:00Z",
		"vote_is_upvote": true
	}
}`

func TestGetPostsQueryAndConversion(t *testing.T) {
	var gotQuery map[string]string
	adapter, _ := newTestAdapter(t, "token-1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/post/list", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeJSON(t, w, http.StatusOK, `{"items": [`+postViewFixture+`], "next_page": "cursor-2"}`)
	})

	resp, err := adapter.GetPosts(context.Background(), schemas.GetPosts{
		Sort:          schemas.PostSortTopWeek,
		Type:          schemas.ListingLocal,
		CommunitySlug: "books@remote.example",
		PageCursor:    "cursor-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Top", gotQuery["sort"])
	assert.Equal(t, "604800", gotQuery["time_range_seconds"])
	assert.Equal(t, "Local", gotQuery["type_"])
	assert.Equal(t, "books@remote.example", gotQuery["community_name"])
	assert.Equal(t, "cursor-1", gotQuery["page_cursor"])

	require.Len(t, resp.Posts, 1)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, "cursor-2", *resp.NextCursor)

	post := resp.Posts[0].Post
	assert.Equal(t, "https://remote.example/post/123", post.ApID)
	assert.Equal(t, "books@remote.example", post.CommunitySlug)
	assert.Equal(t, "alice@remote.example", post.CreatorSlug)
	assert.True(t, post.Read)
	assert.True(t, post.NSFW, "community nsfw marks the post nsfw")
	require.NotNil(t, post.MyVote)
	assert.Equal(t, 1, *post.MyVote)
}

func TestGetPostsGuestHasNilVote(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, `{"items": [`+postViewFixture+`]}`)
	})
	resp, err := adapter.GetPosts(context.Background(), schemas.GetPosts{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Nil(t, resp.Posts[0].Post.MyVote)
	assert.Nil(t, resp.NextCursor)
}

func TestGetPostLocalApIDSkipsResolution(t *testing.T) {
	var resolveCalls atomic.Int32
	var adapter *Adapter
	adapter, server := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v4/resolve_object":
			resolveCalls.Add(1)
			writeJSON(t, w, http.StatusOK, `{"resolve": null}`)
		case "/api/v4/post":
			assert.Equal(t, "123", r.URL.Query().Get("id"))
			writeJSON(t, w, http.StatusOK, `{"post_view": `+postViewFixture+`}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	resp, err := adapter.GetPost(context.Background(), schemas.GetPost{ApID: server.URL + "/post/123"})
	require.NoError(t, err)
	assert.Equal(t, int64(123), resp.Post.ID)
	assert.Equal(t, int32(0), resolveCalls.Load())
}

func TestGetPostRemoteApIDResolvedOnce(t *testing.T) {
	var resolveCalls atomic.Int32
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v4/resolve_object":
			resolveCalls.Add(1)
			assert.Equal(t, "https://remote.example/post/123", r.URL.Query().Get("q"))
			writeJSON(t, w, http.StatusOK, `{"resolve": {"type_": "post", "post": {"id": 123, "ap_id": "https://remote.example/post/123", "published_at": "2025-03-01T12:00:00Z"}}}`)
		case "/api/v4/post":
			writeJSON(t, w, http.StatusOK, `{"post_view": `+postViewFixture+`}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	for i := 0; i < 3; i++ {
		_, err := adapter.GetPost(context.Background(), schemas.GetPost{ApID: "https://remote.example/post/123"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), resolveCalls.Load(), "apId resolution is memoized")
}

func TestGetPostUnresolvableIsNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"resolve": null}`)
	})
	_, err := adapter.GetPost(context.Background(), schemas.GetPost{ApID: "https://remote.example/post/9"})
	require.Error(t, err)
	assert.True(t, blueprint.IsNotFound(err))
}

func TestLoginSuccess(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/account/auth/login", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username_or_email"])
		assert.Equal(t, "hunter2", body["password"])
		_, hasTotp := body["totp_2fa_token"]
		assert.False(t, hasTotp)
		writeJSON(t, w, http.StatusOK, `{"jwt": "opaque-token"}`)
	})
	resp, err := adapter.Login(context.Background(), schemas.Login{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", resp.Token)
}

func TestLoginMFARequired(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, `{"error": "missing_totp_token"}`)
	})
	_, err := adapter.Login(context.Background(), schemas.Login{Username: "alice", Password: "hunter2"})
	assert.ErrorIs(t, err, blueprint.ErrMFARequired)
}

func TestLoginWithMFACode(t *testing.T) {
	code := "123456"
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, code, body["totp_2fa_token"])
		writeJSON(t, w, http.StatusOK, `{"jwt": "opaque-token"}`)
	})
	_, err := adapter.Login(context.Background(), schemas.Login{Username: "alice", Password: "hunter2", MFACode: &code})
	require.NoError(t, err)
}

func TestLoginBadCredentialsIsValidationError(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, `{"error": "incorrect_login"}`)
	})
	_, err := adapter.Login(context.Background(), schemas.Login{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, blueprint.IsValidationError(err))
	assert.Contains(t, err.Error(), "incorrect_login")
}

func TestLikePostRetractOmitsDirection(t *testing.T) {
	var body map[string]any
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/post/like", r.URL.Path)
		body = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, http.StatusOK, `{"post_view": `+postViewFixture+`}`)
	})

	_, err := adapter.LikePost(context.Background(), schemas.LikePost{PostID: 123, Score: -1})
	require.NoError(t, err)
	assert.Equal(t, false, body["is_upvote"])

	_, err = adapter.LikePost(context.Background(), schemas.LikePost{PostID: 123, Score: 0})
	require.NoError(t, err)
	_, present := body["is_upvote"]
	assert.False(t, present, "retracting a vote sends no direction")
}

func TestGetCommentsMaxDepthDropsCursor(t *testing.T) {
	adapter, server := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/comment/list", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("max_depth"))
		assert.Equal(t, "123", r.URL.Query().Get("post_id"))
		writeJSON(t, w, http.StatusOK, `{"items": [], "next_page": "cursor-bogus"}`)
	})
	depth := 6
	resp, err := adapter.GetComments(context.Background(), schemas.GetComments{
		PostApID: server.URL + "/post/123",
		MaxDepth: &depth,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.NextCursor)
}

func TestGetSiteAnonymous(t *testing.T) {
	var accountCalls atomic.Int32
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v4/site":
			writeJSON(t, w, http.StatusOK, `{
				"site_view": {
					"site": {"name": "Test Instance"},
					"local_site": {
						"private_instance": true,
						"registration_mode": "closed",
						"users": 12
					}
				},
				"admins": [{"person": {"id": 1, "name": "admin", "ap_id": "https://remote.example/u/admin", "published_at": "2024-01-01T00:00:00Z"}}],
				"version": "1.0.0",
				"oauth_providers": [{"id": 3, "display_name": "Keycloak", "authorization_endpoint": "https://sso.example/auth", "token_endpoint": "https://sso.example/token", "client_id": "abc", "scopes": "openid"}]
			}`)
		case "/api/v4/account":
			accountCalls.Add(1)
			writeJSON(t, w, http.StatusUnauthorized, `{"error": "not_logged_in"}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	resp, err := adapter.GetSite(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), accountCalls.Load(), "no account lookup without a session")
	assert.Nil(t, resp.Site.Me)
	assert.True(t, resp.Site.PrivateInstance)
	assert.Equal(t, schemas.RegistrationClosed, resp.Site.RegistrationMode)
	require.Len(t, resp.Site.OAuthProviders, 1)
	assert.Equal(t, "Keycloak", resp.Site.OAuthProviders[0].DisplayName)
	assert.Equal(t, []string{"https://remote.example/u/admin"}, resp.Site.Admins)
}

func TestGetSiteLoggedIn(t *testing.T) {
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v4/site":
			writeJSON(t, w, http.StatusOK, `{
				"site_view": {"site": {"name": "Test"}, "local_site": {"registration_mode": "open"}},
				"version": "1.0.0"
			}`)
		case "/api/v4/account":
			writeJSON(t, w, http.StatusOK, `{
				"local_user_view": {
					"person": {"id": 9, "name": "bob", "ap_id": "https://remote.example/u/bob", "published_at": "2024-01-01T00:00:00Z"},
					"local_user": {"email": "bob@example.com"}
				}
			}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	resp, err := adapter.GetSite(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Site.Me)
	assert.Equal(t, "bob@remote.example", resp.Site.Me.Slug)
	require.NotNil(t, resp.Site.MyEmail)
	assert.Equal(t, "bob@example.com", *resp.Site.MyEmail)
}

func TestSearchSplitsUnionAndDeduplicates(t *testing.T) {
	adapter, _ := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/search", r.URL.Path)
		assert.Equal(t, "books", r.URL.Query().Get("q"))
		writeJSON(t, w, http.StatusOK, `{"search": [
			{"type_": "post", "post": {"id": 1, "name": "p", "ap_id": "https://remote.example/post/1", "published_at": "2025-01-01T00:00:00Z"}, "community": {"id": 7, "name": "books", "ap_id": "https://remote.example/c/books", "published_at": "2024-01-01T00:00:00Z"}, "creator": {"id": 5, "name": "alice", "ap_id": "https://remote.example/u/alice", "published_at": "2024-01-01T00:00:00Z"}},
			{"type_": "post", "post": {"id": 2, "name": "q", "ap_id": "https://remote.example/post/2", "published_at": "2025-01-01T00:00:00Z"}, "community": {"id": 7, "name": "books", "ap_id": "https://remote.example/c/books", "published_at": "2024-01-01T00:00:00Z"}, "creator": {"id": 5, "name": "alice", "ap_id": "https://remote.example/u/alice", "published_at": "2024-01-01T00:00:00Z"}},
			{"type_": "community", "community": {"id": 8, "name": "films", "ap_id": "https://remote.example/c/films", "published_at": "2024-01-01T00:00:00Z"}}
		]}`)
	})

	resp, err := adapter.Search(context.Background(), schemas.Search{Q: "books", Type: schemas.SearchAll})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 2)
	assert.Len(t, resp.Communities, 2, "duplicate communities collapse by apId")
	assert.Len(t, resp.Users, 1)
}

func TestNetworkFailureIsNetworkError(t *testing.T) {
	adapter, server := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {})
	server.Close()
	_, err := adapter.GetPosts(context.Background(), schemas.GetPosts{})
	require.Error(t, err)
	assert.True(t, blueprint.IsNetworkError(err))
}

func TestMarkPostReadBulkRejectsUnread(t *testing.T) {
	adapter, _ := newTestAdapter(t, "token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/post/mark_as_read/many", r.URL.Path)
		writeJSON(t, w, http.StatusOK, `{"success": true}`)
	})
	err := adapter.MarkPostRead(context.Background(), schemas.MarkPostRead{PostIDs: []int64{1, 2}, Read: true})
	require.NoError(t, err)

	err = adapter.MarkPostRead(context.Background(), schemas.MarkPostRead{PostIDs: []int64{1, 2}, Read: false})
	require.Error(t, err)
}
