// Package lemmyv4 adapts the Lemmy v4 (Lemmy 1.0) HTTP API onto the
// normalized operation contract.
package lemmyv4

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/backends/httpapi"
	"Alcove/internal/backends/resolver"
	"Alcove/internal/schemas"
)

const apiRoot = "/api/v4"

// defaultLimit is the page size requested from list endpoints.
const defaultLimit = 50

// Adapter implements blueprint.Backend against one Lemmy v4 instance.
type Adapter struct {
	client   *httpapi.Client
	instance string
	resolve  *resolver.Resolver
}

var _ blueprint.Backend = (*Adapter)(nil)

// New creates an adapter bound to an instance. token may be empty for a
// guest session.
func New(instance, userAgent, token string, httpClient *http.Client) (*Adapter, error) {
	client, err := httpapi.New(instance, userAgent, token, httpClient)
	if err != nil {
		return nil, err
	}
	a := &Adapter{
		client:   client,
		instance: strings.TrimRight(instance, "/"),
	}
	a.resolve = resolver.New(a.resolveRemote)
	return a, nil
}

func (a *Adapter) Software() schemas.Software { return schemas.SoftwareLemmy }
func (a *Adapter) Family() blueprint.Family   { return blueprint.FamilyLemmyV4 }
func (a *Adapter) Instance() string           { return a.instance }

// resolveObjectID resolves an apId to numeric ids, short-circuiting for
// objects local to this instance.
func (a *Adapter) resolveObjectID(ctx context.Context, apID string) (resolver.ObjectIDs, error) {
	if ids, ok := resolver.LocalObjectIDs(a.instance, apID); ok {
		return ids, nil
	}
	return a.resolve.Resolve(ctx, apID)
}

func (a *Adapter) resolveRemote(ctx context.Context, apID string) (resolver.ObjectIDs, error) {
	var out resolveObjectResponse
	query := url.Values{"q": {apID}}
	if err := a.client.Get(ctx, apiRoot+"/resolve_object", query, &out); err != nil {
		return resolver.ObjectIDs{}, err
	}
	ids := resolver.ObjectIDs{}
	if out.Resolve == nil {
		return ids, nil
	}
	switch out.Resolve.Type {
	case "post":
		if out.Resolve.Post != nil {
			ids.PostID = &out.Resolve.Post.ID
		}
	case "comment":
		if out.Resolve.Comment != nil {
			ids.CommentID = &out.Resolve.Comment.ID
		}
	case "community":
		if out.Resolve.Community != nil {
			ids.CommunityID = &out.Resolve.Community.ID
		}
	case "person":
		if out.Resolve.Person != nil {
			ids.PersonID = &out.Resolve.Person.ID
		}
	}
	return ids, nil
}

func (a *Adapter) GetSite(ctx context.Context) (*blueprint.GetSiteResponse, error) {
	var site getSiteResponse
	if err := a.client.Get(ctx, apiRoot+"/site", nil, &site); err != nil {
		return nil, err
	}

	var me *schemas.Person
	var myEmail *string
	if a.client.Authenticated() {
		var my getMyUserResponse
		if err := a.client.Get(ctx, apiRoot+"/account", nil, &my); err != nil {
			return nil, err
		}
		person := convertPerson(my.LocalUserView.Person)
		me = &person
		myEmail = my.LocalUserView.LocalUser.Email
	}

	admins := make([]schemas.Person, 0, len(site.Admins))
	adminApIDs := make([]string, 0, len(site.Admins))
	for _, admin := range site.Admins {
		p := convertPerson(admin.Person)
		admins = append(admins, p)
		adminApIDs = append(adminApIDs, p.ApID)
	}

	local := site.SiteView.LocalSite
	enableDownvotes := local.EnableDownvotes != nil && *local.EnableDownvotes

	normalized := schemas.Site{
		Instance:                 a.instance,
		Title:                    site.SiteView.Site.Name,
		Description:              site.SiteView.Site.Description,
		Sidebar:                  site.SiteView.Site.Sidebar,
		Icon:                     site.SiteView.Site.Icon,
		Version:                  site.Version,
		Software:                 schemas.SoftwareLemmy,
		PrivateInstance:          local.PrivateInstance,
		RegistrationMode:         convertRegistrationMode(local.RegistrationMode),
		ApplicationQuestion:      local.ApplicationQuestion,
		Admins:                   adminApIDs,
		Me:                       me,
		MyEmail:                  myEmail,
		OAuthProviders:           convertOAuthProviders(site.OAuthProviders),
		UsersActiveDayCount:      local.UsersActiveDay,
		UsersActiveWeekCount:     local.UsersActiveWeek,
		UsersActiveMonthCount:    local.UsersActiveMonth,
		UsersActiveHalfYearCount: local.UsersActiveHalfYear,
		PostCount:                local.Posts,
		CommentCount:             local.Comments,
		UserCount:                local.Users,
		BlurNSFW:                 true,
		EnablePostDownvotes:      enableDownvotes,
		EnableCommentDownvotes:   enableDownvotes,
	}

	profiles := admins
	if me != nil {
		profiles = append(profiles, *me)
	}
	return &blueprint.GetSiteResponse{Site: normalized, Profiles: profiles}, nil
}

func (a *Adapter) GetPost(ctx context.Context, form schemas.GetPost) (*blueprint.GetPostResponse, error) {
	ids, err := a.resolveObjectID(ctx, form.ApID)
	if err != nil {
		return nil, err
	}
	if ids.PostID == nil {
		return nil, blueprint.NewNotFoundError("post", form.ApID)
	}
	var out getPostResponse
	query := url.Values{"id": {strconv.FormatInt(*ids.PostID, 10)}}
	if err := a.client.Get(ctx, apiRoot+"/post", query, &out); err != nil {
		return nil, err
	}
	return &blueprint.GetPostResponse{
		Post:    convertPost(out.PostView, a.client.Authenticated()),
		Creator: convertPerson(out.PostView.Creator),
	}, nil
}

func (a *Adapter) GetPosts(ctx context.Context, form schemas.GetPosts) (*blueprint.GetPostsResponse, error) {
	sort := mapPostSort(form.Sort)
	query := url.Values{"limit": {strconv.Itoa(defaultLimit)}}
	if sort.Sort != "" {
		query.Set("sort", sort.Sort)
	}
	if sort.TimeRangeSeconds != nil {
		query.Set("time_range_seconds", strconv.FormatInt(*sort.TimeRangeSeconds, 10))
	}
	if form.Type != "" {
		query.Set("type_", mapListingType(form.Type))
	}
	if form.CommunitySlug != "" {
		query.Set("community_name", form.CommunitySlug)
	}
	if form.ShowRead {
		query.Set("show_read", "true")
	}
	if form.PageCursor != "" {
		query.Set("page_cursor", form.PageCursor)
	}

	var out listPostsResponse
	if err := a.client.Get(ctx, apiRoot+"/post/list", query, &out); err != nil {
		return nil, err
	}

	posts := make([]blueprint.PostItem, 0, len(out.Items))
	for _, item := range out.Items {
		posts = append(posts, blueprint.PostItem{
			Post:    convertPost(item, a.client.Authenticated()),
			Creator: convertPerson(item.Creator),
			Community: convertCommunity(wireCommunityView{
				Community: item.Community,
			}),
		})
	}
	return &blueprint.GetPostsResponse{Posts: posts, NextCursor: out.NextPage}, nil
}

func (a *Adapter) CreatePost(ctx context.Context, form schemas.CreatePost) (*schemas.Post, error) {
	community, err := a.GetCommunity(ctx, schemas.GetCommunity{Slug: form.CommunitySlug})
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":         form.Title,
		"community_id": community.Community.ID,
	}
	if form.Body != nil {
		body["body"] = *form.Body
	}
	if form.URL != nil {
		body["url"] = *form.URL
	}
	if form.ThumbnailURL != nil {
		body["custom_thumbnail"] = *form.ThumbnailURL
	}
	if form.AltText != nil {
		body["alt_text"] = *form.AltText
	}
	if form.NSFW != nil {
		body["nsfw"] = *form.NSFW
	}
	var out postResponse
	if err := a.client.Post(ctx, apiRoot+"/post", body, &out); err != nil {
		return nil, err
	}
	post := convertPost(out.PostView, a.client.Authenticated())
	return &post, nil
}

func (a *Adapter) EditPost(ctx context.Context, form schemas.EditPost) (*schemas.Post, error) {
	ids, err := a.resolveObjectID(ctx, form.ApID)
	if err != nil {
		return nil, err
	}
	if ids.PostID == nil {
		return nil, blueprint.NewNotFoundError("post", form.ApID)
	}
	body := map[string]any{
		"post_id": *ids.PostID,
		"name":    form.Title,
	}
	if form.Body != nil {
		body["body"] = *form.Body
	}
	if form.URL != nil {
		body["url"] = *form.URL
	}
	if form.ThumbnailURL != nil {
		body["custom_thumbnail"] = *form.ThumbnailURL
	}
	if form.AltText != nil {
		body["alt_text"] = *form.AltText
	}
	var out postResponse
	if err := a.client.Put(ctx, apiRoot+"/post", body, &out); err != nil {
		return nil, err
	}
	post := convertPost(out.PostView, a.client.Authenticated())
	return &post, nil
}

func (a *Adapter) DeletePost(ctx context.Context, form schemas.DeletePost) (*schemas.Post, error) {
	return a.postAction(ctx, "/post/delete", map[string]any{
		"post_id": form.PostID,
		"deleted": form.Deleted,
	})
}

func (a *Adapter) RemovePost(ctx context.Context, form schemas.RemovePost) (*schemas.Post, error) {
	body := map[string]any{
		"post_id": form.PostID,
		"removed": form.Removed,
	}
	if form.Reason != "" {
		body["reason"] = form.Reason
	}
	return a.postAction(ctx, "/post/remove", body)
}

func (a *Adapter) LikePost(ctx context.Context, form schemas.LikePost) (*schemas.Post, error) {
	body := map[string]any{"post_id": form.PostID}
	// A zero score retracts the vote by omitting the direction entirely.
	if form.Score != 0 {
		body["is_upvote"] = form.Score == 1
	}
	return a.postAction(ctx, "/post/like", body)
}

func (a *Adapter) SavePost(ctx context.Context, form schemas.SavePost) (*schemas.Post, error) {
	body := map[string]any{"post_id": form.PostID, "save": form.Save}
	var out postResponse
	if err := a.client.Put(ctx, apiRoot+"/post/save", body, &out); err != nil {
		return nil, err
	}
	post := convertPost(out.PostView, a.client.Authenticated())
	return &post, nil
}

func (a *Adapter) FeaturePost(ctx context.Context, form schemas.FeaturePost) (*schemas.Post, error) {
	return a.postAction(ctx, "/post/feature", map[string]any{
		"post_id":      form.PostID,
		"feature_type": string(form.FeatureType),
		"featured":     form.Featured,
	})
}

func (a *Adapter) LockPost(ctx context.Context, form schemas.LockPost) (*schemas.Post, error) {
	return a.postAction(ctx, "/post/lock", map[string]any{
		"post_id": form.PostID,
		"locked":  form.Locked,
	})
}

func (a *Adapter) postAction(ctx context.Context, path string, body map[string]any) (*schemas.Post, error) {
	var out postResponse
	if err := a.client.Post(ctx, apiRoot+path, body, &out); err != nil {
		return nil, err
	}
	post := convertPost(out.PostView, a.client.Authenticated())
	return &post, nil
}

func (a *Adapter) MarkPostRead(ctx context.Context, form schemas.MarkPostRead) error {
	if len(form.PostIDs) == 1 {
		return a.client.Post(ctx, apiRoot+"/post/mark_as_read", map[string]any{
			"post_id": form.PostIDs[0],
			"read":    form.Read,
		}, nil)
	}
	if !form.Read {
		return fmt.Errorf("cannot bulk mark posts as unread")
	}
	return a.client.Post(ctx, apiRoot+"/post/mark_as_read/many", map[string]any{
		"post_ids": form.PostIDs,
		"read":     true,
	}, nil)
}

func (a *Adapter) CreatePostReport(ctx context.Context, form schemas.CreatePostReport) error {
	return a.client.Post(ctx, apiRoot+"/post/report", map[string]any{
		"post_id": form.PostID,
		"reason":  form.Reason,
	}, nil)
}

func (a *Adapter) GetComments(ctx context.Context, form schemas.GetComments) (*blueprint.GetCommentsResponse, error) {
	query := url.Values{
		"type_": {"All"},
		"limit": {strconv.Itoa(defaultLimit)},
	}
	if form.PostApID != "" {
		ids, err := a.resolveObjectID(ctx, form.PostApID)
		if err != nil {
			return nil, err
		}
		if ids.PostID == nil {
			return nil, blueprint.NewNotFoundError("post", form.PostApID)
		}
		query.Set("post_id", strconv.FormatInt(*ids.PostID, 10))
	}
	if sort := mapCommentSort(form.Sort); sort != "" {
		query.Set("sort", sort)
	}
	if form.MaxDepth != nil {
		query.Set("max_depth", strconv.Itoa(*form.MaxDepth))
	}
	if form.PageCursor != "" {
		query.Set("page_cursor", form.PageCursor)
	}

	var out listCommentsResponse
	if err := a.client.Get(ctx, apiRoot+"/comment/list", query, &out); err != nil {
		return nil, err
	}

	comments := make([]schemas.Comment, 0, len(out.Items))
	creators := make([]schemas.Person, 0, len(out.Items))
	for _, item := range out.Items {
		comments = append(comments, convertComment(item, a.client.Authenticated()))
		creators = append(creators, convertPerson(item.Creator))
	}

	// The backend's cursor is broken when max_depth is set: it pages out
	// past the end of the thread until the client gets rate limited.
	nextCursor := out.NextPage
	if form.MaxDepth != nil {
		nextCursor = nil
	}
	return &blueprint.GetCommentsResponse{
		Comments:   comments,
		Creators:   uniquePersons(creators),
		NextCursor: nextCursor,
	}, nil
}

func (a *Adapter) CreateComment(ctx context.Context, form schemas.CreateComment) (*schemas.Comment, error) {
	ids, err := a.resolveObjectID(ctx, form.PostApID)
	if err != nil {
		return nil, err
	}
	if ids.PostID == nil {
		return nil, blueprint.NewNotFoundError("post", form.PostApID)
	}
	body := map[string]any{
		"post_id": *ids.PostID,
		"content": form.Body,
	}
	if form.ParentID != nil {
		body["parent_id"] = *form.ParentID
	}
	return a.commentAction(ctx, "/comment", body)
}

func (a *Adapter) EditComment(ctx context.Context, form schemas.EditComment) (*schemas.Comment, error) {
	body := map[string]any{"comment_id": form.ID, "content": form.Body}
	var out commentResponse
	if err := a.client.Put(ctx, apiRoot+"/comment", body, &out); err != nil {
		return nil, err
	}
	comment := convertComment(out.CommentView, a.client.Authenticated())
	return &comment, nil
}

func (a *Adapter) DeleteComment(ctx context.Context, form schemas.DeleteComment) (*schemas.Comment, error) {
	return a.commentAction(ctx, "/comment/delete", map[string]any{
		"comment_id": form.ID,
		"deleted":    form.Deleted,
	})
}

func (a *Adapter) RemoveComment(ctx context.Context, form schemas.RemoveComment) (*schemas.Comment, error) {
	body := map[string]any{
		"comment_id": form.CommentID,
		"removed":    form.Removed,
	}
	if form.Reason != "" {
		body["reason"] = form.Reason
	}
	return a.commentAction(ctx, "/comment/remove", body)
}

func (a *Adapter) LikeComment(ctx context.Context, form schemas.LikeComment) (*schemas.Comment, error) {
	body := map[string]any{"comment_id": form.ID}
	if form.Score != 0 {
		body["is_upvote"] = form.Score == 1
	}
	return a.commentAction(ctx, "/comment/like", body)
}

func (a *Adapter) SaveComment(ctx context.Context, form schemas.SaveComment) (*schemas.Comment, error) {
	body := map[string]any{"comment_id": form.CommentID, "save": form.Save}
	var out commentResponse
	if err := a.client.Put(ctx, apiRoot+"/comment/save", body, &out); err != nil {
		return nil, err
	}
	comment := convertComment(out.CommentView, a.client.Authenticated())
	return &comment, nil
}

func (a *Adapter) LockComment(ctx context.Context, form schemas.LockComment) (*schemas.Comment, error) {
	return a.commentAction(ctx, "/comment/lock", map[string]any{
		"comment_id": form.CommentID,
		"locked":     form.Locked,
	})
}

func (a *Adapter) commentAction(ctx context.Context, path string, body map[string]any) (*schemas.Comment, error) {
	var out commentResponse
	if err := a.client.Post(ctx, apiRoot+path, body, &out); err != nil {
		return nil, err
	}
	comment := convertComment(out.CommentView, a.client.Authenticated())
	return &comment, nil
}

func (a *Adapter) CreateCommentReport(ctx context.Context, form schemas.CreateCommentReport) error {
	return a.client.Post(ctx, apiRoot+"/comment/report", map[string]any{
		"comment_id": form.CommentID,
		"reason":     form.Reason,
	}, nil)
}

func (a *Adapter) GetCommunity(ctx context.Context, form schemas.GetCommunity) (*blueprint.GetCommunityResponse, error) {
	var out communityResponse
	query := url.Values{"name": {form.Slug}}
	if err := a.client.Get(ctx, apiRoot+"/community", query, &out); err != nil {
		return nil, err
	}
	mods := make([]schemas.Person, 0, len(out.Moderators))
	for _, m := range out.Moderators {
		mods = append(mods, convertPerson(m.Moderator))
	}
	return &blueprint.GetCommunityResponse{
		Community: convertCommunity(out.CommunityView),
		Mods:      mods,
	}, nil
}

func (a *Adapter) GetCommunities(ctx context.Context, form schemas.GetCommunities) (*blueprint.GetCommunitiesResponse, error) {
	sort := mapCommunitySort(form.Sort)
	query := url.Values{"limit": {strconv.Itoa(defaultLimit)}}
	if sort.Sort != "" {
		query.Set("sort", sort.Sort)
	}
	if sort.TimeRangeSeconds != nil {
		query.Set("time_range_seconds", strconv.FormatInt(*sort.TimeRangeSeconds, 10))
	}
	if form.Type != "" {
		query.Set("type_", mapListingType(form.Type))
	}
	if form.PageCursor != "" {
		query.Set("page_cursor", form.PageCursor)
	}
	var out listCommunitiesResponse
	if err := a.client.Get(ctx, apiRoot+"/community/list", query, &out); err != nil {
		return nil, err
	}
	communities := make([]schemas.Community, 0, len(out.Items))
	for _, item := range out.Items {
		communities = append(communities, convertCommunity(item))
	}
	return &blueprint.GetCommunitiesResponse{Communities: communities, NextCursor: out.NextPage}, nil
}

func (a *Adapter) FollowCommunity(ctx context.Context, form schemas.FollowCommunity) (*schemas.Community, error) {
	var out struct {
		CommunityView wireCommunityView `json:"community_view"`
	}
	body := map[string]any{"community_id": form.CommunityID, "follow": form.Follow}
	if err := a.client.Post(ctx, apiRoot+"/community/follow", body, &out); err != nil {
		return nil, err
	}
	community := convertCommunity(out.CommunityView)
	return &community, nil
}

func (a *Adapter) BlockCommunity(ctx context.Context, form schemas.BlockCommunity) error {
	return a.client.Post(ctx, apiRoot+"/account/block/community", map[string]any{
		"community_id": form.CommunityID,
		"block":        form.Block,
	}, nil)
}

func (a *Adapter) GetPerson(ctx context.Context, form schemas.GetPerson) (*schemas.Person, error) {
	var out resolveObjectResponse
	query := url.Values{"q": {form.ApIDOrUsername}}
	if err := a.client.Get(ctx, apiRoot+"/resolve_object", query, &out); err != nil {
		return nil, err
	}
	if out.Resolve == nil || out.Resolve.Type != "person" || out.Resolve.Person == nil {
		return nil, blueprint.NewNotFoundError("person", form.ApIDOrUsername)
	}
	person := convertPerson(*out.Resolve.Person)
	return &person, nil
}

func (a *Adapter) GetPersonContent(ctx context.Context, form schemas.GetPersonContent) (*blueprint.GetPersonContentResponse, error) {
	ids, err := a.resolveObjectID(ctx, form.ApIDOrUsername)
	if err != nil {
		return nil, err
	}
	if ids.PersonID == nil {
		return nil, blueprint.NewNotFoundError("person", form.ApIDOrUsername)
	}
	query := url.Values{
		"person_id": {strconv.FormatInt(*ids.PersonID, 10)},
		"limit":     {strconv.Itoa(defaultLimit)},
		"type_":     {string(form.Type)},
	}
	if form.PageCursor != "" {
		query.Set("page_cursor", form.PageCursor)
	}
	var out listPersonContentResponse
	if err := a.client.Get(ctx, apiRoot+"/person/content", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.GetPersonContentResponse{NextCursor: out.NextPage}
	for _, item := range out.Items {
		switch item.Type {
		case "post":
			resp.Posts = append(resp.Posts, convertPost(searchItemToPostView(item), a.client.Authenticated()))
		case "comment":
			resp.Comments = append(resp.Comments, convertComment(searchItemToCommentView(item), a.client.Authenticated()))
		}
	}
	return resp, nil
}

func (a *Adapter) BlockPerson(ctx context.Context, form schemas.BlockPerson) error {
	return a.client.Post(ctx, apiRoot+"/account/block/person", map[string]any{
		"person_id": form.PersonID,
		"block":     form.Block,
	}, nil)
}

func (a *Adapter) Search(ctx context.Context, form schemas.Search) (*blueprint.SearchResponse, error) {
	limit := defaultLimit
	if form.Limit != nil {
		limit = *form.Limit
	}
	// Communities and people rank better by popularity; content by recency.
	sort := "New"
	if form.Type == schemas.SearchCommunities || form.Type == schemas.SearchUsers {
		sort = "Top"
	}
	query := url.Values{
		"q":            {form.Q},
		"type_":        {string(form.Type)},
		"limit":        {strconv.Itoa(limit)},
		"sort":         {sort},
		"listing_type": {"All"},
	}
	if form.CommunitySlug != "" {
		query.Set("community_name", form.CommunitySlug)
	}
	if form.PageCursor != "" {
		query.Set("page_cursor", form.PageCursor)
	}

	var out searchResponse
	if err := a.client.Get(ctx, apiRoot+"/search", query, &out); err != nil {
		return nil, err
	}

	resp := &blueprint.SearchResponse{NextCursor: out.NextPage}
	var communities []schemas.Community
	var users []schemas.Person
	for _, item := range out.Search {
		switch item.Type {
		case "post":
			view := searchItemToPostView(item)
			resp.Posts = append(resp.Posts, convertPost(view, a.client.Authenticated()))
			communities = append(communities, convertCommunity(wireCommunityView{Community: view.Community}))
			users = append(users, convertPerson(view.Creator))
		case "comment":
			view := searchItemToCommentView(item)
			resp.Comments = append(resp.Comments, convertComment(view, a.client.Authenticated()))
			communities = append(communities, convertCommunity(wireCommunityView{Community: view.Community}))
			users = append(users, convertPerson(view.Creator))
		case "community":
			if item.Community != nil {
				communities = append(communities, convertCommunity(wireCommunityView{
					Community:        *item.Community,
					CommunityActions: item.CommunityActions,
				}))
			}
		case "person":
			if item.Person != nil {
				users = append(users, convertPerson(*item.Person))
			}
		}
	}
	resp.Communities = uniqueCommunities(communities)
	resp.Users = uniquePersons(users)
	return resp, nil
}

func (a *Adapter) ResolveObject(ctx context.Context, form schemas.ResolveObject) (*blueprint.ResolveObjectResponse, error) {
	var out resolveObjectResponse
	query := url.Values{"q": {form.Q}}
	if err := a.client.Get(ctx, apiRoot+"/resolve_object", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.ResolveObjectResponse{}
	if out.Resolve == nil {
		return resp, nil
	}
	switch out.Resolve.Type {
	case "post":
		post := convertPost(searchItemToPostView(*out.Resolve), a.client.Authenticated())
		resp.Post = &post
	case "comment":
		comment := convertComment(searchItemToCommentView(*out.Resolve), a.client.Authenticated())
		resp.Comment = &comment
	case "community":
		if out.Resolve.Community != nil {
			community := convertCommunity(wireCommunityView{
				Community:        *out.Resolve.Community,
				CommunityActions: out.Resolve.CommunityActions,
			})
			resp.Community = &community
		}
	case "person":
		if out.Resolve.Person != nil {
			person := convertPerson(*out.Resolve.Person)
			resp.Person = &person
		}
	}
	return resp, nil
}

func (a *Adapter) Login(ctx context.Context, form schemas.Login) (*blueprint.LoginResponse, error) {
	body := map[string]any{
		"username_or_email": form.Username,
		"password":          form.Password,
	}
	if form.MFACode != nil {
		body["totp_2fa_token"] = *form.MFACode
	}
	var out loginResponse
	if err := a.client.Post(ctx, apiRoot+"/account/auth/login", body, &out); err != nil {
		var ve *blueprint.ValidationError
		if errors.As(err, &ve) && strings.Contains(ve.Message, "missing_totp_token") {
			return nil, blueprint.ErrMFARequired
		}
		return nil, err
	}
	if out.JWT == nil {
		return nil, fmt.Errorf("login response did not include a token")
	}
	return &blueprint.LoginResponse{Token: *out.JWT}, nil
}

func (a *Adapter) Logout(ctx context.Context) error {
	var out successResponse
	if err := a.client.Post(ctx, apiRoot+"/account/auth/logout", nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("failed to log out")
	}
	return nil
}

func (a *Adapter) Register(ctx context.Context, form schemas.Register) (*blueprint.RegisterResponse, error) {
	body := map[string]any{
		"username":        form.Username,
		"password":        form.Password,
		"password_verify": form.RepeatPassword,
		"show_nsfw":       form.ShowNSFW,
	}
	if form.Email != nil {
		body["email"] = *form.Email
	}
	if form.CaptchaUUID != nil {
		body["captcha_uuid"] = *form.CaptchaUUID
	}
	if form.CaptchaAnswer != nil {
		body["captcha_answer"] = *form.CaptchaAnswer
	}
	if form.Answer != nil {
		body["answer"] = *form.Answer
	}
	var out registerResponse
	if err := a.client.Post(ctx, apiRoot+"/account/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &blueprint.RegisterResponse{
		Token:               out.JWT,
		RegistrationCreated: out.RegistrationCreated,
		VerifyEmailSent:     out.VerifyEmailSent,
	}, nil
}

func (a *Adapter) GetCaptcha(ctx context.Context) (*blueprint.Captcha, error) {
	var out captchaResponse
	if err := a.client.Get(ctx, apiRoot+"/account/auth/get_captcha", nil, &out); err != nil {
		return nil, err
	}
	if out.OK == nil {
		return nil, fmt.Errorf("server did not return a captcha")
	}
	return &blueprint.Captcha{UUID: out.OK.UUID, PNG: out.OK.PNG, WAV: out.OK.WAV}, nil
}

func (a *Adapter) SaveUserSettings(ctx context.Context, form schemas.SaveUserSettings) error {
	body := map[string]any{}
	if form.Bio != nil {
		body["bio"] = *form.Bio
	}
	if form.DisplayName != nil {
		body["display_name"] = *form.DisplayName
	}
	if form.Email != nil {
		body["email"] = *form.Email
	}
	return a.client.Put(ctx, apiRoot+"/account/settings/save", body, nil)
}

// listNotifications reads a page of the unified notification feed
// filtered to one notification kind.
func (a *Adapter) listNotifications(ctx context.Context, kind string, unreadOnly bool, cursor string) (*listNotificationsResponse, error) {
	query := url.Values{"type_": {kind}}
	if unreadOnly {
		query.Set("unread_only", "true")
	}
	if cursor != "" {
		query.Set("page_cursor", cursor)
	}
	var out listNotificationsResponse
	if err := a.client.Get(ctx, apiRoot+"/account/notifications/list", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Adapter) GetPrivateMessages(ctx context.Context, form schemas.GetPrivateMessages) (*blueprint.GetPrivateMessagesResponse, error) {
	out, err := a.listNotifications(ctx, "PrivateMessage", form.UnreadOnly, form.PageCursor)
	if err != nil {
		return nil, err
	}
	resp := &blueprint.GetPrivateMessagesResponse{NextCursor: out.NextPage}
	var profiles []schemas.Person
	for _, item := range out.Items {
		data := item.Data
		if data.Type != "private_message" || data.PrivateMessage == nil || data.Creator == nil || data.Recipient == nil {
			continue
		}
		notification := item.Notification
		resp.PrivateMessages = append(resp.PrivateMessages,
			convertPrivateMessage(*data.PrivateMessage, *data.Creator, *data.Recipient, &notification))
		profiles = append(profiles, convertPerson(*data.Creator), convertPerson(*data.Recipient))
	}
	resp.Profiles = uniquePersons(profiles)
	return resp, nil
}

func (a *Adapter) CreatePrivateMessage(ctx context.Context, form schemas.CreatePrivateMessage) (*schemas.PrivateMessage, error) {
	var out privateMessageResponse
	body := map[string]any{"content": form.Body, "recipient_id": form.RecipientID}
	if err := a.client.Post(ctx, apiRoot+"/private_message", body, &out); err != nil {
		return nil, err
	}
	view := out.PrivateMessageView
	pm := convertPrivateMessage(view.PrivateMessage, view.Creator, view.Recipient, nil)
	return &pm, nil
}

func (a *Adapter) MarkPrivateMessageRead(ctx context.Context, form schemas.MarkPrivateMessageRead) error {
	return a.markNotificationRead(ctx, form.ID, form.Read)
}

func (a *Adapter) GetReplies(ctx context.Context, form schemas.GetReplies) (*blueprint.GetRepliesResponse, error) {
	return a.commentNotifications(ctx, "Reply", form)
}

func (a *Adapter) GetMentions(ctx context.Context, form schemas.GetReplies) (*blueprint.GetRepliesResponse, error) {
	return a.commentNotifications(ctx, "Mention", form)
}

func (a *Adapter) commentNotifications(ctx context.Context, kind string, form schemas.GetReplies) (*blueprint.GetRepliesResponse, error) {
	out, err := a.listNotifications(ctx, kind, form.UnreadOnly, form.PageCursor)
	if err != nil {
		return nil, err
	}
	resp := &blueprint.GetRepliesResponse{NextCursor: out.NextPage}
	var profiles []schemas.Person
	for _, item := range out.Items {
		if item.Data.Type != "comment" {
			continue
		}
		resp.Replies = append(resp.Replies, convertReply(item))
		resp.Comments = append(resp.Comments, convertComment(notificationToCommentView(item.Data), a.client.Authenticated()))
		if item.Data.Creator != nil {
			profiles = append(profiles, convertPerson(*item.Data.Creator))
		}
	}
	resp.Profiles = uniquePersons(profiles)
	return resp, nil
}

func (a *Adapter) MarkReplyRead(ctx context.Context, form schemas.MarkReplyRead) error {
	return a.markNotificationRead(ctx, form.ID, form.Read)
}

func (a *Adapter) MarkMentionRead(ctx context.Context, form schemas.MarkMentionRead) error {
	return a.markNotificationRead(ctx, form.ID, form.Read)
}

func (a *Adapter) markNotificationRead(ctx context.Context, id int64, read bool) error {
	return a.client.Post(ctx, apiRoot+"/account/notifications/mark_as_read", map[string]any{
		"notification_id": id,
		"read":            read,
	}, nil)
}

func (a *Adapter) MarkAllRead(ctx context.Context) error {
	return a.client.Post(ctx, apiRoot+"/account/notifications/mark_all_as_read", nil, nil)
}

func (a *Adapter) GetLinkMetadata(ctx context.Context, form schemas.GetLinkMetadata) (*blueprint.LinkMetadata, error) {
	var out siteMetadataResponse
	query := url.Values{"url": {form.URL}}
	if err := a.client.Get(ctx, apiRoot+"/post/site_metadata", query, &out); err != nil {
		return nil, err
	}
	return &blueprint.LinkMetadata{
		Title:         out.Metadata.Title,
		Description:   out.Metadata.Description,
		ContentType:   out.Metadata.ContentType,
		ImageURL:      out.Metadata.Image,
		EmbedVideoURL: out.Metadata.EmbedVideoURL,
	}, nil
}

// uniquePersons deduplicates by apId, keeping first occurrence order.
func uniquePersons(people []schemas.Person) []schemas.Person {
	seen := make(map[string]struct{}, len(people))
	out := people[:0]
	for _, p := range people {
		if _, ok := seen[p.ApID]; ok {
			continue
		}
		seen[p.ApID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func uniqueCommunities(communities []schemas.Community) []schemas.Community {
	seen := make(map[string]struct{}, len(communities))
	out := communities[:0]
	for _, c := range communities {
		if _, ok := seen[c.ApID]; ok {
			continue
		}
		seen[c.ApID] = struct{}{}
		out = append(out, c)
	}
	return out
}
