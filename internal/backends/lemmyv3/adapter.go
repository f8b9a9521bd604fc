// Package lemmyv3 adapts the Lemmy v3 (0.19.x) HTTP API onto the
// normalized operation contract.
package lemmyv3

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

const defaultLimit = 50

// Adapter implements blueprint.Backend against one Lemmy v3 instance.
type Adapter struct {
	client   *httpapi.Client
	instance string
	root     string
	resolve  *resolver.Resolver
}

var _ blueprint.Backend = (*Adapter)(nil)

// New creates an adapter bound to an instance. token may be empty for a
// guest session.
func New(instance, userAgent, token string, httpClient *http.Client) (*Adapter, error) {
	return NewWithAPIRoot(instance, userAgent, token, httpClient, "/api/v3")
}

// NewWithAPIRoot creates an adapter speaking the v3 wire protocol under an
// alternate path prefix. PieFed serves a v3-shaped API rooted at
// /api/alpha.
func NewWithAPIRoot(instance, userAgent, token string, httpClient *http.Client, apiRoot string) (*Adapter, error) {
	client, err := httpapi.New(instance, userAgent, token, httpClient)
	if err != nil {
		return nil, err
	}
	a := &Adapter{
		client:   client,
		instance: strings.TrimRight(instance, "/"),
		root:     apiRoot,
	}
	a.resolve = resolver.New(a.resolveRemote)
	return a, nil
}

func (a *Adapter) Software() schemas.Software { return schemas.SoftwareLemmy }
func (a *Adapter) Family() blueprint.Family   { return blueprint.FamilyLemmyV3 }
func (a *Adapter) Instance() string           { return a.instance }

func (a *Adapter) resolveObjectID(ctx context.Context, apID string) (resolver.ObjectIDs, error) {
	if ids, ok := resolver.LocalObjectIDs(a.instance, apID); ok {
		return ids, nil
	}
	return a.resolve.Resolve(ctx, apID)
}

func (a *Adapter) resolveRemote(ctx context.Context, apID string) (resolver.ObjectIDs, error) {
	var out resolveObjectResponse
	query := url.Values{"q": {apID}}
	if err := a.client.Get(ctx, a.root+"/resolve_object", query, &out); err != nil {
		return resolver.ObjectIDs{}, err
	}
	ids := resolver.ObjectIDs{}
	switch {
	case out.Post != nil:
		ids.PostID = &out.Post.Post.ID
	case out.Comment != nil:
		ids.CommentID = &out.Comment.Comment.ID
	case out.Community != nil:
		ids.CommunityID = &out.Community.Community.ID
	case out.Person != nil:
		ids.PersonID = &out.Person.Person.ID
	}
	return ids, nil
}

func (a *Adapter) GetSite(ctx context.Context) (*blueprint.GetSiteResponse, error) {
	var site getSiteResponse
	if err := a.client.Get(ctx, a.root+"/site", nil, &site); err != nil {
		return nil, err
	}

	admins := make([]schemas.Person, 0, len(site.Admins))
	adminApIDs := make([]string, 0, len(site.Admins))
	for _, admin := range site.Admins {
		p := convertPerson(admin)
		admins = append(admins, p)
		adminApIDs = append(adminApIDs, p.ApID)
	}

	local := site.SiteView.LocalSite
	counts := site.SiteView.Counts

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
		OAuthProviders:           convertOAuthProviders(site.OAuthProviders),
		UsersActiveDayCount:      counts.UsersActiveDay,
		UsersActiveWeekCount:     counts.UsersActiveWeek,
		UsersActiveMonthCount:    counts.UsersActiveMonth,
		UsersActiveHalfYearCount: counts.UsersActiveHalfYear,
		PostCount:                counts.Posts,
		CommentCount:             counts.Comments,
		UserCount:                counts.Users,
		BlurNSFW:                 true,
		EnablePostDownvotes:      local.EnableDownvotes,
		EnableCommentDownvotes:   local.EnableDownvotes,
	}

	profiles := admins
	if my := site.MyUser; my != nil {
		me := convertPerson(wirePersonView{Person: my.LocalUserView.Person})
		normalized.Me = &me
		normalized.MyEmail = my.LocalUserView.LocalUser.Email
		normalized.ShowNSFW = my.LocalUserView.LocalUser.ShowNSFW
		for _, m := range my.Moderates {
			normalized.Moderates = append(normalized.Moderates, m.Community.ApID)
		}
		for _, f := range my.Follows {
			normalized.Follows = append(normalized.Follows, f.Community.ApID)
		}
		for _, b := range my.CommunityBlocks {
			normalized.CommunityBlocks = append(normalized.CommunityBlocks, b.Community.ApID)
		}
		for _, b := range my.PersonBlocks {
			normalized.PersonBlocks = append(normalized.PersonBlocks, b.Target.ApID)
		}
		profiles = append(profiles, me)
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
	var out postResponse
	query := url.Values{"id": {strconv.FormatInt(*ids.PostID, 10)}}
	if err := a.client.Get(ctx, a.root+"/post", query, &out); err != nil {
		return nil, err
	}
	return &blueprint.GetPostResponse{
		Post:    convertPost(out.PostView, a.client.Authenticated()),
		Creator: convertPerson(wirePersonView{Person: out.PostView.Creator}),
	}, nil
}

func (a *Adapter) GetPosts(ctx context.Context, form schemas.GetPosts) (*blueprint.GetPostsResponse, error) {
	query := url.Values{"limit": {strconv.Itoa(defaultLimit)}}
	if sort := mapPostSort(form.Sort); sort != "" {
		query.Set("sort", sort)
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

	var out getPostsResponse
	if err := a.client.Get(ctx, a.root+"/post/list", query, &out); err != nil {
		return nil, err
	}

	posts := make([]blueprint.PostItem, 0, len(out.Posts))
	for _, view := range out.Posts {
		posts = append(posts, blueprint.PostItem{
			Post:      convertPost(view, a.client.Authenticated()),
			Creator:   convertPerson(wirePersonView{Person: view.Creator}),
			Community: convertCommunity(wireCommunityView{Community: view.Community}),
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
	if err := a.client.Post(ctx, a.root+"/post", body, &out); err != nil {
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
	if err := a.client.Put(ctx, a.root+"/post", body, &out); err != nil {
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
	return a.postAction(ctx, "/post/like", map[string]any{
		"post_id": form.PostID,
		"score":   form.Score,
	})
}

func (a *Adapter) SavePost(ctx context.Context, form schemas.SavePost) (*schemas.Post, error) {
	body := map[string]any{"post_id": form.PostID, "save": form.Save}
	var out postResponse
	if err := a.client.Put(ctx, a.root+"/post/save", body, &out); err != nil {
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
	if err := a.client.Post(ctx, a.root+path, body, &out); err != nil {
		return nil, err
	}
	post := convertPost(out.PostView, a.client.Authenticated())
	return &post, nil
}

func (a *Adapter) MarkPostRead(ctx context.Context, form schemas.MarkPostRead) error {
	return a.client.Post(ctx, a.root+"/post/mark_as_read", map[string]any{
		"post_ids": form.PostIDs,
		"read":     form.Read,
	}, nil)
}

func (a *Adapter) CreatePostReport(ctx context.Context, form schemas.CreatePostReport) error {
	return a.client.Post(ctx, a.root+"/post/report", map[string]any{
		"post_id": form.PostID,
		"reason":  form.Reason,
	}, nil)
}

func (a *Adapter) GetComments(ctx context.Context, form schemas.GetComments) (*blueprint.GetCommentsResponse, error) {
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"type_": {"All"},
		"limit": {strconv.Itoa(defaultLimit)},
		"page":  {strconv.Itoa(page)},
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

	var out getCommentsResponse
	if err := a.client.Get(ctx, a.root+"/comment/list", query, &out); err != nil {
		return nil, err
	}

	comments := make([]schemas.Comment, 0, len(out.Comments))
	creators := make([]schemas.Person, 0, len(out.Comments))
	for _, view := range out.Comments {
		comments = append(comments, convertComment(view, a.client.Authenticated()))
		creators = append(creators, convertPerson(wirePersonView{Person: view.Creator}))
	}

	// With max_depth set the listing is the whole visible tree; paging
	// past it would return overlapping slices of the same thread.
	var nextCursor *string
	if form.MaxDepth == nil {
		nextCursor = nextPageCursor(page, len(out.Comments), defaultLimit)
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
	if err := a.client.Put(ctx, a.root+"/comment", body, &out); err != nil {
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
	return a.commentAction(ctx, "/comment/like", map[string]any{
		"comment_id": form.ID,
		"score":      form.Score,
	})
}

func (a *Adapter) SaveComment(ctx context.Context, form schemas.SaveComment) (*schemas.Comment, error) {
	body := map[string]any{"comment_id": form.CommentID, "save": form.Save}
	var out commentResponse
	if err := a.client.Put(ctx, a.root+"/comment/save", body, &out); err != nil {
		return nil, err
	}
	comment := convertComment(out.CommentView, a.client.Authenticated())
	return &comment, nil
}

func (a *Adapter) LockComment(ctx context.Context, form schemas.LockComment) (*schemas.Comment, error) {
	return nil, blueprint.ErrNotImplemented
}

func (a *Adapter) commentAction(ctx context.Context, path string, body map[string]any) (*schemas.Comment, error) {
	var out commentResponse
	if err := a.client.Post(ctx, a.root+path, body, &out); err != nil {
		return nil, err
	}
	comment := convertComment(out.CommentView, a.client.Authenticated())
	return &comment, nil
}

func (a *Adapter) CreateCommentReport(ctx context.Context, form schemas.CreateCommentReport) error {
	return a.client.Post(ctx, a.root+"/comment/report", map[string]any{
		"comment_id": form.CommentID,
		"reason":     form.Reason,
	}, nil)
}

func (a *Adapter) GetCommunity(ctx context.Context, form schemas.GetCommunity) (*blueprint.GetCommunityResponse, error) {
	var out communityResponse
	query := url.Values{"name": {form.Slug}}
	if err := a.client.Get(ctx, a.root+"/community", query, &out); err != nil {
		return nil, err
	}
	mods := make([]schemas.Person, 0, len(out.Moderators))
	for _, m := range out.Moderators {
		mods = append(mods, convertPerson(wirePersonView{Person: m.Moderator}))
	}
	return &blueprint.GetCommunityResponse{
		Community: convertCommunity(out.CommunityView),
		Mods:      mods,
	}, nil
}

func (a *Adapter) GetCommunities(ctx context.Context, form schemas.GetCommunities) (*blueprint.GetCommunitiesResponse, error) {
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"limit": {strconv.Itoa(defaultLimit)},
		"page":  {strconv.Itoa(page)},
	}
	if sort := mapCommunitySort(form.Sort); sort != "" {
		query.Set("sort", sort)
	}
	if form.Type != "" {
		query.Set("type_", mapListingType(form.Type))
	}
	var out listCommunitiesResponse
	if err := a.client.Get(ctx, a.root+"/community/list", query, &out); err != nil {
		return nil, err
	}
	communities := make([]schemas.Community, 0, len(out.Communities))
	for _, view := range out.Communities {
		communities = append(communities, convertCommunity(view))
	}
	return &blueprint.GetCommunitiesResponse{
		Communities: communities,
		NextCursor:  nextPageCursor(page, len(out.Communities), defaultLimit),
	}, nil
}

func (a *Adapter) FollowCommunity(ctx context.Context, form schemas.FollowCommunity) (*schemas.Community, error) {
	var out struct {
		CommunityView wireCommunityView `json:"community_view"`
	}
	body := map[string]any{"community_id": form.CommunityID, "follow": form.Follow}
	if err := a.client.Post(ctx, a.root+"/community/follow", body, &out); err != nil {
		return nil, err
	}
	community := convertCommunity(out.CommunityView)
	return &community, nil
}

func (a *Adapter) BlockCommunity(ctx context.Context, form schemas.BlockCommunity) error {
	return a.client.Post(ctx, a.root+"/community/block", map[string]any{
		"community_id": form.CommunityID,
		"block":        form.Block,
	}, nil)
}

func (a *Adapter) GetPerson(ctx context.Context, form schemas.GetPerson) (*schemas.Person, error) {
	var out resolveObjectResponse
	query := url.Values{"q": {form.ApIDOrUsername}}
	if err := a.client.Get(ctx, a.root+"/resolve_object", query, &out); err != nil {
		return nil, err
	}
	if out.Person == nil {
		return nil, blueprint.NewNotFoundError("person", form.ApIDOrUsername)
	}
	person := convertPerson(*out.Person)
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
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"person_id": {strconv.FormatInt(*ids.PersonID, 10)},
		"sort":      {"New"},
		"limit":     {strconv.Itoa(defaultLimit)},
		"page":      {strconv.Itoa(page)},
	}
	var out getPersonDetailsResponse
	if err := a.client.Get(ctx, a.root+"/user", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.GetPersonContentResponse{}
	count := 0
	switch form.Type {
	case schemas.PersonContentComments:
		for _, view := range out.Comments {
			resp.Comments = append(resp.Comments, convertComment(view, a.client.Authenticated()))
		}
		count = len(out.Comments)
	default:
		for _, view := range out.Posts {
			resp.Posts = append(resp.Posts, convertPost(view, a.client.Authenticated()))
		}
		count = len(out.Posts)
	}
	resp.NextCursor = nextPageCursor(page, count, defaultLimit)
	return resp, nil
}

func (a *Adapter) BlockPerson(ctx context.Context, form schemas.BlockPerson) error {
	return a.client.Post(ctx, a.root+"/user/block", map[string]any{
		"person_id": form.PersonID,
		"block":     form.Block,
	}, nil)
}

func (a *Adapter) Search(ctx context.Context, form schemas.Search) (*blueprint.SearchResponse, error) {
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	limit := defaultLimit
	if form.Limit != nil {
		limit = *form.Limit
	}
	sort := "New"
	if form.Type == schemas.SearchCommunities || form.Type == schemas.SearchUsers {
		sort = "TopAll"
	}
	query := url.Values{
		"q":            {form.Q},
		"type_":        {string(form.Type)},
		"limit":        {strconv.Itoa(limit)},
		"page":         {strconv.Itoa(page)},
		"sort":         {sort},
		"listing_type": {"All"},
	}
	if form.CommunitySlug != "" {
		query.Set("community_name", form.CommunitySlug)
	}

	var out searchResponse
	if err := a.client.Get(ctx, a.root+"/search", query, &out); err != nil {
		return nil, err
	}

	resp := &blueprint.SearchResponse{}
	var communities []schemas.Community
	var users []schemas.Person
	for _, view := range out.Posts {
		resp.Posts = append(resp.Posts, convertPost(view, a.client.Authenticated()))
		communities = append(communities, convertCommunity(wireCommunityView{Community: view.Community}))
		users = append(users, convertPerson(wirePersonView{Person: view.Creator}))
	}
	for _, view := range out.Comments {
		resp.Comments = append(resp.Comments, convertComment(view, a.client.Authenticated()))
		communities = append(communities, convertCommunity(wireCommunityView{Community: view.Community}))
		users = append(users, convertPerson(wirePersonView{Person: view.Creator}))
	}
	for _, view := range out.Communities {
		communities = append(communities, convertCommunity(view))
	}
	for _, view := range out.Users {
		users = append(users, convertPerson(view))
	}
	resp.Communities = uniqueCommunities(communities)
	resp.Users = uniquePersons(users)

	count := len(out.Posts) + len(out.Comments) + len(out.Communities) + len(out.Users)
	resp.NextCursor = nextPageCursor(page, count, limit)
	return resp, nil
}

func (a *Adapter) ResolveObject(ctx context.Context, form schemas.ResolveObject) (*blueprint.ResolveObjectResponse, error) {
	var out resolveObjectResponse
	query := url.Values{"q": {form.Q}}
	if err := a.client.Get(ctx, a.root+"/resolve_object", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.ResolveObjectResponse{}
	if out.Post != nil {
		post := convertPost(*out.Post, a.client.Authenticated())
		resp.Post = &post
	}
	if out.Comment != nil {
		comment := convertComment(*out.Comment, a.client.Authenticated())
		resp.Comment = &comment
	}
	if out.Community != nil {
		community := convertCommunity(*out.Community)
		resp.Community = &community
	}
	if out.Person != nil {
		person := convertPerson(*out.Person)
		resp.Person = &person
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
	if err := a.client.Post(ctx, a.root+"/user/login", body, &out); err != nil {
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
	if err := a.client.Post(ctx, a.root+"/user/logout", nil, &out); err != nil {
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
	if err := a.client.Post(ctx, a.root+"/user/register", body, &out); err != nil {
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
	if err := a.client.Get(ctx, a.root+"/user/get_captcha", nil, &out); err != nil {
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
	return a.client.Put(ctx, a.root+"/user/save_user_settings", body, nil)
}

func (a *Adapter) GetPrivateMessages(ctx context.Context, form schemas.GetPrivateMessages) (*blueprint.GetPrivateMessagesResponse, error) {
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"limit": {strconv.Itoa(defaultLimit)},
		"page":  {strconv.Itoa(page)},
	}
	if form.UnreadOnly {
		query.Set("unread_only", "true")
	}
	var out getPrivateMessagesResponse
	if err := a.client.Get(ctx, a.root+"/private_message/list", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.GetPrivateMessagesResponse{
		NextCursor: nextPageCursor(page, len(out.PrivateMessages), defaultLimit),
	}
	var profiles []schemas.Person
	for _, view := range out.PrivateMessages {
		resp.PrivateMessages = append(resp.PrivateMessages, convertPrivateMessage(view))
		profiles = append(profiles,
			convertPerson(wirePersonView{Person: view.Creator}),
			convertPerson(wirePersonView{Person: view.Recipient}))
	}
	resp.Profiles = uniquePersons(profiles)
	return resp, nil
}

func (a *Adapter) CreatePrivateMessage(ctx context.Context, form schemas.CreatePrivateMessage) (*schemas.PrivateMessage, error) {
	var out privateMessageResponse
	body := map[string]any{"content": form.Body, "recipient_id": form.RecipientID}
	if err := a.client.Post(ctx, a.root+"/private_message", body, &out); err != nil {
		return nil, err
	}
	pm := convertPrivateMessage(out.PrivateMessageView)
	return &pm, nil
}

func (a *Adapter) MarkPrivateMessageRead(ctx context.Context, form schemas.MarkPrivateMessageRead) error {
	return a.client.Post(ctx, a.root+"/private_message/mark_as_read", map[string]any{
		"private_message_id": form.ID,
		"read":               form.Read,
	}, nil)
}

func (a *Adapter) GetReplies(ctx context.Context, form schemas.GetReplies) (*blueprint.GetRepliesResponse, error) {
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	query := a.notificationQuery(page, form.UnreadOnly)
	var out getRepliesResponse
	if err := a.client.Get(ctx, a.root+"/user/replies", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.GetRepliesResponse{
		NextCursor: nextPageCursor(page, len(out.Replies), defaultLimit),
	}
	var profiles []schemas.Person
	for _, view := range out.Replies {
		commentView := replyToCommentView(view)
		resp.Replies = append(resp.Replies, convertReply(view.CommentReply, commentView))
		resp.Comments = append(resp.Comments, convertComment(commentView, a.client.Authenticated()))
		profiles = append(profiles, convertPerson(wirePersonView{Person: view.Creator}))
	}
	resp.Profiles = uniquePersons(profiles)
	return resp, nil
}

func (a *Adapter) GetMentions(ctx context.Context, form schemas.GetReplies) (*blueprint.GetRepliesResponse, error) {
	page, err := pageFromCursor(form.PageCursor)
	if err != nil {
		return nil, err
	}
	query := a.notificationQuery(page, form.UnreadOnly)
	var out getMentionsResponse
	if err := a.client.Get(ctx, a.root+"/user/mention", query, &out); err != nil {
		return nil, err
	}
	resp := &blueprint.GetRepliesResponse{
		NextCursor: nextPageCursor(page, len(out.Mentions), defaultLimit),
	}
	var profiles []schemas.Person
	for _, view := range out.Mentions {
		commentView := replyToCommentView(wireCommentReplyView{
			CommentReply:               view.PersonMention,
			Comment:                    view.Comment,
			Post:                       view.Post,
			Community:                  view.Community,
			Creator:                    view.Creator,
			Counts:                     view.Counts,
			MyVote:                     view.MyVote,
			Saved:                      view.Saved,
			CreatorBannedFromCommunity: view.CreatorBannedFromCommunity,
		})
		resp.Replies = append(resp.Replies, convertReply(view.PersonMention, commentView))
		resp.Comments = append(resp.Comments, convertComment(commentView, a.client.Authenticated()))
		profiles = append(profiles, convertPerson(wirePersonView{Person: view.Creator}))
	}
	resp.Profiles = uniquePersons(profiles)
	return resp, nil
}

func (a *Adapter) notificationQuery(page int, unreadOnly bool) url.Values {
	query := url.Values{
		"sort":  {"New"},
		"limit": {strconv.Itoa(defaultLimit)},
		"page":  {strconv.Itoa(page)},
	}
	if unreadOnly {
		query.Set("unread_only", "true")
	}
	return query
}

func (a *Adapter) MarkReplyRead(ctx context.Context, form schemas.MarkReplyRead) error {
	return a.client.Post(ctx, a.root+"/comment/mark_as_read", map[string]any{
		"comment_reply_id": form.ID,
		"read":             form.Read,
	}, nil)
}

func (a *Adapter) MarkMentionRead(ctx context.Context, form schemas.MarkMentionRead) error {
	return a.client.Post(ctx, a.root+"/user/mention/mark_as_read", map[string]any{
		"person_mention_id": form.ID,
		"read":              form.Read,
	}, nil)
}

func (a *Adapter) MarkAllRead(ctx context.Context) error {
	return a.client.Post(ctx, a.root+"/user/mark_all_as_read", nil, nil)
}

func (a *Adapter) GetLinkMetadata(ctx context.Context, form schemas.GetLinkMetadata) (*blueprint.LinkMetadata, error) {
	var out siteMetadataResponse
	query := url.Values{"url": {form.URL}}
	if err := a.client.Get(ctx, a.root+"/post/site_metadata", query, &out); err != nil {
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
