package lemmyv4

import (
	"Alcove/internal/backends/httpapi"
	"Alcove/internal/schemas"
)

type wireTime = httpapi.Time

// Conversion functions build fresh normalized values from wire views.
// They never retain references into the wire structs, so callers own the
// results outright.

// myVote translates the viewer's action record into the tri-state vote:
// nil without a session, 0 for "seen but not voted", else the direction.
func myVote(loggedIn bool, voteIsUpvote *bool) *int {
	if !loggedIn {
		return nil
	}
	v := 0
	if voteIsUpvote != nil {
		if *voteIsUpvote {
			v = 1
		} else {
			v = -1
		}
	}
	return &v
}

func convertCommunity(view wireCommunityView) schemas.Community {
	c := view.Community
	subscribed := schemas.SubscribedStateNotSubscribed
	if view.CommunityActions != nil && view.CommunityActions.FollowState != nil {
		switch *view.CommunityActions.FollowState {
		case "pending", "approval_required":
			subscribed = schemas.SubscribedStatePending
		case "accepted":
			subscribed = schemas.SubscribedStateSubscribed
		}
	}
	return schemas.Community{
		CreatedAt:                c.PublishedAt.Time,
		ID:                       c.ID,
		ApID:                     c.ApID,
		Slug:                     schemas.CreateSlug(c.ApID, c.Name).String(),
		Icon:                     c.Icon,
		Banner:                   c.Banner,
		Description:              c.Description,
		UsersActiveDayCount:      c.UsersActiveDay,
		UsersActiveWeekCount:     c.UsersActiveWeek,
		UsersActiveMonthCount:    c.UsersActiveMonth,
		UsersActiveHalfYearCount: c.UsersActiveHalfYear,
		PostCount:                c.Posts,
		CommentCount:             c.Comments,
		SubscriberCount:          c.Subscribers,
		SubscribersLocalCount:    c.SubscribersLocal,
		NSFW:                     c.NSFW,
		Subscribed:               subscribed,
	}
}

func convertPerson(p wirePerson) schemas.Person {
	return schemas.Person{
		ID:           p.ID,
		ApID:         p.ApID,
		Slug:         schemas.CreateSlug(p.ApID, p.Name).String(),
		Avatar:       p.Avatar,
		Bio:          p.Bio,
		MatrixUserID: p.MatrixUserID,
		CreatedAt:    p.PublishedAt.Time,
		Deleted:      p.Deleted,
		IsBot:        p.BotAccount,
		PostCount:    p.PostCount,
		CommentCount: p.CommentCount,
	}
}

func convertPost(view wirePostView, loggedIn bool) schemas.Post {
	p := view.Post
	var aspectRatio *float64
	if view.ImageDetails != nil && view.ImageDetails.Height > 0 {
		ar := view.ImageDetails.Width / view.ImageDetails.Height
		aspectRatio = &ar
	}
	var actions wirePostActions
	if view.PostActions != nil {
		actions = *view.PostActions
	}
	return schemas.Post{
		ID:                    p.ID,
		ApID:                  p.ApID,
		CreatedAt:             p.PublishedAt.Time,
		Title:                 p.Name,
		Body:                  p.Body,
		URL:                   p.URL,
		URLContentType:        p.URLContentType,
		ThumbnailURL:          p.ThumbnailURL,
		ThumbnailAspectRatio:  aspectRatio,
		EmbedVideoURL:         p.EmbedVideoURL,
		AltText:               p.AltText,
		Upvotes:               p.Upvotes,
		Downvotes:             p.Downvotes,
		CommentsCount:         p.Comments,
		Deleted:               p.Deleted,
		Removed:               p.Removed,
		Locked:                p.Locked,
		NSFW:                  p.NSFW || view.Community.NSFW,
		FeaturedCommunity:     p.FeaturedCommunity,
		FeaturedLocal:         p.FeaturedLocal,
		CommunityApID:         view.Community.ApID,
		CommunitySlug:         schemas.CreateSlug(view.Community.ApID, view.Community.Name).String(),
		CreatorID:             view.Creator.ID,
		CreatorApID:           view.Creator.ApID,
		CreatorSlug:           schemas.CreateSlug(view.Creator.ApID, view.Creator.Name).String(),
		IsBannedFromCommunity: view.CreatorBannedFromCommunity,
		Read:                  view.PostActions != nil && actions.ReadAt != nil,
		Saved:                 view.PostActions != nil && actions.SavedAt != nil,
		MyVote:                myVote(loggedIn, actions.VoteIsUpvote),
	}
}

func convertComment(view wireCommentView, loggedIn bool) schemas.Comment {
	c := view.Comment
	var actions wireCommentActions
	if view.CommentActions != nil {
		actions = *view.CommentActions
	}
	return schemas.Comment{
		ID:                    c.ID,
		ApID:                  c.ApID,
		CreatedAt:             c.PublishedAt.Time,
		Body:                  c.Content,
		Path:                  c.Path,
		Upvotes:               c.Upvotes,
		Downvotes:             c.Downvotes,
		ChildCount:            c.ChildCount,
		Deleted:               c.Deleted,
		Removed:               c.Removed,
		Locked:                c.Locked,
		PostID:                view.Post.ID,
		PostApID:              view.Post.ApID,
		PostTitle:             view.Post.Name,
		CommunityApID:         view.Community.ApID,
		CommunitySlug:         schemas.CreateSlug(view.Community.ApID, view.Community.Name).String(),
		CreatorID:             view.Creator.ID,
		CreatorApID:           view.Creator.ApID,
		CreatorSlug:           schemas.CreateSlug(view.Creator.ApID, view.Creator.Name).String(),
		IsBannedFromCommunity: view.CreatorBannedFromCommunity,
		Saved:                 view.CommentActions != nil && actions.SavedAt != nil,
		MyVote:                myVote(loggedIn, actions.VoteIsUpvote),
	}
}

// searchItemToPostView reassembles a full post view from a search item.
func searchItemToPostView(item wireSearchItem) wirePostView {
	view := wirePostView{
		PostActions:                item.PostActions,
		ImageDetails:               item.ImageDetails,
		CreatorBannedFromCommunity: item.CreatorBannedFromCommunity,
	}
	if item.Post != nil {
		view.Post = *item.Post
	}
	if item.Community != nil {
		view.Community = *item.Community
	}
	if item.Creator != nil {
		view.Creator = *item.Creator
	}
	return view
}

func searchItemToCommentView(item wireSearchItem) wireCommentView {
	view := wireCommentView{
		CommentActions:             item.CommentActions,
		CreatorBannedFromCommunity: item.CreatorBannedFromCommunity,
	}
	if item.Comment != nil {
		view.Comment = *item.Comment
	}
	if item.Post != nil {
		view.Post = *item.Post
	}
	if item.Community != nil {
		view.Community = *item.Community
	}
	if item.Creator != nil {
		view.Creator = *item.Creator
	}
	return view
}

func convertPrivateMessage(pm wirePrivateMessage, creator, recipient wirePerson, notification *wireNotification) schemas.PrivateMessage {
	msg := schemas.PrivateMessage{
		CreatedAt:     pm.PublishedAt.Time,
		Body:          pm.Content,
		ID:            -1,
		CreatorID:     creator.ID,
		CreatorApID:   creator.ApID,
		CreatorSlug:   schemas.CreateSlug(creator.ApID, creator.Name).String(),
		RecipientID:   recipient.ID,
		RecipientApID: recipient.ApID,
		RecipientSlug: schemas.CreateSlug(recipient.ApID, recipient.Name).String(),
	}
	if notification != nil {
		msg.ID = notification.ID
		msg.Read = notification.Read
	}
	return msg
}

// convertReply builds a reply/mention notification from a comment-typed
// notification payload.
func convertReply(view wireNotificationView) schemas.Reply {
	data := view.Data
	reply := schemas.Reply{
		CreatedAt: view.Notification.PublishedAt.Time,
		ID:        view.Notification.ID,
		Read:      view.Notification.Read,
	}
	if data.Comment != nil {
		reply.CommentID = data.Comment.ID
		reply.CommentApID = data.Comment.ApID
		reply.ApID = data.Comment.ApID
		reply.Body = data.Comment.Content
		reply.Path = data.Comment.Path
		reply.Deleted = data.Comment.Deleted
		reply.Removed = data.Comment.Removed
	}
	if data.Community != nil {
		reply.CommunityApID = data.Community.ApID
		reply.CommunitySlug = schemas.CreateSlug(data.Community.ApID, data.Community.Name).String()
	}
	if data.Creator != nil {
		reply.CreatorID = data.Creator.ID
		reply.CreatorApID = data.Creator.ApID
		reply.CreatorSlug = schemas.CreateSlug(data.Creator.ApID, data.Creator.Name).String()
	}
	if data.Post != nil {
		reply.PostID = data.Post.ID
		reply.PostApID = data.Post.ApID
		reply.PostName = data.Post.Name
	}
	return reply
}

// notificationToCommentView reassembles the comment view embedded in a
// comment-typed notification so callers can warm their comment caches.
func notificationToCommentView(data wireNotificationData) wireCommentView {
	view := wireCommentView{
		CommentActions:             data.CommentActions,
		CreatorBannedFromCommunity: data.CreatorBannedFromCommunity,
	}
	if data.Comment != nil {
		view.Comment = *data.Comment
	}
	if data.Post != nil {
		view.Post = *data.Post
	}
	if data.Community != nil {
		view.Community = *data.Community
	}
	if data.Creator != nil {
		view.Creator = *data.Creator
	}
	return view
}

func convertOAuthProviders(providers []wireOAuthProvider) []schemas.OAuthProvider {
	if len(providers) == 0 {
		return nil
	}
	out := make([]schemas.OAuthProvider, 0, len(providers))
	for _, p := range providers {
		out = append(out, schemas.OAuthProvider{
			ID:                    p.ID,
			DisplayName:           p.DisplayName,
			AuthorizationEndpoint: p.AuthorizationEndpoint,
			TokenEndpoint:         p.TokenEndpoint,
			ClientID:              p.ClientID,
			Scopes:                p.Scopes,
		})
	}
	return out
}

func convertRegistrationMode(mode string) schemas.RegistrationMode {
	switch mode {
	case "closed":
		return schemas.RegistrationClosed
	case "require_application":
		return schemas.RegistrationRequireApplication
	default:
		return schemas.RegistrationOpen
	}
}
