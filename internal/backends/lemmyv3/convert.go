package lemmyv3

import (
	"Alcove/internal/backends/httpapi"
	"Alcove/internal/schemas"
)

type wireTime = httpapi.Time

// myVote normalizes v3's optional my_vote field into the tri-state vote:
// nil without a session, 0 when logged in but not voted, else the score.
func myVote(loggedIn bool, vote *int) *int {
	if !loggedIn {
		return nil
	}
	v := 0
	if vote != nil {
		v = *vote
	}
	return &v
}

func convertSubscribed(state string) schemas.SubscribedState {
	switch state {
	case "Subscribed":
		return schemas.SubscribedStateSubscribed
	case "Pending", "ApprovalRequired":
		return schemas.SubscribedStatePending
	default:
		return schemas.SubscribedStateNotSubscribed
	}
}

func convertCommunity(view wireCommunityView) schemas.Community {
	c := view.Community
	return schemas.Community{
		CreatedAt:                c.Published.Time,
		ID:                       c.ID,
		ApID:                     c.ApID,
		Slug:                     schemas.CreateSlug(c.ApID, c.Name).String(),
		Icon:                     c.Icon,
		Banner:                   c.Banner,
		Description:              c.Description,
		UsersActiveDayCount:      view.Counts.UsersActiveDay,
		UsersActiveWeekCount:     view.Counts.UsersActiveWeek,
		UsersActiveMonthCount:    view.Counts.UsersActiveMonth,
		UsersActiveHalfYearCount: view.Counts.UsersActiveHalfYear,
		PostCount:                view.Counts.Posts,
		CommentCount:             view.Counts.Comments,
		SubscriberCount:          view.Counts.Subscribers,
		SubscribersLocalCount:    view.Counts.SubscribersLocal,
		NSFW:                     c.NSFW,
		Subscribed:               convertSubscribed(view.Subscribed),
	}
}

func convertPerson(view wirePersonView) schemas.Person {
	p := view.Person
	person := schemas.Person{
		ID:           p.ID,
		ApID:         p.ApID,
		Slug:         schemas.CreateSlug(p.ApID, p.Name).String(),
		Avatar:       p.Avatar,
		Bio:          p.Bio,
		MatrixUserID: p.MatrixUserID,
		CreatedAt:    p.Published.Time,
		Deleted:      p.Deleted,
		IsBot:        p.BotAccount,
	}
	if view.Counts != nil {
		posts, comments := view.Counts.PostCount, view.Counts.CommentCount
		person.PostCount = &posts
		person.CommentCount = &comments
	}
	return person
}

func convertPost(view wirePostView, loggedIn bool) schemas.Post {
	p := view.Post
	var aspectRatio *float64
	if view.ImageDetails != nil && view.ImageDetails.Height > 0 {
		ar := view.ImageDetails.Width / view.ImageDetails.Height
		aspectRatio = &ar
	}
	return schemas.Post{
		ID:                    p.ID,
		ApID:                  p.ApID,
		CreatedAt:             p.Published.Time,
		Title:                 p.Name,
		Body:                  p.Body,
		URL:                   p.URL,
		URLContentType:        p.URLContentType,
		ThumbnailURL:          p.ThumbnailURL,
		ThumbnailAspectRatio:  aspectRatio,
		EmbedVideoURL:         p.EmbedVideoURL,
		AltText:               p.AltText,
		Upvotes:               view.Counts.Upvotes,
		Downvotes:             view.Counts.Downvotes,
		CommentsCount:         view.Counts.Comments,
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
		Read:                  view.Read,
		Saved:                 view.Saved,
		MyVote:                myVote(loggedIn, view.MyVote),
	}
}

func convertComment(view wireCommentView, loggedIn bool) schemas.Comment {
	c := view.Comment
	return schemas.Comment{
		ID:                    c.ID,
		ApID:                  c.ApID,
		CreatedAt:             c.Published.Time,
		Body:                  c.Content,
		Path:                  c.Path,
		Upvotes:               view.Counts.Upvotes,
		Downvotes:             view.Counts.Downvotes,
		ChildCount:            view.Counts.ChildCount,
		Deleted:               c.Deleted,
		Removed:               c.Removed,
		PostID:                view.Post.ID,
		PostApID:              view.Post.ApID,
		PostTitle:             view.Post.Name,
		CommunityApID:         view.Community.ApID,
		CommunitySlug:         schemas.CreateSlug(view.Community.ApID, view.Community.Name).String(),
		CreatorID:             view.Creator.ID,
		CreatorApID:           view.Creator.ApID,
		CreatorSlug:           schemas.CreateSlug(view.Creator.ApID, view.Creator.Name).String(),
		IsBannedFromCommunity: view.CreatorBannedFromCommunity,
		Saved:                 view.Saved,
		MyVote:                myVote(loggedIn, view.MyVote),
	}
}

func convertPrivateMessage(view wirePrivateMessageView) schemas.PrivateMessage {
	return schemas.PrivateMessage{
		CreatedAt:     view.PrivateMessage.Published.Time,
		Body:          view.PrivateMessage.Content,
		ID:            view.PrivateMessage.ID,
		Read:          view.PrivateMessage.Read,
		CreatorID:     view.Creator.ID,
		CreatorApID:   view.Creator.ApID,
		CreatorSlug:   schemas.CreateSlug(view.Creator.ApID, view.Creator.Name).String(),
		RecipientID:   view.Recipient.ID,
		RecipientApID: view.Recipient.ApID,
		RecipientSlug: schemas.CreateSlug(view.Recipient.ApID, view.Recipient.Name).String(),
	}
}

// replyToCommentView lets reply and mention views flow through the
// regular comment conversion so callers can warm their caches.
func replyToCommentView(view wireCommentReplyView) wireCommentView {
	return wireCommentView{
		Comment:                    view.Comment,
		Post:                       view.Post,
		Community:                  view.Community,
		Creator:                    view.Creator,
		Counts:                     view.Counts,
		MyVote:                     view.MyVote,
		Saved:                      view.Saved,
		CreatorBannedFromCommunity: view.CreatorBannedFromCommunity,
	}
}

func convertReply(notification wireCommentReply, view wireCommentView) schemas.Reply {
	return schemas.Reply{
		CreatedAt:     notification.Published.Time,
		ID:            notification.ID,
		Read:          notification.Read,
		Body:          view.Comment.Content,
		Path:          view.Comment.Path,
		ApID:          view.Comment.ApID,
		CommentID:     view.Comment.ID,
		CommentApID:   view.Comment.ApID,
		CommunityApID: view.Community.ApID,
		CommunitySlug: schemas.CreateSlug(view.Community.ApID, view.Community.Name).String(),
		CreatorID:     view.Creator.ID,
		CreatorApID:   view.Creator.ApID,
		CreatorSlug:   schemas.CreateSlug(view.Creator.ApID, view.Creator.Name).String(),
		PostID:        view.Post.ID,
		PostApID:      view.Post.ApID,
		PostName:      view.Post.Name,
		Deleted:       view.Comment.Deleted,
		Removed:       view.Comment.Removed,
	}
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
	case "Closed":
		return schemas.RegistrationClosed
	case "RequireApplication":
		return schemas.RegistrationRequireApplication
	default:
		return schemas.RegistrationOpen
	}
}
