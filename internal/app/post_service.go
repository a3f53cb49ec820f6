package app

import (
	"context"
	"strings"
	"time"

	"minisocial/internal/model"
)

// PostStore is the persistence surface the post service needs.
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	ListByUserID(userID uint) ([]model.Post, error)
	UpdateContent(postID uint, content string) error
	Delete(postID uint) error
	ToggleLike(postID, userID uint) (bool, error)
	LikeUserIDs(postID uint) ([]uint, error)
}

type ActivityStore interface {
	ListRecentByUserID(userID uint, limit int) ([]model.Activity, error)
}

type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

type FeedCache interface {
	GetFeed(ctx context.Context, userID uint) ([]PostView, bool, error)
	SetFeed(ctx context.Context, userID uint, feed []PostView) error
	DeleteFeed(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

// PostView is one post as rendered on its owner's profile, with the like
// list resolved.
type PostView struct {
	ID            uint      `json:"id"`
	Content       string    `json:"content"`
	Likes         []uint    `json:"likes"`
	LikedByViewer bool      `json:"liked_by_viewer"`
	CreatedAt     time.Time `json:"created_at"`
}

type PostService struct {
	postStore     PostStore
	activityStore ActivityStore
	publisher     ActivityPublisher
	feedCache     FeedCache
}

type CreatePostInput struct {
	UserID  uint
	Content string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewPostService(postStore PostStore, activityStore ActivityStore, publisher ActivityPublisher, feedCache FeedCache) *PostService {
	return &PostService{
		postStore:     postStore,
		activityStore: activityStore,
		publisher:     publisher,
		feedCache:     feedCache,
	}
}

func (s *PostService) Create(input CreatePostInput) (*model.Post, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		UserID:  input.UserID,
		Content: content,
	}
	if err := s.postStore.Create(post); err != nil {
		return nil, err
	}

	s.invalidateFeed(input.UserID)
	s.publishActivity(input.UserID, post.ID, model.ActivityPostCreated)
	return post, nil
}

// GetOwned loads a post and checks the caller owns it. Edit, update and
// delete all go through here.
func (s *PostService) GetOwned(userID, postID uint) (*model.Post, error) {
	if userID == 0 || postID == 0 {
		return nil, ErrInvalidInput
	}
	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *PostService) Update(input UpdatePostInput) error {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return ErrInvalidInput
	}

	post, err := s.GetOwned(input.UserID, input.PostID)
	if err != nil {
		return err
	}
	if err := s.postStore.UpdateContent(post.ID, content); err != nil {
		return err
	}

	s.invalidateFeed(post.UserID)
	s.publishActivity(input.UserID, post.ID, model.ActivityPostUpdated)
	return nil
}

// Delete removes the post; the store drops it and its like rows together,
// which also prunes it from the owner's post list.
func (s *PostService) Delete(userID, postID uint) error {
	post, err := s.GetOwned(userID, postID)
	if err != nil {
		return err
	}
	if err := s.postStore.Delete(post.ID); err != nil {
		return err
	}

	s.invalidateFeed(post.UserID)
	s.publishActivity(userID, postID, model.ActivityPostDeleted)
	return nil
}

// ToggleLike flips the caller's like on the post. Two calls by the same user
// return the like list to its original state.
func (s *PostService) ToggleLike(userID, postID uint) (liked bool, err error) {
	if userID == 0 || postID == 0 {
		return false, ErrInvalidInput
	}
	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}

	liked, err = s.postStore.ToggleLike(postID, userID)
	if err != nil {
		return false, err
	}

	s.invalidateFeed(post.UserID)
	action := model.ActivityPostUnliked
	if liked {
		action = model.ActivityPostLiked
	}
	s.publishActivity(userID, postID, action)
	return liked, nil
}

// ProfileFeed resolves the user's posts with their like lists, newest first.
// Cached per user; every mutation above invalidates the cache.
func (s *PostService) ProfileFeed(userID uint) ([]PostView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	ctx := context.Background()
	if s.feedCache != nil {
		dirty, err := s.feedCache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.feedCache.GetFeed(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	posts, err := s.postStore.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	feed := make([]PostView, 0, len(posts))
	for _, post := range posts {
		likes, err := s.postStore.LikeUserIDs(post.ID)
		if err != nil {
			return nil, err
		}
		view := PostView{
			ID:        post.ID,
			Content:   post.Content,
			Likes:     likes,
			CreatedAt: post.CreatedAt,
		}
		for _, id := range likes {
			if id == userID {
				view.LikedByViewer = true
				break
			}
		}
		feed = append(feed, view)
	}

	if s.feedCache != nil {
		if dirty, dirtyErr := s.feedCache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.feedCache.SetFeed(ctx, userID, feed)
		}
	}
	return feed, nil
}

func (s *PostService) RecentActivity(userID uint, limit int) ([]model.Activity, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if s.activityStore == nil {
		return nil, nil
	}
	return s.activityStore.ListRecentByUserID(userID, limit)
}

func (s *PostService) invalidateFeed(userID uint) {
	if s.feedCache == nil {
		return
	}
	ctx := context.Background()
	_ = s.feedCache.MarkDirty(ctx, userID)
	_ = s.feedCache.DeleteFeed(ctx, userID)
}

// Activity publishing is best effort: the post mutation has already been
// persisted, a lost audit event must not fail the request.
func (s *PostService) publishActivity(userID, postID uint, action string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), model.Activity{
		UserID:    userID,
		PostID:    postID,
		Action:    action,
		CreatedAt: time.Now(),
	})
}
