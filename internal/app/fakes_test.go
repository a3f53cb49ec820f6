package app

import (
	"context"
	"sort"
	"time"

	"minisocial/internal/model"
)

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User)}
}

func (f *fakeUserStore) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdateProfilePic(userID uint, filename string) error {
	user, ok := f.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.ProfilePic = filename
	return nil
}

type fakePostStore struct {
	posts  map[uint]*model.Post
	likes  map[uint][]uint
	nextID uint
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		posts: make(map[uint]*model.Post),
		likes: make(map[uint][]uint),
	}
}

func (f *fakePostStore) Create(post *model.Post) error {
	f.nextID++
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostStore) GetByID(id uint) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostStore) ListByUserID(userID uint) ([]model.Post, error) {
	var posts []model.Post
	for _, post := range f.posts {
		if post.UserID == userID {
			posts = append(posts, *post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts, nil
}

func (f *fakePostStore) UpdateContent(postID uint, content string) error {
	post, ok := f.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	post.Content = content
	return nil
}

func (f *fakePostStore) Delete(postID uint) error {
	delete(f.posts, postID)
	delete(f.likes, postID)
	return nil
}

func (f *fakePostStore) ToggleLike(postID, userID uint) (bool, error) {
	likes := f.likes[postID]
	for i, id := range likes {
		if id == userID {
			f.likes[postID] = append(likes[:i], likes[i+1:]...)
			return false, nil
		}
	}
	f.likes[postID] = append(likes, userID)
	return true, nil
}

func (f *fakePostStore) LikeUserIDs(postID uint) ([]uint, error) {
	return append([]uint(nil), f.likes[postID]...), nil
}

type fakeActivityStore struct {
	activities []model.Activity
}

func (f *fakeActivityStore) ListRecentByUserID(userID uint, limit int) ([]model.Activity, error) {
	var out []model.Activity
	for i := len(f.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if f.activities[i].UserID == userID {
			out = append(out, f.activities[i])
		}
	}
	return out, nil
}

type fakePublisher struct {
	published []model.Activity
}

func (f *fakePublisher) Publish(_ context.Context, activity model.Activity) error {
	f.published = append(f.published, activity)
	return nil
}

type fakeFeedCache struct {
	feeds   map[uint][]PostView
	dirty   map[uint]bool
	sets    int
	deletes int
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{
		feeds: make(map[uint][]PostView),
		dirty: make(map[uint]bool),
	}
}

func (f *fakeFeedCache) GetFeed(_ context.Context, userID uint) ([]PostView, bool, error) {
	feed, ok := f.feeds[userID]
	return feed, ok, nil
}

func (f *fakeFeedCache) SetFeed(_ context.Context, userID uint, feed []PostView) error {
	f.sets++
	f.feeds[userID] = feed
	return nil
}

func (f *fakeFeedCache) DeleteFeed(_ context.Context, userID uint) error {
	f.deletes++
	delete(f.feeds, userID)
	return nil
}

func (f *fakeFeedCache) MarkDirty(_ context.Context, userID uint) error {
	f.dirty[userID] = true
	return nil
}

func (f *fakeFeedCache) IsDirty(_ context.Context, userID uint) (bool, error) {
	return f.dirty[userID], nil
}
