package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"minisocial/internal/app"
	"minisocial/internal/config"
	"minisocial/internal/model"
	"minisocial/internal/transport/http/middleware"
)

const testJWTSecret = "handler-test-jwt-secret"

type memUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func (s *memUserStore) Create(user *model.User) error {
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByEmail(email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) UpdateProfilePic(userID uint, filename string) error {
	user, ok := s.users[userID]
	if !ok {
		return app.ErrUserNotFound
	}
	user.ProfilePic = filename
	return nil
}

type memPostStore struct {
	posts  map[uint]*model.Post
	likes  map[uint][]uint
	nextID uint
}

func (s *memPostStore) Create(post *model.Post) error {
	s.nextID++
	post.ID = s.nextID
	post.CreatedAt = time.Now()
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *memPostStore) GetByID(id uint) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (s *memPostStore) ListByUserID(userID uint) ([]model.Post, error) {
	var posts []model.Post
	for _, post := range s.posts {
		if post.UserID == userID {
			posts = append(posts, *post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts, nil
}

func (s *memPostStore) UpdateContent(postID uint, content string) error {
	post, ok := s.posts[postID]
	if !ok {
		return app.ErrPostNotFound
	}
	post.Content = content
	return nil
}

func (s *memPostStore) Delete(postID uint) error {
	delete(s.posts, postID)
	delete(s.likes, postID)
	return nil
}

func (s *memPostStore) ToggleLike(postID, userID uint) (bool, error) {
	likes := s.likes[postID]
	for i, id := range likes {
		if id == userID {
			s.likes[postID] = append(likes[:i], likes[i+1:]...)
			return false, nil
		}
	}
	s.likes[postID] = append(likes, userID)
	return true, nil
}

func (s *memPostStore) LikeUserIDs(postID uint) ([]uint, error) {
	return append([]uint(nil), s.likes[postID]...), nil
}

type memActivityStore struct{}

func (s *memActivityStore) ListRecentByUserID(uint, int) ([]model.Activity, error) {
	return nil, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.Activity) error { return nil }

type testEnv struct {
	router    *gin.Engine
	userStore *memUserStore
	postStore *memPostStore
}

// buildTestEnv wires the real router surface over in-memory stores: same
// middleware, same handlers, same templates.
func buildTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userStore := &memUserStore{users: make(map[uint]*model.User)}
	postStore := &memPostStore{
		posts: make(map[uint]*model.Post),
		likes: make(map[uint][]uint),
	}

	authCfg := config.AuthConfig{
		JWTSecret:            testJWTSecret,
		JWTExpireMinute:      0,
		CookieHTTPOnly:       true,
		DuplicateEmailStatus: http.StatusConflict,
	}
	uploadsCfg := config.UploadsConfig{
		Dir:      t.TempDir(),
		MaxBytes: 1 << 20,
	}

	authService := app.NewAuthService(userStore, authCfg.JWTSecret, 0)
	postService := app.NewPostService(postStore, &memActivityStore{}, nopPublisher{}, nil)

	authHandler := NewAuthHandler(authService, authCfg)
	postHandler := NewPostHandler(postService, authCfg.DuplicateEmailStatus)
	profileHandler := NewProfileHandler(authService, postService, uploadsCfg, authCfg)

	router := gin.New()
	router.LoadHTMLGlob("../../../../web/templates/*.html")

	router.GET("/", authHandler.ShowWelcome)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/profile/update", profileHandler.ShowUploadForm)

	authorized := router.Group("")
	authorized.Use(middleware.SessionAuth(authCfg.JWTSecret))
	authorized.GET("/profile", profileHandler.Show)
	authorized.POST("/post", postHandler.Create)
	authorized.GET("/like/:postId", postHandler.ToggleLike)
	authorized.GET("/edit/:postId", postHandler.EditForm)
	authorized.POST("/update/:postId", postHandler.Update)
	authorized.GET("/delete/:postId", postHandler.Delete)
	authorized.POST("/upload-profile", profileHandler.Upload)

	return &testEnv{router: router, userStore: userStore, postStore: postStore}
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

// register creates an account through the HTTP surface and returns its
// session cookie.
func (e *testEnv) register(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()
	resp := e.postForm(t, "/register", url.Values{
		"name":     {username},
		"username": {username},
		"email":    {email},
		"password": {password},
		"age":      {"30"},
	}, nil)
	mustStatus(t, resp.Code, http.StatusFound)
	if loc := resp.Header().Get("Location"); loc != "/profile" {
		t.Fatalf("register redirect = %q, want /profile", loc)
	}
	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("register did not set a session cookie")
	}
	return cookie
}

func sessionCookie(resp *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName {
			return cookie
		}
	}
	return nil
}

func mustStatus(t *testing.T, actual, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}
