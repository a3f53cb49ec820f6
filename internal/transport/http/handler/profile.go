package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"minisocial/internal/app"
	"minisocial/internal/config"
)

type ProfileHandler struct {
	authService *app.AuthService
	postService *app.PostService
	uploads     config.UploadsConfig
	authCfg     config.AuthConfig
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func NewProfileHandler(authService *app.AuthService, postService *app.PostService, uploads config.UploadsConfig, authCfg config.AuthConfig) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
		postService: postService,
		uploads:     uploads,
		authCfg:     authCfg,
	}
}

// Show renders the authenticated user's profile with the resolved post feed
// and a pane of recent activity.
func (h *ProfileHandler) Show(c *gin.Context) {
	email, ok := emailFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.authService.GetUserByEmail(email)
	if err != nil {
		failWith(c, err, h.authCfg.DuplicateEmailStatus)
		return
	}

	feed, err := h.postService.ProfileFeed(user.ID)
	if err != nil {
		failWith(c, err, h.authCfg.DuplicateEmailStatus)
		return
	}

	activities, err := h.postService.RecentActivity(user.ID, 10)
	if err != nil {
		failWith(c, err, h.authCfg.DuplicateEmailStatus)
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":       user,
		"Feed":       feed,
		"Activities": activities,
	})
}

func (h *ProfileHandler) ShowUploadForm(c *gin.Context) {
	c.HTML(http.StatusOK, "profile_update.html", nil)
}

// Upload accepts a multipart form with "profile" (image), stores it under the
// uploads dir and records the filename on the user.
func (h *ProfileHandler) Upload(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	file, err := c.FormFile("profile")
	if err != nil {
		renderError(c, http.StatusBadRequest, "Missing file (form field 'profile').")
		return
	}
	if file.Size > h.uploads.MaxBytes {
		renderError(c, http.StatusBadRequest, "Image too large.")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		renderError(c, http.StatusBadRequest, "Unsupported image format.")
		return
	}

	filename := fmt.Sprintf("%d_%d%s", userID, time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploads.Dir, filename)); err != nil {
		renderError(c, http.StatusInternalServerError, "Storing the image failed.")
		return
	}

	if err := h.authService.SetProfilePic(userID, filename); err != nil {
		failWith(c, err, h.authCfg.DuplicateEmailStatus)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}
