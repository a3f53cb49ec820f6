package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minisocial/internal/app"
)

type PostHandler struct {
	postService          *app.PostService
	duplicateEmailStatus int
}

type PostContentRequest struct {
	Content string `form:"content" binding:"required,max=2000"`
}

func NewPostHandler(postService *app.PostService, duplicateEmailStatus int) *PostHandler {
	return &PostHandler{postService: postService, duplicateEmailStatus: duplicateEmailStatus}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var req PostContentRequest
	if err := c.ShouldBind(&req); err != nil {
		failWith(c, app.ErrInvalidInput, h.duplicateEmailStatus)
		return
	}

	if _, err := h.postService.Create(app.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
	}); err != nil {
		failWith(c, err, h.duplicateEmailStatus)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	if _, err := h.postService.ToggleLike(userID, postID); err != nil {
		failWith(c, err, h.duplicateEmailStatus)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (h *PostHandler) EditForm(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	post, err := h.postService.GetOwned(userID, postID)
	if err != nil {
		failWith(c, err, h.duplicateEmailStatus)
		return
	}
	c.HTML(http.StatusOK, "edit.html", gin.H{"Post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	var req PostContentRequest
	if err := c.ShouldBind(&req); err != nil {
		failWith(c, app.ErrInvalidInput, h.duplicateEmailStatus)
		return
	}

	if err := h.postService.Update(app.UpdatePostInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	}); err != nil {
		failWith(c, err, h.duplicateEmailStatus)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(userID, postID); err != nil {
		failWith(c, err, h.duplicateEmailStatus)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (h *PostHandler) postIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("postId")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		failWith(c, app.ErrPostNotFound, h.duplicateEmailStatus)
		return 0, false
	}
	return uint(parsed), true
}
