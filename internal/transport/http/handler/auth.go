package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minisocial/internal/app"
	"minisocial/internal/config"
	"minisocial/internal/transport/http/middleware"
)

type AuthHandler struct {
	authService *app.AuthService
	authCfg     config.AuthConfig
}

type RegisterRequest struct {
	Name     string `form:"name" binding:"required,max=128"`
	Username string `form:"username" binding:"required,min=3,max=64"`
	Email    string `form:"email" binding:"required,email,max=128"`
	Password string `form:"password" binding:"required,max=128"`
	Age      int    `form:"age" binding:"required,min=0,max=150"`
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required,email,max=128"`
	Password string `form:"password" binding:"required,max=128"`
}

func NewAuthHandler(authService *app.AuthService, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, authCfg: authCfg}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error": c.Query("error") != "",
	})
}

func (h *AuthHandler) ShowWelcome(c *gin.Context) {
	c.HTML(http.StatusOK, "welcome.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		failWith(c, app.ErrInvalidInput, h.authCfg.DuplicateEmailStatus)
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		failWith(c, err, h.authCfg.DuplicateEmailStatus)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.Redirect(http.StatusFound, "/profile")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		failWith(c, app.ErrInvalidCredential, h.authCfg.DuplicateEmailStatus)
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		failWith(c, err, h.authCfg.DuplicateEmailStatus)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.Redirect(http.StatusFound, "/profile")
}

// Logout clears the cookie client-side; there is no server-side session
// state to invalidate.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.authCfg.CookieSecure, h.authCfg.CookieHTTPOnly)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	// Zero expiry keeps the source's non-expiring session cookie.
	maxAge := 0
	if h.authCfg.JWTExpireMinute > 0 {
		maxAge = h.authCfg.JWTExpireMinute * 60
	}
	c.SetCookie(middleware.TokenCookieName, token, maxAge, "/", "", h.authCfg.CookieSecure, h.authCfg.CookieHTTPOnly)
}
