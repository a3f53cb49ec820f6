package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"minisocial/internal/app"
)

// failWith is the single failure-to-response table shared by every handler.
// Invalid credentials redirect back to the login form; everything else
// renders the error view with an explicit status. The duplicate-email status
// is policy, injected from config.
func failWith(c *gin.Context, err error, duplicateEmailStatus int) {
	switch {
	case errors.Is(err, app.ErrInvalidCredential):
		c.Redirect(http.StatusFound, "/login?error=invalid_credentials")
	case errors.Is(err, app.ErrEmailExists):
		renderError(c, duplicateEmailStatus, "This email is already registered. Try logging in instead.")
	case errors.Is(err, app.ErrInvalidInput):
		renderError(c, http.StatusBadRequest, "The submitted form is incomplete or invalid.")
	case errors.Is(err, app.ErrUserNotFound), errors.Is(err, app.ErrPostNotFound):
		renderError(c, http.StatusNotFound, "Nothing here. The post or user you asked for does not exist.")
	case errors.Is(err, app.ErrForbidden):
		renderError(c, http.StatusForbidden, "You can only edit or delete your own posts.")
	default:
		renderError(c, http.StatusInternalServerError, "Something went wrong on our side.")
	}
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Status":  status,
		"Message": message,
	})
}
