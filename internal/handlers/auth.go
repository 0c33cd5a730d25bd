package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"

	"grcwalk/internal/middleware"
	"grcwalk/internal/models"
)

func (h *Handler) Login(c *gin.Context) {
	var in models.LoginInput
	if !bind(c, &in) {
		return
	}

	user, err := h.svc.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		fail(c, "User", err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionRole, string(user.Role))
	if err := sess.Save(); err != nil {
		fail(c, "User", goerr.Wrap(err, "failed to save session", goerr.V("user_id", user.ID)))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the user of the current session.
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser registers an account; the route is admin only.
func (h *Handler) CreateUser(c *gin.Context) {
	var in models.UserInput
	if !bind(c, &in) {
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), in)
	if err != nil {
		fail(c, "User", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
