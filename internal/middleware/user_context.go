package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"grcwalk/internal/models"
)

const currentUserKey = "CurrentUser"

type UserLookup interface {
	GetUser(ctx context.Context, id string) (models.User, error)
}

// InjectUser puts the session's user into the gin context.
func InjectUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserID).(string); ok && uid != "" {
			user, err := users.GetUser(c.Request.Context(), uid)
			if err == nil {
				c.Set(currentUserKey, user)
			} else {
				// пользователь удалён или база недоступна — сессия больше не действительна
				slog.DebugContext(c.Request.Context(), "session user not loaded", "user_id", uid, "error", err)
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
