package handlers

import (
	"errors"
	"net/http"
	"strings"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// Context key under which the middleware stores the resolved user.
const userCtxKey = "user"

// authMiddleware authenticates the request from its bearer token and attaches
// the resolved user (without the password hash) to the request context.
// Every path either proceeds or responds; nothing is left hanging.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	user, err := h.services.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// valid token, but the user has since been deleted
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "user no longer exists",
			})
			return
		}
		if h.log != nil {
			h.log.Errorw("auth_user_lookup_failed", "err", err, "user_id", userID)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal error",
		})
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}
