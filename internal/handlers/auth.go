package handlers

import (
	"errors"
	"net/http"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// Shared credentials payload for register and login.
type authCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      201  {string}  string  "registration successful"
// @Failure      400  {object}  map[string][]string
// @Failure      409  {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	_, err := h.services.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "a user with that email already exists"})
			return
		}
		if h.log != nil {
			h.log.Errorw("auth_register_failed", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.String(http.StatusCreated, "registration successful")
}

// @Summary      Log in
// @Description  Returns a signed bearer token as a plain text body.
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      200  {string}  string  "token"
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			if h.log != nil {
				h.log.Infow("auth_login_rejected", "email", input.Email)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if h.log != nil {
			h.log.Errorw("auth_login_failed", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.String(http.StatusOK, token)
}

// @Summary      Verify token
// @Description  Succeeds when the bearer token resolves to an existing user.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/verify-token [get]
// @Security     BearerAuth
func (h *Handler) verifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "token valid"})
}
