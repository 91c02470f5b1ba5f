package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/app"
	"portfolio-backend/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type authActionRequest struct {
	Action      string `json:"action"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type updateProfileRequest struct {
	UserID      uint    `json:"user_id"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	NewPassword *string `json:"new_password"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Handle dispatches POST /api/auth on the action discriminator in the body.
func (h *AuthHandler) Handle(c *gin.Context) {
	var req authActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	switch req.Action {
	case "register":
		h.register(c, req)
	case "login":
		h.login(c, req)
	default:
		response.MethodNotAllowed(c)
	}
}

func (h *AuthHandler) register(c *gin.Context, req authActionRequest) {
	user, err := h.authService.Register(app.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Username and password required")
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, "Username already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.OK(c, gin.H{"success": true, "user": user.Public()})
}

func (h *AuthHandler) login(c *gin.Context, req authActionRequest) {
	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.OK(c, gin.H{"success": true, "user": user.Public()})
}

// UpdateProfile handles PUT /api/auth. The caller-supplied user_id is trusted
// as the identity; there is no token layer in front of it.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.UserID == 0 {
		response.Error(c, http.StatusUnauthorized, "User ID required")
		return
	}

	user, err := h.authService.UpdateProfile(app.UpdateProfileInput{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusUnauthorized, "User ID required")
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.OK(c, gin.H{"success": true, "user": user.Public()})
}
