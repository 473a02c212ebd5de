package handlers

import (
	"errors"
	"net/http"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/user"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service user.Service
	log     *logger.Logger
}

func NewAuthHandler(service user.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := c.MustGet("validated_model").(*dto.RegisterRequest)

	created, err := h.service.Register(user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Type:     user.UserType(req.Type),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Issue a token right away so signup logs the user in.
	_, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.log.Error("post-registration login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.AuthResponse{
		User:  dto.ToUserResponse(created),
		Token: token,
	}})
}

// Login godoc
// @Summary Authenticate and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := c.MustGet("validated_model").(*dto.LoginRequest)

	authenticated, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AuthResponse{
		User:  dto.ToUserResponse(authenticated),
		Token: token,
	}})
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string
// @Router /api/auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.service.GetProfile(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserResponse(profile)})
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string
// @Router /api/auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req := c.MustGet("validated_model").(*dto.UpdateProfileRequest)

	input := user.UpdateInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	}
	if req.Type != nil {
		userType := user.UserType(*req.Type)
		input.Type = &userType
	}
	if req.Preferences != nil {
		input.Preferences = &user.Preferences{
			Theme:         req.Preferences.Theme,
			Notifications: req.Preferences.Notifications,
			FocusDuration: req.Preferences.FocusDuration,
		}
	}

	updated, err := h.service.UpdateProfile(userID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserResponse(updated)})
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidUserType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error("auth handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
