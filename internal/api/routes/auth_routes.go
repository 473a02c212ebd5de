package routes

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
	limiter   auth.RateLimiter
}

func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string, limiter auth.RateLimiter) *AuthRoutes {
	return &AuthRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		limiter:   limiter,
	}
}

// RegisterRoutes registers authentication and profile routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	validation := middleware.NewValidationMiddleware()

	public := router.Group("/api/auth")
	if r.limiter != nil {
		public.Use(middleware.RateLimitMiddleware(r.limiter))
	}
	public.POST("/register", validation.ValidateRequest(&dto.RegisterRequest{}), r.handler.Register)
	public.POST("/login", validation.ValidateRequest(&dto.LoginRequest{}), r.handler.Login)

	protected := router.Group("/api/auth")
	protected.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	protected.GET("/me", r.handler.GetProfile)
	protected.PUT("/me", validation.ValidateRequest(&dto.UpdateProfileRequest{}), r.handler.UpdateProfile)
}
