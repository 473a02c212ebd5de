package routes

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type ConsistencyRoutes struct {
	handler   *handlers.ConsistencyHandler
	jwtSecret string
}

func NewConsistencyRoutes(handler *handlers.ConsistencyHandler, jwtSecret string) *ConsistencyRoutes {
	return &ConsistencyRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers consistency log routes
func (r *ConsistencyRoutes) RegisterRoutes(router *gin.Engine) {
	validation := middleware.NewValidationMiddleware()

	consistency := router.Group("/api/consistency")
	consistency.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	consistency.GET("", validation.ValidateQuery(&dto.ConsistencyQuery{}), gzip.Gzip(gzip.DefaultCompression), r.handler.ListRecent)
	consistency.POST("", validation.ValidateRequest(&dto.LogDayRequest{}), r.handler.LogDay)
	consistency.GET("/:date", r.handler.GetDay)
}
