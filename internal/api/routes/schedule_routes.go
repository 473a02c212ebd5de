package routes

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type ScheduleRoutes struct {
	handler   *handlers.ScheduleHandler
	jwtSecret string
}

func NewScheduleRoutes(handler *handlers.ScheduleHandler, jwtSecret string) *ScheduleRoutes {
	return &ScheduleRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers schedule block routes
func (r *ScheduleRoutes) RegisterRoutes(router *gin.Engine) {
	validation := middleware.NewValidationMiddleware()

	blocks := router.Group("/api/schedule")
	blocks.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	blocks.GET("", validation.ValidateQuery(&dto.ScheduleQuery{}), r.handler.ListBlocks)
	blocks.POST("", validation.ValidateRequest(&dto.CreateScheduleRequest{}), r.handler.CreateBlock)
	blocks.PUT("/:id", validation.ValidateRequest(&dto.UpdateScheduleRequest{}), r.handler.UpdateBlock)
	blocks.DELETE("/:id", r.handler.DeleteBlock)
}
