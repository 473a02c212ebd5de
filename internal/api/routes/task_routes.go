package routes

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers task CRUD routes. List reads are cached; every
// write invalidates the user's task cache.
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	tasks.GET("", validation.ValidateQuery(&dto.TaskListQuery{}), cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.ListTasks)
	tasks.POST("", validation.ValidateRequest(&dto.CreateTaskRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.CreateTask)
	tasks.GET("/:id", cache.CacheResponse(), r.handler.GetTask)
	tasks.PUT("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.UpdateTask)
	tasks.DELETE("/:id", cache.CacheInvalidate("tasks:*"), r.handler.DeleteTask)
}
