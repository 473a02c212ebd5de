package routes

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type AnalyticsRoutes struct {
	handler   *handlers.AnalyticsHandler
	jwtSecret string
}

func NewAnalyticsRoutes(handler *handlers.AnalyticsHandler, jwtSecret string) *AnalyticsRoutes {
	return &AnalyticsRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers analytics read routes. These are deliberately
// uncached: every request recomputes from the freshest stored records, so a
// write is visible in the very next read.
func (r *AnalyticsRoutes) RegisterRoutes(router *gin.Engine) {
	analytics := router.Group("/api/analytics")
	analytics.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	analytics.Use(gzip.Gzip(gzip.DefaultCompression))

	analytics.GET("/kpis", r.handler.GetKPIs)
	analytics.GET("/trends", r.handler.GetTrends)
	analytics.GET("/progress", r.handler.GetProgress)
}
