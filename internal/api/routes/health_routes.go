package routes

import (
	"net/http"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/infrastructure/cache"
	"github.com/RishabhMalviya75/ZenithTrack/internal/infrastructure/persistence/postgres/connection"
	"github.com/gin-gonic/gin"
)

type HealthRoutes struct {
	db    *connection.Database
	cache *cache.RedisClient
}

func NewHealthRoutes(db *connection.Database, cache *cache.RedisClient) *HealthRoutes {
	return &HealthRoutes{db: db, cache: cache}
}

// RegisterRoutes registers the health probes
func (r *HealthRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.healthCheck)
	router.GET("/health/ready", r.readyCheck)
	router.GET("/health/cache", r.cacheCheck)
}

func (r *HealthRoutes) healthCheck(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"

	sqlDB, err := r.db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "up"
	if !r.cache.IsHealthy() {
		// Degraded, not down: reads fall through to the database.
		redisStatus = "degraded"
	}

	metrics := r.cache.GetMetrics()

	c.JSON(status, gin.H{
		"status":    dbStatus,
		"timestamp": time.Now().UTC(),
		"components": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"cache": gin.H{
			"hits":   metrics.Hits,
			"misses": metrics.Misses,
			"errors": metrics.Errors,
		},
	})
}

// readyCheck answers the readiness probe: the service is ready only when
// the database accepts connections. Redis being down degrades but does not
// block traffic.
func (r *HealthRoutes) readyCheck(c *gin.Context) {
	sqlDB, err := r.db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

func (r *HealthRoutes) cacheCheck(c *gin.Context) {
	metrics := r.cache.GetMetrics()

	total := metrics.Hits + metrics.Misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(metrics.Hits) / float64(total) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"healthy":  r.cache.IsHealthy(),
		"hits":     metrics.Hits,
		"misses":   metrics.Misses,
		"errors":   metrics.Errors,
		"hit_rate": hitRate,
	})
}
