package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/routes"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/analytics"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/events"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/progress"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/schedule"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/user"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/workspace"
	"github.com/RishabhMalviya75/ZenithTrack/internal/infrastructure/cache"
	"github.com/RishabhMalviya75/ZenithTrack/internal/infrastructure/persistence/postgres/connection"
	"github.com/RishabhMalviya75/ZenithTrack/internal/infrastructure/persistence/postgres/migrations"
	"github.com/RishabhMalviya75/ZenithTrack/internal/infrastructure/scheduler"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/config"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           ZenithTrack API
// @version         1.0
// @description     A gamified productivity tracker with tasks, schedules, consistency logs and derived analytics.

// @host      localhost:8000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))

	metricsMiddleware := middleware.NewMetricsMiddleware()
	router.Use(metricsMiddleware.CollectMetrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database and run migrations
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Rate limiters: a global budget plus a stricter one for workspace
	// resource creation.
	rateLimiter := auth.NewRedisRateLimiter(redisClient.Client(), cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	resourceLimiter := rateLimiter.WithLimit(cfg.RateLimit.ResourceMaxRequests, cfg.RateLimit.ResourceWindow)

	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "zenithtrack", redisClient.TTLFor("task"))

	// logrus logger for the workspace subsystem
	workspaceLogger := logrus.New()
	workspaceLogger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "production" {
		workspaceLogger.SetLevel(logrus.InfoLevel)
	} else {
		workspaceLogger.SetLevel(logrus.DebugLevel)
	}

	// Repositories
	userRepo := user.NewRepository(db.DB)
	taskRepo := task.NewRepository(db.DB)
	scheduleRepo := schedule.NewRepository(db.DB)
	consistencyRepo := consistency.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	workspaceRepo := workspace.NewRepository(db.DB)

	// Services
	userService := user.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiryHours, log)
	taskService := task.NewService(taskRepo, redisClient, log)
	scheduleService := schedule.NewService(scheduleRepo, redisClient, log)
	consistencyService := consistency.NewService(consistencyRepo, redisClient, log)
	progressService := progress.NewService(progressRepo, taskRepo, redisClient, log)
	analyticsService := analytics.NewService(taskRepo, consistencyRepo, progressRepo, log)
	workspaceService := workspace.NewService(workspaceRepo, workspaceLogger)

	// Drop cached task lists whenever an analytics event reports a change,
	// so other instances never serve a stale page.
	subscribeCtx, cancelSubscribe := context.WithCancel(context.Background())
	defer cancelSubscribe()
	err = redisClient.SubscribeToAnalyticsEvents(subscribeCtx, func(event events.AnalyticsEvent) {
		if event.EventType == events.EventTypeTaskUpdate {
			if err := redisClient.InvalidateUserData(subscribeCtx, "zenithtrack", event.UserID); err != nil {
				log.Warn("failed to invalidate cached responses", zap.Error(err))
			}
		}
	})
	if err != nil {
		log.Error("Failed to subscribe to analytics events", zap.Error(err))
	}

	// Nightly progress rollup
	progressScheduler := scheduler.NewScheduler(progressService, log)
	progressScheduler.Start()
	defer progressScheduler.Stop()
	log.Info("Progress scheduler started successfully")

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	taskHandler := handlers.NewTaskHandler(taskService, log)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, log)
	consistencyHandler := handlers.NewConsistencyHandler(consistencyService, log)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, log)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, workspaceLogger)

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Health probe
	healthRoutes := routes.NewHealthRoutes(db, redisClient)
	healthRoutes.RegisterRoutes(router)

	// Routes
	authRoutes := routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret, rateLimiter)
	authRoutes.RegisterRoutes(router)
	log.Info("Registered auth routes at /api/auth")

	taskRoutes := routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret)
	taskRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered task routes at /api/tasks")

	scheduleRoutes := routes.NewScheduleRoutes(scheduleHandler, cfg.Auth.JWTSecret)
	scheduleRoutes.RegisterRoutes(router)
	log.Info("Registered schedule routes at /api/schedule")

	consistencyRoutes := routes.NewConsistencyRoutes(consistencyHandler, cfg.Auth.JWTSecret)
	consistencyRoutes.RegisterRoutes(router)
	log.Info("Registered consistency routes at /api/consistency")

	analyticsRoutes := routes.NewAnalyticsRoutes(analyticsHandler, cfg.Auth.JWTSecret)
	analyticsRoutes.RegisterRoutes(router)
	log.Info("Registered analytics routes at /api/analytics")

	workspaceRoutes := routes.NewWorkspaceRoutes(workspaceHandler, cfg.Auth.JWTSecret, resourceLimiter)
	workspaceRoutes.RegisterRoutes(router)
	log.Info("Registered workspace routes at /api/workspaces")

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
