package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/analytics"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/progress"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service analytics.Service
	log     *logger.Logger
}

func NewAnalyticsHandler(service analytics.Service, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, log: log}
}

func periodFrom(c *gin.Context) analytics.Period {
	if c.Query("period") == string(analytics.PeriodMonthly) {
		return analytics.PeriodMonthly
	}
	return analytics.PeriodWeekly
}

// GetKPIs godoc
// @Summary Dashboard KPIs for the authenticated user
// @Description Computes completion rates, streak, best day, rolling average and velocity series from the freshest stored records. Responses are never cached.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "weekly or monthly" Enums(weekly, monthly)
// @Success 200 {object} dto.KPIResponse
// @Router /api/analytics/kpis [get]
func (h *AnalyticsHandler) GetKPIs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	period := periodFrom(c)

	start := time.Now()
	report, err := h.service.GetKPIs(c.Request.Context(), userID, period)
	if err != nil {
		h.log.Error("failed to compute KPIs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	middleware.ObserveKPICompute(string(period), time.Since(start).Seconds())

	c.JSON(http.StatusOK, gin.H{"data": dto.ToKPIResponse(report)})
}

// GetTrends godoc
// @Summary Weekly completion trend buckets
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "weekly or monthly" Enums(weekly, monthly)
// @Success 200 {array} dto.TrendBucketBody
// @Router /api/analytics/trends [get]
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	buckets, err := h.service.GetWeeklyTrend(c.Request.Context(), userID, periodFrom(c))
	if err != nil {
		h.log.Error("failed to compute trends", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTrendBucketBodies(buckets)})
}

// GetProgress godoc
// @Summary Recorded progress snapshot history
// @Description With period, returns snapshots from the start of that rolling window; otherwise the newest snapshots up to limit.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "weekly or monthly" Enums(weekly, monthly)
// @Param limit query int false "Maximum snapshots (default 90)"
// @Success 200 {array} dto.ProgressSnapshotBody
// @Router /api/analytics/progress [get]
func (h *AnalyticsHandler) GetProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var snapshots []progress.Snapshot
	var err error

	if c.Query("period") != "" {
		snapshots, err = h.service.GetProgressSince(c.Request.Context(), userID, periodFrom(c))
	} else {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "90"))
		snapshots, err = h.service.GetProgressHistory(c.Request.Context(), userID, limit)
	}
	if err != nil {
		h.log.Error("failed to load progress history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToProgressSnapshotBodies(snapshots)})
}
