package handlers

import (
	"errors"
	"net/http"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConsistencyHandler struct {
	service consistency.Service
	log     *logger.Logger
}

func NewConsistencyHandler(service consistency.Service, log *logger.Logger) *ConsistencyHandler {
	return &ConsistencyHandler{service: service, log: log}
}

// LogDay godoc
// @Summary Log or merge one day's consistency metrics
// @Tags consistency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LogDayRequest true "Day log"
// @Success 200 {object} dto.DailyRecordResponse
// @Failure 400 {object} map[string]string
// @Router /api/consistency [post]
func (h *ConsistencyHandler) LogDay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req := c.MustGet("validated_model").(*dto.LogDayRequest)

	record, err := h.service.LogDay(c.Request.Context(), userID, consistency.LogInput{
		Date:    req.Date,
		Metrics: req.ToMetrics(),
		Notes:   req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToDailyRecordResponse(record)})
}

// GetDay godoc
// @Summary Get one day's consistency record
// @Tags consistency
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyRecordResponse
// @Failure 404 {object} map[string]string
// @Router /api/consistency/{date} [get]
func (h *ConsistencyHandler) GetDay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	record, err := h.service.GetDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToDailyRecordResponse(record)})
}

// ListRecent godoc
// @Summary List recent consistency records
// @Tags consistency
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum records (default 30)"
// @Param since query string false "Only records on or after this date"
// @Success 200 {array} dto.DailyRecordResponse
// @Router /api/consistency [get]
func (h *ConsistencyHandler) ListRecent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	query := c.MustGet("validated_query").(*dto.ConsistencyQuery)

	var records []consistency.DailyRecord
	var err error

	if query.Since != "" {
		since, parseErr := consistency.ParseDate(query.Since)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be in YYYY-MM-DD format"})
			return
		}
		records, err = h.service.GetSince(c.Request.Context(), userID, since)
	} else {
		records, err = h.service.GetRecent(c.Request.Context(), userID, query.Limit)
	}

	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToDailyRecordListResponse(records)})
}

func (h *ConsistencyHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, consistency.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, consistency.ErrInvalidDate),
		errors.Is(err, consistency.ErrInvalidCategory),
		errors.Is(err, consistency.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("consistency handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
