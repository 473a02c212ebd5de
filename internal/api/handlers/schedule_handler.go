package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/schedule"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service schedule.Service
	log     *logger.Logger
}

func NewScheduleHandler(service schedule.Service, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, log: log}
}

// CreateBlock godoc
// @Summary Create a schedule block
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Block details"
// @Success 201 {object} dto.ScheduleBlockResponse
// @Failure 400 {object} map[string]string
// @Router /api/schedule [post]
func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req := c.MustGet("validated_model").(*dto.CreateScheduleRequest)

	date, err := consistency.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, schedule.CreateInput{
		TaskID:    req.TaskID,
		Title:     req.Title,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		Note:      req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToScheduleBlockResponse(created)})
}

// ListBlocks godoc
// @Summary List schedule blocks for a day or range
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} dto.ScheduleBlockResponse
// @Router /api/schedule [get]
func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	query := c.MustGet("validated_query").(*dto.ScheduleQuery)

	var blocks []schedule.ScheduleBlock
	var err error

	switch {
	case query.From != "" && query.To != "":
		var from, to time.Time
		if from, err = consistency.ParseDate(query.From); err == nil {
			if to, err = consistency.ParseDate(query.To); err == nil {
				blocks, err = h.service.GetRange(c.Request.Context(), userID, from, to)
			}
		}
	case query.Date != "":
		var date time.Time
		if date, err = consistency.ParseDate(query.Date); err == nil {
			blocks, err = h.service.GetDay(c.Request.Context(), userID, date)
		}
	default:
		today := time.Now().UTC().Truncate(24 * time.Hour)
		blocks, err = h.service.GetDay(c.Request.Context(), userID, today)
	}

	if err != nil {
		if errors.Is(err, consistency.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToScheduleBlockListResponse(blocks)})
}

// UpdateBlock godoc
// @Summary Update a schedule block
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Param request body dto.UpdateScheduleRequest true "Block changes"
// @Success 200 {object} dto.ScheduleBlockResponse
// @Failure 404 {object} map[string]string
// @Router /api/schedule/{id} [put]
func (h *ScheduleHandler) UpdateBlock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}

	req := c.MustGet("validated_model").(*dto.UpdateScheduleRequest)

	input := schedule.UpdateInput{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		Note:      req.Note,
		TaskID:    req.TaskID,
	}
	if req.Date != nil {
		date, err := consistency.ParseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}
		input.Date = &date
	}

	updated, err := h.service.Update(c.Request.Context(), id, userID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToScheduleBlockResponse(updated)})
}

// DeleteBlock godoc
// @Summary Delete a schedule block
// @Tags schedule
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/schedule/{id} [delete]
func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrInvalidTimeRange),
		errors.Is(err, schedule.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("schedule handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
