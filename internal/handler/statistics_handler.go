package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-timetable-api/internal/middleware"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/internal/service"
	"github.com/noah-isme/exam-timetable-api/pkg/response"
)

type statisticsProvider interface {
	Summary(ctx context.Context) (*models.Statistics, bool, error)
}

// StatisticsHandler exposes the dashboard summary.
type StatisticsHandler struct {
	service statisticsProvider
}

// NewStatisticsHandler constructs the handler.
func NewStatisticsHandler(svc *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: svc}
}

// Summary godoc
// @Summary Scheduling statistics
// @Description Totals, room utilisation, per-department counts and the number of open conflicts.
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /statistics [get]
func (h *StatisticsHandler) Summary(c *gin.Context) {
	stats, cacheHit, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ResponseMeta(c))
}
