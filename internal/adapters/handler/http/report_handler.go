package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toshitha/habithub/internal/adapters/handler/http/middleware"
	"github.com/toshitha/habithub/internal/core/domain"
	"github.com/toshitha/habithub/internal/core/services"
)

type ReportHandler struct {
	svc *services.ReportService

	// now is swappable in tests; the placeholder branch depends on the weekday.
	now func() time.Time
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	weekly := router.Group("/weekly")
	{
		weekly.POST("/report", h.WeeklyReport)
		weekly.GET("/history", h.History)
	}
}

// WeeklyReport returns the finalized report on the rollup day. On any
// other day it answers 200 with available=false and the week's boundary
// dates, so the front end can show "report available Sunday" without ever
// seeing a partial percentage.
func (h *ReportHandler) WeeklyReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	now := h.now()

	perf, err := h.svc.WeeklyReport(c.Request.Context(), userID, now)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotReady) {
			weekStart := domain.WeekStart(now)
			c.JSON(http.StatusOK, gin.H{
				"success":    true,
				"available":  false,
				"week_start": weekStart.Format(domain.DateLayout),
				"week_end":   domain.WeekEnd(weekStart).Format(domain.DateLayout),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute weekly report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"available":        true,
		"week_start":       perf.WeekStart.Format(domain.DateLayout),
		"week_end":         perf.WeekEnd.Format(domain.DateLayout),
		"completion_pct":   perf.CompletionPct,
		"stars":            perf.Stars,
		"total_habits":     perf.TotalHabits,
		"completed_habits": perf.CompletedHabits,
	})
}

func (h *ReportHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	perfs, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load history"})
		return
	}
	if perfs == nil {
		perfs = []*domain.WeeklyPerformance{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "weeks": perfs})
}
