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

// HabitHandler is the reporting facade's habit surface. The acting user
// always comes from the auth middleware; request bodies never carry a
// user id.
type HabitHandler struct {
	habits *services.HabitService
	logs   *services.LogService
}

func NewHabitHandler(habits *services.HabitService, logs *services.LogService) *HabitHandler {
	return &HabitHandler{
		habits: habits,
		logs:   logs,
	}
}

type addHabitRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	TargetMinutes *int   `json:"target_minutes"`
}

type habitIDRequest struct {
	HabitID string `json:"habit_id" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habit")
	{
		habits.POST("/add", h.Add)
		habits.POST("/list", h.List)
		habits.POST("/complete", h.Complete)
		habits.POST("/remove", h.Remove)
		habits.POST("/today-status", h.TodayStatus)
	}
}

func (h *HabitHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	var req addHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		TargetMinutes: req.TargetMinutes,
	}

	habit, err := h.habits.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNameEmpty),
			errors.Is(err, domain.ErrHabitNameTooLong),
			errors.Is(err, domain.ErrHabitDescTooLong),
			errors.Is(err, domain.ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "habit_id": habit.ID})
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	list, err := h.habits.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}
	if list == nil {
		list = []*domain.Habit{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "habits": list})
}

func (h *HabitHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	var req habitIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	log, err := h.logs.MarkCompleted(c.Request.Context(), userID, req.HabitID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "log_id": log.ID})
}

func (h *HabitHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	var req habitIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.habits.Delete(c.Request.Context(), userID, req.HabitID); err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *HabitHandler) TodayStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user context missing"})
		return
	}

	status, err := h.logs.TodayStatus(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"date":             status.Date.Format(domain.DateLayout),
		"total_habits":     status.TotalHabits,
		"completed_habits": status.CompletedHabits,
		"habits":           status.Habits,
	})
}
