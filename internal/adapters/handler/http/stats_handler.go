package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/progress", h.GetProgressStats)
	r.GET("/stats/graph", h.GetProgressGraph)
}

func (h *StatsHandler) GetProgressStats(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	input := services.StatsInput{
		UserID:   userID,
		Category: c.Query("category"),
	}

	if goalStr := c.Query("goal"); goalStr != "" {
		goal, err := strconv.ParseFloat(goalStr, 64)
		if err != nil || goal < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal, expected a non-negative number"})
			return
		}
		input.Goal = goal
	}

	if nowStr := c.Query("now"); nowStr != "" {
		now, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now format, expected RFC3339"})
			return
		}
		input.Now = now
	}

	stats, err := h.svc.GetProgressStats(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetProgressGraph(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	input := services.GraphInput{
		UserID:   userID,
		Category: c.Query("category"),
	}

	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days, expected an integer"})
			return
		}

		const maxDays = 366
		if days > maxDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days too large, max 1 year allowed"})
			return
		}
		input.Days = days
	}

	if nowStr := c.Query("now"); nowStr != "" {
		now, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now format, expected RFC3339"})
			return
		}
		input.Now = now
	}

	graph, err := h.svc.GetProgressGraph(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve graph"})
		return
	}

	c.JSON(http.StatusOK, graph)
}
