package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
)

type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

type createSessionRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	// Date accepts RFC3339, plain YYYY-MM-DD or epoch millis.
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Duration int     `json:"duration"`
	Notes    string  `json:"notes"`
}

type updateSessionRequest struct {
	Value    float64 `json:"value"`
	Duration int     `json:"duration"`
	Notes    string  `json:"notes"`
	Version  int     `json:"version" binding:"required"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("", h.ListByItem)
		sessions.PUT("/:id", h.Update)
		sessions.DELETE("/:id", h.Delete)
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed := domain.ParseFlexDate(req.Date)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
			return
		}
		date = parsed.Time()
	}

	input := services.CreateSessionInput{
		ItemID:   req.ItemID,
		UserID:   userID,
		Date:     date,
		Value:    req.Value,
		Duration: req.Duration,
		Notes:    req.Notes,
	}

	session, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateSessionInput{
		ID:       id,
		UserID:   userID,
		Value:    req.Value,
		Duration: req.Duration,
		Notes:    req.Notes,
		Version:  req.Version,
	}

	session, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), id, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) ListByItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	itemID := c.Query("item_id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if t := c.Query("to"); t != "" {
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			to = parsed
		}
	}
	if f := c.Query("from"); f != "" {
		if parsed, err := time.Parse(time.RFC3339, f); err == nil {
			from = parsed
		}
	}

	list, err := h.svc.ListByItemID(c.Request.Context(), itemID, userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrSessionConflict) || errors.Is(err, domain.ErrItemConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, please refresh",
		})

	case errors.Is(err, domain.ErrItemCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
