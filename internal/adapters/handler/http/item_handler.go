package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	svc *services.ItemService
}

func NewItemHandler(svc *services.ItemService) *ItemHandler {
	return &ItemHandler{
		svc: svc,
	}
}

type createItemRequest struct {
	Title    string  `json:"title" binding:"required"`
	Subtitle string  `json:"subtitle"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Total    float64 `json:"total"`
}

type updateItemRequest struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Total    float64 `json:"total"`
	Version  int     `json:"version"`
}

type completeItemRequest struct {
	CompletedDate string `json:"completed_date"`
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.POST("/:id/complete", h.Complete)
		items.POST("/:id/reopen", h.Reopen)
		items.DELETE("/:id", h.Delete)
	}
}

func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateItemInput{
		UserID:   userID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Category: req.Category,
		Color:    req.Color,
		Total:    req.Total,
	}

	item, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if isItemValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ItemHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateItemInput{
		ID:       id,
		UserID:   userID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Category: req.Category,
		Color:    req.Color,
		Total:    req.Total,
		Version:  req.Version,
	}

	item, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		if isItemValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req completeItemRequest
	// Body is optional: an empty one completes the item now.
	_ = c.ShouldBindJSON(&req)

	var at time.Time
	if req.CompletedDate != "" {
		parsed := domain.ParseFlexDate(req.CompletedDate)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_date"})
			return
		}
		at = parsed.Time()
	}

	item, err := h.svc.Complete(c.Request.Context(), c.Param("id"), userID, at)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Reopen(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	item, err := h.svc.Reopen(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func isItemValidationError(err error) bool {
	return errors.Is(err, domain.ErrItemTitleEmpty) ||
		errors.Is(err, domain.ErrItemTitleTooLong) ||
		errors.Is(err, domain.ErrInvalidColor) ||
		errors.Is(err, domain.ErrNegativeAmount)
}
