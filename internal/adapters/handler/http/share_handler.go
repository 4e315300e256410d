package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/share"
)

type ShareHandler struct {
	svc *services.ShareService
}

func NewShareHandler(svc *services.ShareService) *ShareHandler {
	return &ShareHandler{svc: svc}
}

type composeMessageRequest struct {
	Kind    string            `json:"kind" binding:"required"`
	Variant *int              `json:"variant"`
	Vars    map[string]string `json:"vars"`
}

type shareURLRequest struct {
	Platform string        `json:"platform" binding:"required"`
	Content  share.Content `json:"content"`
}

type shareEventRequest struct {
	Platform    string `json:"platform" binding:"required"`
	ContentType string `json:"content_type"`
	Success     bool   `json:"success"`
	ErrorMsg    string `json:"error_msg"`
}

func (h *ShareHandler) RegisterRoutes(router *gin.RouterGroup) {
	shareGroup := router.Group("/share")
	{
		shareGroup.GET("/templates", h.ListTemplates)
		shareGroup.GET("/platforms", h.ListPlatforms)
		shareGroup.POST("/message", h.ComposeMessage)
		shareGroup.POST("/url", h.BuildURL)
		shareGroup.POST("/events", h.RecordEvent)
		shareGroup.GET("/summary", h.GetSummary)
	}
}

func (h *ShareHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.svc.Templates()})
}

func (h *ShareHandler) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": h.svc.Platforms()})
}

func (h *ShareHandler) ComposeMessage(c *gin.Context) {
	var req composeMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.ComposeMessage(services.ComposeMessageInput{
		Kind:    req.Kind,
		Variant: req.Variant,
		Vars:    req.Vars,
	})
	if err != nil {
		if errors.Is(err, share.ErrUnknownMessageKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown message kind"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *ShareHandler) BuildURL(c *gin.Context) {
	var req shareURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.svc.BuildShareURL(req.Platform, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, share.ErrUnknownPlatform):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform"})
		case errors.Is(err, share.ErrNoWebIntent):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "platform has no web share intent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ShareHandler) RecordEvent(c *gin.Context) {
	var req shareEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.svc.RecordEvent(req.Platform, req.ContentType, req.Success, req.ErrorMsg)

	c.Status(http.StatusAccepted)
}

func (h *ShareHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Summary())
}
