package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booktime/internal/dto"
	"booktime/internal/middleware"
	"booktime/internal/service"
	"booktime/internal/session"
)

type ReadingHandler struct {
	readingService service.ReadingService
}

func NewReadingHandler(readingService service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// RegisterRoutes registers the stats and reading-session routes
func (h *ReadingHandler) RegisterRoutes(stats, reading *gin.RouterGroup) {
	stats.GET("", h.Stats)
	reading.POST("/open", h.Open)
	reading.POST("/turn", h.Turn)
	reading.POST("/close", h.Close)
}

// Stats returns the caller's full ReadingTime collection.
func (h *ReadingHandler) Stats(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	st, err := h.readingService.Stats(ctx, identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Open starts a reading session on a book, replacing any open one.
func (h *ReadingHandler) Open(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sess, err := h.readingService.Open(ctx, identity, req.BookID, req.StartPage)
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

// Turn accumulates time for the page on display and moves to the next or
// previous page.
func (h *ReadingHandler) Turn(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.TurnPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.readingService.Turn(ctx, identity, session.Direction(req.Direction))
	if errors.Is(err, service.ErrNoSession) {
		c.JSON(http.StatusConflict, gin.H{"error": "no open reading session"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

// Close finalizes the open session.
func (h *ReadingHandler) Close(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.readingService.Close(ctx, identity)
	if errors.Is(err, service.ErrNoSession) {
		c.JSON(http.StatusConflict, gin.H{"error": "no open reading session"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session closed"})
}

func sessionResponse(s session.Session) dto.SessionResponse {
	return dto.SessionResponse{
		BookID:    s.BookID,
		Title:     s.Title,
		Page:      s.Page,
		PageCount: s.PageCount,
	}
}
