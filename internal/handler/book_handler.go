package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booktime/internal/middleware"
	"booktime/internal/service"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes registers the book-listing routes
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// List returns the caller's display-ordered book list: the most recently
// read book first and flagged, the rest by total reading time.
func (h *BookHandler) List(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	ranked, err := h.bookService.Ranked(ctx, identity)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ranked)
}
