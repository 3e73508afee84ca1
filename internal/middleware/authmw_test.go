package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"booktime/internal/middleware"
	"booktime/internal/models"
	"booktime/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthService struct {
	validToken string
	userID     string
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	return "", nil, nil
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return nil, nil
}

func (s *stubAuthService) ValidateToken(tokenString string) (string, error) {
	if tokenString == s.validToken {
		return s.userID, nil
	}
	return "", service.ErrInvalidToken
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := &stubAuthService{validToken: "good-token", userID: "u1"}
	r.GET("/protected", middleware.RequireAuth(auth), func(c *gin.Context) {
		id, _ := middleware.Identity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestRequireAuthAcceptsCookie(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "good-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRequireAuthAcceptsBearerFallback(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsMissingCredentials(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "forged"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
