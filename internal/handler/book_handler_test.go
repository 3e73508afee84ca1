package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"booktime/internal/handler"
	"booktime/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MOCK SERVICE ---

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) Ranked(ctx context.Context, identity string) ([]stats.RankedBook, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stats.RankedBook), args.Error(1)
}

// mockAuthMiddleware injects an identity the way RequireAuth would
func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func setupBookRouter(svc *MockBookService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewBookHandler(svc)

	rg := r.Group("/api/books")
	if userID != "" {
		rg.Use(mockAuthMiddleware(userID))
	}
	h.RegisterRoutes(rg)
	return r
}

func TestListBooksReturnsRankedCollection(t *testing.T) {
	svc := new(MockBookService)
	svc.On("Ranked", mock.Anything, "u1").Return([]stats.RankedBook{
		{TimeSpent: 900, IsLastRead: true},
		{TimeSpent: 50},
	}, nil)

	r := setupBookRouter(svc, "u1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, true, got[0]["isLastRead"])
	assert.Equal(t, float64(900), got[0]["timeSpent"])
	svc.AssertExpectations(t)
}

func TestListBooksWithoutIdentity(t *testing.T) {
	r := setupBookRouter(new(MockBookService), "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListBooksUpstreamFailure(t *testing.T) {
	svc := new(MockBookService)
	svc.On("Ranked", mock.Anything, "u1").Return(nil, errors.New("connection refused"))

	r := setupBookRouter(svc, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
