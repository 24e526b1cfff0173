package httptransport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/health"
	httptransport "github.com/ErlanBelekov/grocery-api/internal/transport/http"
	"github.com/ErlanBelekov/grocery-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/grocery-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, header string) (*domain.User, error) {
	if header != "Bearer ok" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.User{ID: 1}, nil
}

type stubAuth struct{}

func (stubAuth) Register(context.Context, string, string) (*usecase.AuthResult, error) {
	panic("register exploded")
}

func (stubAuth) Login(context.Context, string, string) (*usecase.AuthResult, error) {
	return nil, domain.ErrInvalidCredentials
}

type stubItems struct{}

func (stubItems) CreateItem(context.Context, int64, usecase.CreateItemInput) (*domain.GroceryItem, error) {
	return nil, domain.ErrItemNotFound
}

func (stubItems) GetItem(context.Context, int64, int64) (*domain.GroceryItem, error) {
	return nil, domain.ErrItemNotFound
}

func (stubItems) ListItems(context.Context, int64, usecase.ListItemsInput) ([]*domain.GroceryItem, error) {
	return []*domain.GroceryItem{}, nil
}

func (stubItems) UpdateItem(context.Context, int64, int64, usecase.UpdateItemInput) (*domain.GroceryItem, error) {
	return nil, domain.ErrItemNotFound
}

func (stubItems) DeleteItem(context.Context, int64, int64) error { return domain.ErrItemNotFound }

func (stubItems) MarkPurchased(context.Context, int64, int64) (*domain.GroceryItem, error) {
	return nil, domain.ErrItemNotFound
}

func (stubItems) MarkNotPurchased(context.Context, int64, int64) (*domain.GroceryItem, error) {
	return nil, domain.ErrItemNotFound
}

type upChecker struct{}

func (upChecker) Readiness(context.Context) health.HealthResult {
	return health.HealthResult{Status: health.StatusUp, Timestamp: time.Now()}
}

func newRouter() *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptransport.NewRouter(
		logger,
		true,
		stubAuthenticator{},
		handler.NewAuthHandler(stubAuth{}, logger),
		handler.NewItemHandler(stubItems{}, logger),
		handler.NewHealthHandler(upChecker{}),
	)
}

func serve(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := serve(newRouter(), http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, w.Body.String())
}

func TestRouter_HealthIsPublic(t *testing.T) {
	w := serve(newRouter(), http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRouter_ItemsRequireAuth(t *testing.T) {
	r := newRouter()
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/grocery-items"},
		{http.MethodPost, "/api/grocery-items"},
		{http.MethodGet, "/api/grocery-items/1"},
		{http.MethodPut, "/api/grocery-items/1"},
		{http.MethodDelete, "/api/grocery-items/1"},
		{http.MethodPost, "/api/grocery-items/1/purchased"},
		{http.MethodDelete, "/api/grocery-items/1/purchased"},
	}
	for _, rt := range routes {
		w := serve(r, rt.method, rt.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	w := serve(r, http.MethodGet, "/api/grocery-items", "Bearer ok")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/grocery-items/1", "Bearer ok")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PanicRecovered(t *testing.T) {
	w := serve(newRouter(), http.MethodPost, "/api/auth/register", "")
	// Empty body fails binding before the usecase runs.
	assert.Equal(t, http.StatusBadRequest, w.Code)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"a@b.co","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
