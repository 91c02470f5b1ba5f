package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio-backend/internal/app"
	"portfolio-backend/internal/model"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/transport/http/middleware"
	"portfolio-backend/internal/transport/http/response"
)

// newTestRouter wires the API routes over an in-memory store, mirroring the
// production router minus the broker, cache and health check.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Work{},
		&model.Favorite{},
		&model.ActivityEvent{},
	))

	authService := app.NewAuthService(repository.NewUserRepository(db), nil)
	portfolioService := app.NewPortfolioService(
		repository.NewWorkRepository(db),
		repository.NewFavoriteRepository(db),
		nil,
		nil,
	)

	authHandler := NewAuthHandler(authService)
	worksHandler := NewWorksHandler(portfolioService)
	activityHandler := NewActivityHandler(repository.NewActivityRepository(db))

	router := gin.New()
	router.Use(middleware.CORS())
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)

	api := router.Group("/api")
	api.POST("/auth", authHandler.Handle)
	api.PUT("/auth", authHandler.UpdateProfile)
	api.GET("/works", worksHandler.List)
	api.POST("/works", worksHandler.Handle)
	api.DELETE("/works", worksHandler.Delete)
	api.GET("/activity", activityHandler.List)

	return router, db
}

func perform(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return parsed
}

func TestRegisterLoginScenario(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPost, "/api/auth", gin.H{
		"action": "register", "username": "alice", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice", user["display_name"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec = perform(t, router, http.MethodPost, "/api/auth", gin.H{
		"action": "register", "username": "alice", "password": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, rec)["error"])

	rec = perform(t, router, http.MethodPost, "/api/auth", gin.H{
		"action": "login", "username": "alice", "password": "pw1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = perform(t, router, http.MethodPost, "/api/auth", gin.H{
		"action": "login", "username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])
}

func TestRegisterMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPost, "/api/auth", gin.H{
		"action": "register", "username": "   ", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and password required", decodeBody(t, rec)["error"])
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPost, "/api/auth", gin.H{
		"action": "register", "username": "alice", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	userID := decodeBody(t, rec)["user"].(map[string]any)["id"].(float64)

	rec = perform(t, router, http.MethodPut, "/api/auth", gin.H{
		"user_id":      userID,
		"display_name": "Alice A.",
		"avatar_url":   "https://cdn.example.com/alice.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "Alice A.", user["display_name"])
	assert.Equal(t, "https://cdn.example.com/alice.png", user["avatar_url"])

	rec = perform(t, router, http.MethodPut, "/api/auth", gin.H{"display_name": "nobody"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User ID required", decodeBody(t, rec)["error"])
}

func TestWorksLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPost, "/api/works", gin.H{
		"action": "add_work", "user_id": 1, "image_url": "https://cdn.example.com/a.jpg",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	work := decodeBody(t, rec)["work"].(map[string]any)
	assert.Equal(t, "Untitled", work["title"])
	workID := work["id"].(float64)

	rec = perform(t, router, http.MethodPost, "/api/works", gin.H{
		"action": "add_work", "user_id": 1, "title": "no image",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Image URL required", decodeBody(t, rec)["error"])

	rec = perform(t, router, http.MethodPost, "/api/works", gin.H{
		"action": "toggle_favorite", "user_id": 7, "work_id": workID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["is_favorite"])

	rec = perform(t, router, http.MethodGet, "/api/works?user_id=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	works := decodeBody(t, rec)["works"].([]any)
	require.Len(t, works, 1)
	assert.Equal(t, true, works[0].(map[string]any)["is_favorite"])

	rec = perform(t, router, http.MethodGet, "/api/works", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	works = decodeBody(t, rec)["works"].([]any)
	require.Len(t, works, 1)
	assert.Equal(t, false, works[0].(map[string]any)["is_favorite"])

	rec = perform(t, router, http.MethodDelete, "/api/works?work_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = perform(t, router, http.MethodGet, "/api/works", nil)
	assert.Empty(t, decodeBody(t, rec)["works"])
}

func TestFavoritesListingFallsBackWithoutViewer(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPost, "/api/works", gin.H{
		"action": "add_work", "user_id": 1, "image_url": "https://cdn.example.com/a.jpg",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// action=favorites without user_id serves the full list, as the legacy
	// handler always did.
	rec = perform(t, router, http.MethodGet, "/api/works?action=favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["works"].([]any), 1)

	rec = perform(t, router, http.MethodGet, "/api/works?action=favorites&user_id=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["works"])
}

func TestDeleteWorkRequiresID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodDelete, "/api/works", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Work ID required", decodeBody(t, rec)["error"])
}

func TestUnknownActionIsMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPost, "/api/auth", gin.H{"action": "frobnicate"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = perform(t, router, http.MethodPost, "/api/works", gin.H{"action": "frobnicate"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnsupportedMethodIsMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodPatch, "/api/works", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeBody(t, rec)["error"])
}

func TestPreflightRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodOptions, "/api/works", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-User-Id", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSHeadersOnRegularResponses(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := perform(t, router, http.MethodGet, "/api/works", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestActivityEndpoint(t *testing.T) {
	router, db := newTestRouter(t)

	repo := repository.NewActivityRepository(db)
	require.NoError(t, repo.Create(&model.ActivityEvent{Type: model.ActivityUserRegistered, UserID: 1}))
	require.NoError(t, repo.Create(&model.ActivityEvent{Type: model.ActivityWorkCreated, UserID: 1, WorkID: 2}))

	rec := perform(t, router, http.MethodGet, "/api/activity", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeBody(t, rec)["events"].([]any)
	require.Len(t, events, 2)
}
