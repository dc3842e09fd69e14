package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pulsefeed/database"
	"pulsefeed/middleware"
	"pulsefeed/util"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() { database.DB.Close() })
}

func TestAuthMiddlewareRejectsMissingSession(t *testing.T) {
	setupTestDB(t)

	called := false
	handler := middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/posts/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "error")
	require.False(t, called, "handler must not run for unauthenticated requests")
}

func TestAuthMiddlewarePassesUserIDThroughContext(t *testing.T) {
	setupTestDB(t)

	res, err := database.DB.Exec(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, "alice", "irrelevant-hash", time.Now())
	require.NoError(t, err)
	userID, err := res.LastInsertId()
	require.NoError(t, err)

	token, err := util.CreateSession(userID)
	require.NoError(t, err)

	var seen int64
	handler := middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(middleware.UserIDKey).(int64)
	}))

	req := httptest.NewRequest("GET", "/posts/", nil)
	req.AddCookie(&http.Cookie{Name: util.SessionCookieName, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, userID, seen)
}
