package main

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"team-draft/internal/config"
	"team-draft/internal/draftv1"
	fxmodules "team-draft/internal/fx"
	"team-draft/internal/middleware"
	"team-draft/internal/server"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-secret")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "router.db"))
	t.Setenv("ALLOWED_ORIGINS", "https://draft.example")

	var (
		ds    *server.DraftServer
		cfg   *config.Config
		sqlDB *sql.DB
	)
	app := fxtest.New(t, fxmodules.Module, fx.Populate(&ds, &cfg, &sqlDB))
	app.RequireStart()
	t.Cleanup(func() {
		app.RequireStop()
		sqlDB.Close()
	})
	return newRouter(ds, cfg, zerolog.Nop())
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestProcedureMounted(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, draftv1.ListPlayersProcedure, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthenticated")

	req = httptest.NewRequest(http.MethodPost, draftv1.RegisterProcedure, strings.NewReader(`{"username":"a","email":"a@b.io","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"email":"a@b.io"`)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, draftv1.LoginProcedure, nil)
	req.Header.Set("Origin", "https://draft.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://draft.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
