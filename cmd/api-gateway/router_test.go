package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/app"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/pkg/config"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Env:       config.EnvProduction,
		APIPrefix: "/api/v1",
		JWT:       config.JWTConfig{Secret: testSecret, Expiration: time.Hour, Issuer: "test"},
		Timetable: config.TimetableConfig{DayStart: "09:00", DayEnd: "17:00"},
	}
	a, err := app.Wire(cfg, nil, sqlx.NewDb(db, "sqlmock"), nil)
	require.NoError(t, err)
	return newRouter(a)
}

func signToken(t *testing.T, claims models.JWTClaims) string {
	t.Helper()
	claims.RegisteredClaims = jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func do(router *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterProbes(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/ready", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/docs/index.html", "", nil).Code)
}

func TestRouterAuthorization(t *testing.T) {
	router := newTestRouter(t)
	studentID := "s1"
	student := signToken(t, models.JWTClaims{UserID: "u-s", Role: models.RoleStudent, StudentID: &studentID})
	admin := signToken(t, models.JWTClaims{UserID: "u-a", Role: models.RoleAdmin})

	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/v1/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodPost, "/api/v1/timetable/generate", student, []byte(`{}`)).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/api/v1/students/s2/timetable", student, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/api/v1/statistics", student, nil).Code)

	w := do(router, http.MethodPost, "/api/v1/timetable/generate", admin, []byte(`{"startDate":"2025-01-10","endDate":"2025-01-06"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
