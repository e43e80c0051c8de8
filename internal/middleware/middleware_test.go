package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, role string, ttl time.Duration) string {
	claims := JWTClaims{
		ID:    "7d7c1f44-8a0f-4ef5-9a44-2d4b9b1c0f11",
		Email: "staff@school.edu",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestJWTAuth(t *testing.T) {
	r := gin.New()
	r.GET("/p", JWTAuth(secret), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Role)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/p", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/p", "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/p", signToken(t, "Staff", -time.Minute)).Code)

	w := serve(r, http.MethodGet, "/p", signToken(t, "Staff", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Staff", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWTAuth(secret), RequireRole(model.RoleAdmin), ok)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", signToken(t, "Staff", time.Hour)).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin", signToken(t, "Admin", time.Hour)).Code)
}

func TestRequireCapability(t *testing.T) {
	resolver := func(_ context.Context, role string, capability model.Capability) (bool, error) {
		switch role {
		case "Admin":
			return true, nil
		case "Staff":
			return capability == model.CapabilityInventory, nil
		default:
			return false, errors.New("db down")
		}
	}
	r := gin.New()
	r.Use(JWTAuth(secret))
	r.GET("/inv", RequireCapability(resolver, model.CapabilityInventory), ok)
	r.GET("/analytics", RequireCapability(resolver, model.CapabilityAnalytics), ok)

	staff := signToken(t, "Staff", time.Hour)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/inv", staff).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/analytics", staff).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/analytics", signToken(t, "Admin", time.Hour)).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/inv", signToken(t, "Ghost", time.Hour)).Code)
}

func TestCORSAllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/x", ok)

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRequestIDPropagation(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/x", "")
	assert.Len(t, w.Body.String(), 36)
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	l := NewLoginRateLimiter(5, 15*time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		assert.True(t, allowed, "attempt %d", i+1)
	}
	allowed, _ := l.Allow("10.0.0.1")
	assert.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2")
	assert.True(t, allowed, "limits are per IP")

	now = now.Add(16 * time.Minute)
	allowed, _ = l.Allow("10.0.0.1")
	assert.True(t, allowed, "window resets")
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/login", NewLoginRateLimiter(1, time.Minute).Middleware(), ok)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login", "").Code)
	w := serve(r, http.MethodPost, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(), Recovery())
	r.GET("/err", func(c *gin.Context) { _ = c.Error(errors.New("pq: relation does not exist")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	for _, path := range []string{"/err", "/panic"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.NotContains(t, w.Body.String(), "relation")
		assert.NotContains(t, w.Body.String(), "boom")

		var body apierror.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Internal server error", body.Detail)
		assert.Equal(t, w.Header().Get(RequestIDHeader), body.RequestID, path)
		assert.NotEmpty(t, body.RequestID)
	}
}

func TestErrorHandlerRendersClassifiedErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("%w: product 42", apierror.ErrNotFound))
	})
	r.GET("/short", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("%w: requested 5, available 3", apierror.ErrInsufficientStock))
	})
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(apierror.ErrConflict)
	})

	w := serve(r, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"not found: product 42"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/short", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "available 3")

	w = serve(r, http.MethodGet, "/written", "")
	assert.Equal(t, http.StatusAccepted, w.Code, "a response already on the wire is left alone")
}

func TestAccessLevelFollowsStatus(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, accessLevel(http.StatusOK))
	assert.Equal(t, zerolog.WarnLevel, accessLevel(http.StatusNotFound))
	assert.Equal(t, zerolog.ErrorLevel, accessLevel(http.StatusBadGateway))
}
