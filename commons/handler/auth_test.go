package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobtrack/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	future := time.Now().Add(time.Hour).Unix()

	t.Run("userId claim", func(t *testing.T) {
		actor, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": "u-1", "exp": future}))
		require.NoError(t, err)
		assert.Equal(t, "u-1", actor)
	})

	t.Run("sub fallback", func(t *testing.T) {
		actor, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u-2"}))
		require.NoError(t, err)
		assert.Equal(t, "u-2", actor)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": "u", "exp": time.Now().Add(-time.Hour).Unix()}))
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"userId": "u"}))
		assert.Error(t, err)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"userId": "u"}))
		assert.Error(t, err)
	})

	t.Run("no actor", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"role": "admin"}))
		assert.ErrorIs(t, err, errNoActor)
	})
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(NewTokenVerifier(testSecret), logger.NewNopLogger()))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyActor))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do("Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": "u-9"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-9", w.Body.String())

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not.a.jwt"} {
		w := do(header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), `"errorCode":401`)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestIDFromContext(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}
