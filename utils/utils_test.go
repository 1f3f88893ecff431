package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 100*24*time.Hour)
	fixed := time.Now().Add(-time.Minute).Truncate(time.Second)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.GenerateToken("abc", "admin@example.com")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", claims["email"])
	require.Equal(t, "abc", claims["sub"])
	require.EqualValues(t, fixed.Add(100*24*time.Hour).Unix(), claims["exp"])
}

func TestTokenIssuerClaims(t *testing.T) {
	issuer := NewTokenIssuer("secret", 2*time.Hour)
	token, err := issuer.GenerateToken("abc", "a@b.c")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "a@b.c", claims["email"])
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	require.Equal(t, int64((2 * time.Hour).Seconds()), exp-iat)

	_, err = NewTokenIssuer("other", time.Hour).ValidateToken(token)
	require.Error(t, err)
}

func TestRespondLiftsMessage(t *testing.T) {
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { Respond(c, http.StatusOK, gin.H{"message": "hi", "n": 1}) })
	r.GET("/list", func(c *gin.Context) { Respond(c, http.StatusOK, []int{1, 2}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.EqualValues(t, 200, env["status"])
	require.Equal(t, "hi", env["message"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))
	env = map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotContains(t, env, "message")
	require.Len(t, env["result"], 2)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zaptest.NewLogger(t)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestHealthMonitorCheck(t *testing.T) {
	m := NewHealthMonitor(map[string]HealthCheck{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("down") },
	})
	status := m.Check(context.Background())
	require.False(t, status.Healthy)
	require.True(t, status.Services["mongo"])
	require.False(t, status.Services["redis"])
	require.Equal(t, status, m.Status())
}
