package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newHeadersServer() *echo.Echo {
	e := echo.New()
	e.Use(SecurityHeaders())
	e.GET("/pokemon/:name", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"name": c.Param("name")})
	})
	return e
}

func TestSecurityHeaders_SetsAPIHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pokemon/pikachu", nil)
	rec := httptest.NewRecorder()
	newHeadersServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	for k, v := range apiSecurityHeaders {
		assert.Equal(t, v, rec.Header().Get(k), k)
	}
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HSTSBehindTLSProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pokemon/pikachu", nil)
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	rec := httptest.NewRecorder()
	newHeadersServer().ServeHTTP(rec, req)

	assert.Equal(t, hstsValue, rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_AppliedToErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	rec := httptest.NewRecorder()
	newHeadersServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
