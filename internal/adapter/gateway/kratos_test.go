package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pokedex-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKratosServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/whoami", r.URL.Path)
		assert.Equal(t, "session-token", r.Header.Get("X-Session-Token"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestKratosGateway_Authenticate_Success(t *testing.T) {
	server := newKratosServer(t, http.StatusOK, map[string]any{
		"id":     "session-1",
		"active": true,
		"identity": map[string]any{
			"id":         "user-abc-123",
			"schema_id":  "default",
			"schema_url": "http://kratos/schemas/default",
			"traits":     map[string]any{"email": "ash@example.com"},
		},
	})

	gw := NewKratosGateway(server.URL, 5*time.Second)
	identity, err := gw.Authenticate(context.Background(), "session-token")

	require.NoError(t, err)
	assert.Equal(t, "user-abc-123", identity.UserID)
	assert.Equal(t, "ash@example.com", identity.Username)
}

func TestKratosGateway_Authenticate_InactiveSession(t *testing.T) {
	server := newKratosServer(t, http.StatusOK, map[string]any{
		"id":     "session-1",
		"active": false,
	})

	gw := NewKratosGateway(server.URL, 5*time.Second)
	identity, err := gw.Authenticate(context.Background(), "session-token")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestKratosGateway_Authenticate_Unauthorized(t *testing.T) {
	server := newKratosServer(t, http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"code": 401, "message": "No valid session credentials found"},
	})

	gw := NewKratosGateway(server.URL, 5*time.Second)
	identity, err := gw.Authenticate(context.Background(), "session-token")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestKratosGateway_Authenticate_ServerError(t *testing.T) {
	server := newKratosServer(t, http.StatusInternalServerError, nil)

	gw := NewKratosGateway(server.URL, 5*time.Second)
	identity, err := gw.Authenticate(context.Background(), "session-token")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrIdentityProviderUnavailable))
}

func TestKratosGateway_UsesConfiguredTimeout(t *testing.T) {
	gw := NewKratosGateway("http://unused", 7*time.Second)

	assert.Equal(t, 7*time.Second, gw.timeout)
}

func TestKratosGateway_Authenticate_SlowProviderTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	gw := NewKratosGateway(server.URL, 50*time.Millisecond)
	start := time.Now()
	identity, err := gw.Authenticate(context.Background(), "session-token")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrIdentityProviderUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestKratosGateway_Authenticate_EmptyToken(t *testing.T) {
	gw := NewKratosGateway("http://unused", 5*time.Second)
	identity, err := gw.Authenticate(context.Background(), "")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestUsernameFromTraits(t *testing.T) {
	tests := []struct {
		name   string
		traits interface{}
		want   string
	}{
		{"username wins", map[string]interface{}{"username": "ash", "email": "ash@example.com"}, "ash"},
		{"email fallback", map[string]interface{}{"email": "misty@example.com"}, "misty@example.com"},
		{"empty traits", map[string]interface{}{}, "id-1"},
		{"non-map traits", "nope", "id-1"},
		{"nil traits", nil, "id-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usernameFromTraits(tt.traits, "id-1"))
		})
	}
}
