package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pokedex-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// KratosGateway implements domain.Authenticator against Ory Kratos session tokens.
type KratosGateway struct {
	client  *kratos.APIClient
	timeout time.Duration
}

// NewKratosGateway creates a new Kratos gateway with tuned HTTP transport.
// timeout bounds each whoami call.
func NewKratosGateway(baseURL string, timeout time.Duration) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: baseURL},
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	configuration.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return &KratosGateway{
		client:  kratos.NewAPIClient(configuration),
		timeout: timeout,
	}
}

// Authenticate resolves a Kratos session token into an identity.
func (g *KratosGateway) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrAuthFailed
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return nil, domain.ErrAuthFailed
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrIdentityProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrIdentityProviderUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrAuthFailed
	}
	if session.Identity == nil {
		return nil, domain.ErrAuthFailed
	}

	return &domain.Identity{
		UserID:   session.Identity.Id,
		Username: usernameFromTraits(session.Identity.Traits, session.Identity.Id),
	}, nil
}

// usernameFromTraits prefers the username trait, then email, then the identity ID.
func usernameFromTraits(traits interface{}, fallback string) string {
	m, ok := traits.(map[string]interface{})
	if !ok {
		return fallback
	}
	for _, key := range []string{"username", "email"} {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}
