package token

import (
	"context"

	"pokedex-hub/internal/domain"
)

// StaticAuthenticator accepts tokens signed by this service for users that
// still exist in the directory.
// Implements domain.Authenticator.
type StaticAuthenticator struct {
	tokens *JWTIssuer
	users  domain.UserDirectory
}

// NewStaticAuthenticator creates a new StaticAuthenticator.
func NewStaticAuthenticator(tokens *JWTIssuer, users domain.UserDirectory) *StaticAuthenticator {
	return &StaticAuthenticator{tokens: tokens, users: users}
}

// Authenticate validates tokenStr and resolves its subject.
func (a *StaticAuthenticator) Authenticate(_ context.Context, tokenStr string) (*domain.Identity, error) {
	if tokenStr == "" {
		return nil, domain.ErrAuthFailed
	}

	subject, err := a.tokens.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, err
	}

	identity, ok := a.users.Lookup(subject)
	if !ok {
		return nil, domain.ErrAuthFailed
	}
	return identity, nil
}
