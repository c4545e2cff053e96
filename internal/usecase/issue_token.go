package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"pokedex-hub/internal/domain"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// TokenResult holds the data returned by IssueToken.
type TokenResult struct {
	AccessToken string
	TokenType   string
}

// IssueToken exchanges username/password credentials for a bearer token.
type IssueToken struct {
	credentials domain.CredentialVerifier
	issuer      domain.TokenIssuer
	logger      *slog.Logger
}

// NewIssueToken creates a new IssueToken usecase.
func NewIssueToken(c domain.CredentialVerifier, t domain.TokenIssuer, l *slog.Logger) *IssueToken {
	return &IssueToken{credentials: c, issuer: t, logger: l}
}

// Execute verifies the credentials and issues an access token.
func (uc *IssueToken) Execute(ctx context.Context, username, password string) (*TokenResult, error) {
	identity, err := uc.credentials.Verify(ctx, username, password)
	if err != nil {
		uc.logger.WarnContext(ctx, "login rejected", "username", username)
		return nil, err
	}

	token, err := uc.issuer.IssueAccessToken(identity)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to issue access token", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}

	return &TokenResult{AccessToken: token, TokenType: TokenTypeBearer}, nil
}
