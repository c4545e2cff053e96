package domain

import "context"

// CatalogClient reads creature data from the upstream catalog.
// Absence is reported as ErrCatalogNotFound, a rejected identifier as
// ErrCatalogBadRequest, and every other failure wraps ErrCatalogUnavailable.
type CatalogClient interface {
	GetPokemon(ctx context.Context, name string) (*Pokemon, error)
	// GetMovePower returns nil when the move has no power value.
	GetMovePower(ctx context.Context, moveURL string) (*int, error)
	GetGenerationSpecies(ctx context.Context, generationID int) ([]string, error)
}

// Authenticator validates a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*Identity, error)
}

// UserDirectory resolves a known username to its identity.
type UserDirectory interface {
	Lookup(username string) (*Identity, bool)
}

// TokenIssuer generates signed access tokens.
type TokenIssuer interface {
	IssueAccessToken(identity *Identity) (string, error)
}
