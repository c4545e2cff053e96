package token

import (
	"errors"
	"fmt"
	"time"

	"pokedex-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds JWT signing configuration.
type JWTConfig struct {
	Secret string
	Issuer string
}

// accessClaims represents the claims carried by a bearer access token.
// Tokens carry no expiry: the gateway has no session lifetime.
type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 access tokens.
// Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg, now: time.Now}
}

// IssueAccessToken generates a signed access token for identity.
func (j *JWTIssuer) IssueAccessToken(identity *domain.Identity) (string, error) {
	if identity == nil {
		return "", errors.New("nil identity")
	}
	claims := accessClaims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   j.cfg.Issuer,
			Subject:  identity.UserID,
			IssuedAt: jwt.NewNumericDate(j.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.Secret))
}

// ParseAccessToken verifies tokenStr and returns its subject.
func (j *JWTIssuer) ParseAccessToken(tokenStr string) (string, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) {
			return []byte(j.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.cfg.Issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", domain.ErrAuthFailed)
	}
	return claims.Subject, nil
}
