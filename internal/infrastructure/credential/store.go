package credential

import (
	"context"
	"fmt"
	"strings"

	"pokedex-hub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Store is a fixed in-memory user table loaded at startup.
// Implements domain.CredentialVerifier and domain.UserDirectory.
type Store struct {
	hashed map[string][]byte
}

// NewStore creates a store from username -> plaintext password pairs.
func NewStore(users map[string]string) (*Store, error) {
	return newStoreWithCost(users, bcrypt.DefaultCost)
}

func newStoreWithCost(users map[string]string, cost int) (*Store, error) {
	s := &Store{hashed: make(map[string][]byte, len(users))}
	for username, password := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", username, err)
		}
		s.hashed[username] = hash
	}
	return s, nil
}

// ParseUsers parses "user:password,user2:password2" into a user table.
func ParseUsers(raw string) (map[string]string, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		username, password, ok := strings.Cut(pair, ":")
		if !ok || username == "" || password == "" {
			return nil, fmt.Errorf("invalid user entry %q: expected user:password", pair)
		}
		users[username] = password
	}
	return users, nil
}

// Verify checks password against the stored hash for username.
func (s *Store) Verify(_ context.Context, username, password string) (*domain.Identity, error) {
	stored, ok := s.hashed[username]
	if !ok {
		return nil, domain.ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword(stored, []byte(password)); err != nil {
		return nil, domain.ErrAuthFailed
	}
	return newIdentity(username), nil
}

// Lookup resolves a known username.
func (s *Store) Lookup(username string) (*domain.Identity, bool) {
	if _, ok := s.hashed[username]; !ok {
		return nil, false
	}
	return newIdentity(username), true
}

func newIdentity(username string) *domain.Identity {
	return &domain.Identity{UserID: username, Username: username}
}
