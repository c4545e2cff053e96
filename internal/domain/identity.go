package domain

// Identity represents an authenticated caller.
type Identity struct {
	UserID   string
	Username string
}
