package jwt

import (
	"time"
)

// Claims are the token claims the application relies on.
type Claims struct {
	UserID    string
	TokenID   string
	Audience  []string
	ExpiresAt time.Time
}

// Signer signs and verifies JWT tokens.
type Signer interface {
	Sign(subject string, audience []string, duration time.Duration) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}
