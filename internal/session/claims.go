package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity and expiry facts decoded from a session token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// decodeClaims extracts the sub and exp claims from a token without
// verifying its signature. The token is issuer-opaque to this client;
// verification happens server-side on every authenticated request.
func decodeClaims(token string) (Claims, error) {
	var reg jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &reg); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	if reg.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("decode token: missing exp claim")
	}
	return Claims{Subject: reg.Subject, ExpiresAt: reg.ExpiresAt.Time}, nil
}
