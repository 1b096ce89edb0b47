package core

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenTTL is fixed; tokens are stateless and cannot be revoked early.
const accessTokenTTL = 15 * time.Minute

// TokenIssuer mints and verifies HS256 access tokens. The subject claim is
// the account email.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue returns a signed token with sub=subject expiring accessTokenTTL from now.
func (t *TokenIssuer) Issue(subject string) (string, error) {
	return t.issue(subject, accessTokenTTL)
}

func (t *TokenIssuer) issue(subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature and expiry and returns the subject claim.
// Any failure, including a missing subject, maps to ErrInvalidToken.
func (t *TokenIssuer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
