package core

import (
	"context"
	"errors"
)

// User is the public projection of an account returned to handlers.
// It never carries the password hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a token is malformed, forged, or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned when a valid token references a missing account.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService defines the authentication operations exposed over HTTP.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (token string, err error)
	Authenticate(ctx context.Context, email, password string) (token string, err error)
	Introspect(ctx context.Context, authorization string) (User, error)
}
