package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DirectoryAuthService implements AuthService over a user directory and a
// token issuer. It holds no mutable state; every call stands alone.
type DirectoryAuthService struct {
	users  UserRepository
	tokens *TokenIssuer
}

func NewDirectoryAuthService(users UserRepository, tokens *TokenIssuer) *DirectoryAuthService {
	return &DirectoryAuthService{users: users, tokens: tokens}
}

// Register creates an account and returns a fresh access token. The initial
// lookup is advisory; the directory insert is what actually serializes
// concurrent registrations for the same email.
func (s *DirectoryAuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("directory lookup: %w", err)
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	record := UserRecord{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("directory insert: %w", err)
	}

	return s.tokens.Issue(email)
}

// Authenticate verifies credentials and returns a fresh access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *DirectoryAuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("directory lookup: %w", err)
	}
	if u == nil || !VerifyPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(email)
}

// Introspect validates the Authorization header value and returns the
// account behind the token's subject.
func (s *DirectoryAuthService) Introspect(ctx context.Context, authorization string) (User, error) {
	email, err := s.tokens.Verify(extractToken(authorization))
	if err != nil {
		return User{}, ErrInvalidToken
	}

	u, lookupErr := s.users.FindByEmail(ctx, email)
	if lookupErr != nil {
		return User{}, fmt.Errorf("directory lookup: %w", lookupErr)
	}
	if u == nil {
		return User{}, ErrUserNotFound
	}
	return User{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// extractToken strips an optional scheme prefix ("Bearer <token>"); a header
// without a separator is treated as the bare token.
func extractToken(authorization string) string {
	if _, after, found := strings.Cut(authorization, " "); found {
		return after
	}
	return authorization
}
