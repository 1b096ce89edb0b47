package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeedUsers(t *testing.T) {
	repo := newFakeUserRepository()
	path := writeSeedFile(t, `
users:
  - username: admin
    email: admin@x.com
    password: changeme
  - username: viewer
    email: viewer@x.com
    password: readonly
`)

	if err := SeedUsers(context.Background(), repo, path); err != nil {
		t.Fatalf("SeedUsers error: %v", err)
	}

	admin := repo.byEmail["admin@x.com"]
	if admin.Username != "admin" || admin.ID == "" {
		t.Fatalf("admin not seeded: %+v", admin)
	}
	if !VerifyPassword("changeme", admin.PasswordHash) {
		t.Fatalf("seeded password hash does not verify")
	}
	if len(repo.byEmail) != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", len(repo.byEmail))
	}

	// Second run is a no-op for existing emails.
	firstID := admin.ID
	if err := SeedUsers(context.Background(), repo, path); err != nil {
		t.Fatalf("second SeedUsers error: %v", err)
	}
	if repo.byEmail["admin@x.com"].ID != firstID {
		t.Fatalf("existing account was replaced on reseed")
	}
}

func TestSeedUsers_EmptyPath(t *testing.T) {
	if err := SeedUsers(context.Background(), newFakeUserRepository(), ""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
}

func TestSeedUsers_MissingFields(t *testing.T) {
	path := writeSeedFile(t, `
users:
  - username: broken
    email: ""
    password: x
`)
	if err := SeedUsers(context.Background(), newFakeUserRepository(), path); err == nil {
		t.Fatalf("expected error for entry without email")
	}
}
