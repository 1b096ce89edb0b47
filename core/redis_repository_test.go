package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisRepo(t *testing.T) *RedisUserRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisUserRepository(client)
}

func testRecord(id, email string) UserRecord {
	return UserRecord{
		ID:           id,
		Username:     "ana",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisRepository_InsertAndFind(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	rec := testRecord("id-1", "ana@x.com")
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	byEmail, err := repo.FindByEmail(ctx, "ana@x.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if byEmail == nil || byEmail.ID != "id-1" || byEmail.Username != "ana" {
		t.Fatalf("unexpected record by email: %+v", byEmail)
	}

	byID, err := repo.FindByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if byID == nil || byID.Email != "ana@x.com" {
		t.Fatalf("unexpected record by id: %+v", byID)
	}
}

func TestRedisRepository_FindMissing(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	u, err := repo.FindByEmail(ctx, "nobody@x.com")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil) for missing email, got (%+v, %v)", u, err)
	}
	u, err = repo.FindByID(ctx, "missing-id")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil) for missing id, got (%+v, %v)", u, err)
	}
}

func TestRedisRepository_InsertDuplicateEmail(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, testRecord("id-1", "ana@x.com")); err != nil {
		t.Fatalf("first Insert error: %v", err)
	}

	err := repo.Insert(ctx, testRecord("id-2", "ana@x.com"))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// Losing insert must not clobber the original record.
	u, err := repo.FindByEmail(ctx, "ana@x.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if u == nil || u.ID != "id-1" {
		t.Fatalf("original record lost after duplicate insert: %+v", u)
	}
}
