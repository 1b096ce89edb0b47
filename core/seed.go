package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type seedUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

// SeedUsers creates the accounts listed in the YAML file at path. It is
// idempotent: emails that already have an account are skipped. An empty
// path is a no-op.
func SeedUsers(ctx context.Context, repo UserRepository, path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", path, err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	created := 0
	for _, su := range sf.Users {
		if su.Email == "" || su.Password == "" {
			return fmt.Errorf("seed file %s: user entry missing email or password", path)
		}

		hash, err := HashPassword(su.Password)
		if err != nil {
			return err
		}
		record := UserRecord{
			ID:           uuid.NewString(),
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.Insert(ctx, record); err != nil {
			if errors.Is(err, ErrDuplicateKey) {
				continue
			}
			return fmt.Errorf("seed insert %s: %w", su.Email, err)
		}
		created++
	}

	if created > 0 {
		log.Printf("seeded %d account(s) from %s", created, path)
	}
	return nil
}
