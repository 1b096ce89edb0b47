package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"
)

// RedisUserRepository implements UserRepository over plain keys: the record
// lives at user:<id> as JSON and user:email:<email> indexes the id. Insert
// claims the email index and writes the record in one script so two
// concurrent registrations for the same email cannot both succeed.
type RedisUserRepository struct {
	client *redis.Client
}

func NewRedisUserRepository(client *redis.Client) *RedisUserRepository {
	return &RedisUserRepository{client: client}
}

// insertScript:
// if SETNX on the email index fails the email is taken; otherwise store the record.
var insertScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2])
return 1
`)

func (r *RedisUserRepository) Insert(ctx context.Context, u UserRecord) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return err
	}
	res, err := insertScript.Run(ctx, r.client,
		[]string{emailKeyPrefix + u.Email, userKeyPrefix + u.ID},
		u.ID, string(payload)).Int()
	if err != nil {
		return err
	}
	if res == 0 {
		return ErrDuplicateKey
	}
	return nil
}

func (r *RedisUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	id, err := r.client.Get(ctx, emailKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *RedisUserRepository) FindByID(ctx context.Context, id string) (*UserRecord, error) {
	raw, err := r.client.Get(ctx, userKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u UserRecord
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
