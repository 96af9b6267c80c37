package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// removeIfMatch deletes KEYS[1] only when it still holds ARGV[1].
var removeIfMatch = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps one key per employee holding the live session id. Expiry is
// delegated to Redis key TTLs, so evicted keys simply disappear.
type RedisStore struct {
	client redis.UniversalClient
}

var _ portssvc.SessionStore = (*RedisStore)(nil)

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func sessionKey(employeeID string) string {
	return keyPrefix + employeeID
}

func (s *RedisStore) TryCreateSession(ctx context.Context, employeeID, sessionID string, expiresAt time.Time) (bool, error) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return false, nil
	}
	ok, err := s.client.SetArgs(ctx, sessionKey(employeeID), sessionID, redis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}
	return ok == "OK", nil
}

func (s *RedisStore) IsSessionValid(ctx context.Context, employeeID, sessionID string) (bool, error) {
	stored, err := s.client.Get(ctx, sessionKey(employeeID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	return stored == sessionID, nil
}

func (s *RedisStore) RemoveSession(ctx context.Context, employeeID string, sessionID *string) error {
	key := sessionKey(employeeID)
	if sessionID == nil {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to remove session: %w", err)
		}
		return nil
	}
	if err := removeIfMatch.Run(ctx, s.client, []string{key}, *sessionID).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
