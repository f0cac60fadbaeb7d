package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"grocery-api/internal/pkg/errs"
)

// RedisStore keeps all verification state in Redis with TTLs, so nothing
// needs a sweeper: code hashes, per-phone send counters, and one-shot
// reset-token ids.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func codeKey(phone, kind string) string {
	return fmt.Sprintf("verification:code:%s:%s", kind, phone)
}

func counterKey(phone string) string {
	return fmt.Sprintf("verification:sends:%s", phone)
}

func resetTokenKey(jti string) string {
	return fmt.Sprintf("verification:reset:%s", jti)
}

// IncrementSendCount bumps the counter and refreshes its TTL, so the
// window only expires after a full period without sends.
func (s *RedisStore) IncrementSendCount(ctx context.Context, phone string, window time.Duration) (int, error) {
	key := counterKey(phone)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errs.Wrap(err, "failed to increment send counter")
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) SaveCodeHash(ctx context.Context, phone, kind, hash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(phone, kind), hash, ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to store verification code")
	}
	return nil
}

func (s *RedisStore) CodeHash(ctx context.Context, phone, kind string) (string, error) {
	hash, err := s.client.Get(ctx, codeKey(phone, kind)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errs.Wrap(err, "failed to read verification code")
	}
	return hash, nil
}

func (s *RedisStore) DeleteCode(ctx context.Context, phone, kind string) error {
	if err := s.client.Del(ctx, codeKey(phone, kind)).Err(); err != nil {
		return errs.Wrap(err, "failed to delete verification code")
	}
	return nil
}

func (s *RedisStore) PutResetToken(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetTokenKey(jti), "1", ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to store reset token id")
	}
	return nil
}

// ConsumeResetToken removes the id atomically; only the first caller
// sees it as live.
func (s *RedisStore) ConsumeResetToken(ctx context.Context, jti string) (bool, error) {
	_, err := s.client.GetDel(ctx, resetTokenKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errs.Wrap(err, "failed to consume reset token id")
	}
	return true, nil
}
