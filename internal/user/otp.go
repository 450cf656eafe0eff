package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrInvalidOTP = errors.New("invalid or expired otp")

// RedisOTPStore keeps reset codes in redis so they expire server-side and
// are shared across instances, unlike a process-local map.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidOTP
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return code, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}
