// Package codes keeps short-lived verification codes in redis so that
// multiple instances and restarts see the same state.
package codes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeMismatch = errors.New("verification code is invalid or expired")

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(redisURL string, ttl time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{rdb: client, ttl: ttl}, nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: client, ttl: ttl}
}

// Issue generates a six-digit code for the key and stores it with the TTL,
// replacing any previous code.
func (s *Store) Issue(ctx context.Context, key string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.rdb.Set(ctx, redisKey(key), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Redeem checks the code and deletes it on match. A redeemed or expired code
// cannot be used again.
func (s *Store) Redeem(ctx context.Context, key, code string) error {
	stored, err := s.rdb.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.rdb.Del(ctx, redisKey(key)).Err()
}

func redisKey(key string) string {
	return "verify:" + key
}
