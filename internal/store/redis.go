// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"palmier/internal/models"
)

// redisKeyPrefix namespaces session records in a shared Redis instance.
const redisKeyPrefix = "palmier:session:"

// RedisStore keeps each session as one JSON string value. Redis SET is
// whole-value, which gives Save its atomic-replace semantics for free.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to the Redis instance at addr and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, addr string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis at %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Close shuts down the underlying client.
func (r *RedisStore) Close() {
	r.rdb.Close()
}

func (r *RedisStore) Load(ctx context.Context, code string) (*models.Session, error) {
	data, err := r.rdb.Get(ctx, redisKeyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", code, err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", code, err)
	}
	return &sess, nil
}

func (r *RedisStore) Save(ctx context.Context, code string, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", code, err)
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+code, data, 0).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", code, err)
	}
	return nil
}

func (r *RedisStore) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	iter := r.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return codes, nil
}
