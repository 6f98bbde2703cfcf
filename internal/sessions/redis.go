package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pp:session:"

type redisSession struct {
	Username    string    `json:"username,omitempty"`
	AgeVerified bool      `json:"age_verified"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RedisStore keeps sessions in redis; keys expire with the session.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

// ConnectRedis opens a client and pings it.
func ConnectRedis(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rdb, nil
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (s *RedisStore) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	raw, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return utils.SessionData{}, common.ErrNotFound
	}
	if err != nil {
		return utils.SessionData{}, fmt.Errorf("find session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return utils.SessionData{}, fmt.Errorf("decode session: %w", err)
	}
	return utils.SessionData{
		SessionID:   id,
		Username:    rs.Username,
		AgeVerified: rs.AgeVerified,
		ExpiresAt:   rs.ExpiresAt,
	}, nil
}

func (s *RedisStore) SaveSession(ctx context.Context, data utils.SessionData) error {
	ttl := data.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.DeleteSession(ctx, data.SessionID)
	}

	raw, err := json.Marshal(redisSession{
		Username:    data.Username,
		AgeVerified: data.AgeVerified,
		ExpiresAt:   data.ExpiresAt,
	})
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKey(data.SessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
