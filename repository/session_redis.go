package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"storefront-dashboard/models"
)

const sessionKey = "session:dashboard"

// RedisSessionRepository keeps the session snapshot in Redis. No TTL: the
// session lives until logout, the same as the file adapter.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey, data, 0).Err()
}

func (r *RedisSessionRepository) Load(ctx context.Context) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, nil
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

func (r *RedisSessionRepository) Clear(ctx context.Context) error {
	return r.client.Del(ctx, sessionKey).Err()
}
