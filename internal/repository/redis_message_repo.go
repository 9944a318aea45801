package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"legal-llm/internal/domain"
)

// RedisMessageRepository guarda el historial de cada sesión como una lista
// en Redis con TTL. Útil cuando no hay Postgres configurado pero se quiere
// historial compartido entre instancias del servicio.
type RedisMessageRepository struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisMessageRepository(client *redis.Client, ttl time.Duration) *RedisMessageRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisMessageRepository{
		client: client,
		ttl:    ttl,
		prefix: "chat:history:",
	}
}

func (r *RedisMessageRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisMessageRepository) Create(ctx context.Context, message domain.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key(message.SessionID), payload)
	pipe.Expire(ctx, r.key(message.SessionID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	return nil
}

func (r *RedisMessageRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error) {
	raw, err := r.client.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("range history: %w", err)
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *RedisMessageRepository) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}
