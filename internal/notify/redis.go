// internal/notify/redis.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hydroflow-bot/internal/domain"
)

// DefaultOutboxKey is the Redis list the chat transport drains.
const DefaultOutboxKey = "hydroflow:outbox"

// listPusher is the subset of redis.Cmdable the notifier needs.
type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Envelope is the JSON document pushed to the outbox.
type Envelope struct {
	UserID       int64               `json:"user_id"`
	QueuedAt     time.Time           `json:"queued_at"`
	Notification domain.Notification `json:"notification"`
}

// RedisNotifier queues notifications on a Redis list for the transport to deliver.
type RedisNotifier struct {
	client listPusher
	key    string
	now    func() time.Time
}

// NewRedisNotifier creates a RedisNotifier writing to key (DefaultOutboxKey when empty).
func NewRedisNotifier(client listPusher, key string) *RedisNotifier {
	if key == "" {
		key = DefaultOutboxKey
	}
	return &RedisNotifier{client: client, key: key, now: time.Now}
}

func (n *RedisNotifier) Notify(ctx context.Context, userID int64, msg domain.Notification) error {
	body, err := json.Marshal(Envelope{
		UserID:       userID,
		QueuedAt:     n.now().UTC(),
		Notification: msg,
	})
	if err != nil {
		return fmt.Errorf("notify user %d: failed to encode %s: %w", userID, msg.Kind, err)
	}

	if err := n.client.RPush(ctx, n.key, body).Err(); err != nil {
		return fmt.Errorf("notify user %d: failed to queue %s: %w", userID, msg.Kind, err)
	}
	return nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}
