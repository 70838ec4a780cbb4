// internal/history/publisher.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wordchain/internal/game"
)

// DefaultQueueName is the Redis list finished-game results are pushed
// onto for an external consumer (leaderboards, archival).
const DefaultQueueName = "wordchain_results"

// Publisher pushes finished-game summaries onto a Redis list. A nil
// Publisher is valid and drops every record, so games never depend on
// Redis being configured or reachable.
type Publisher struct {
	rdb   *redis.Client
	queue string
}

// Connect dials Redis and verifies the connection before returning a
// Publisher.
func Connect(addr string, db int, queue string) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueueName
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Publisher{rdb: rdb, queue: queue}, nil
}

// Publish serializes the result to JSON and RPushes it onto the queue.
func (p *Publisher) Publish(ctx context.Context, result game.GameResult) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list %q: %w", p.queue, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
