package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/callguard/spam-checker/internal/domain"
	"github.com/callguard/spam-checker/internal/service"
)

const (
	resultKeyPrefix = "spamcheck:result:"
	historyKey      = "spamcheck:history"

	// resultTTL outlives the 24h freshness window so a stale entry is
	// still there to be overwritten rather than re-created.
	resultTTL = 48 * time.Hour

	// historyCapacity bounds the activity list via LTRIM.
	historyCapacity = 100
)

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) service.Store {
	return &redisStore{
		client: client,
	}
}

func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}

	log.Println("✅ Connected to Redis")
	return client, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*domain.LookupResult, error) {
	raw, err := s.client.Get(ctx, resultKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: failed to get result: %w", err)
	}

	var result domain.LookupResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("redis: corrupt result %s: %w", id, err)
	}
	return &result, nil
}

func (s *redisStore) Put(ctx context.Context, result *domain.LookupResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis: failed to encode result: %w", err)
	}
	if err := s.client.Set(ctx, resultKeyPrefix+result.ID, raw, resultTTL).Err(); err != nil {
		return fmt.Errorf("redis: failed to save result: %w", err)
	}
	return nil
}

func (s *redisStore) All(ctx context.Context) ([]*domain.LookupResult, error) {
	var results []*domain.LookupResult

	iter := s.client.Scan(ctx, 0, resultKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue // expired between SCAN and GET
		}
		if err != nil {
			return nil, fmt.Errorf("redis: failed to scan results: %w", err)
		}

		var result domain.LookupResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("redis: corrupt result %s: %w", iter.Val(), err)
		}
		results = append(results, &result)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis: failed to scan results: %w", err)
	}

	return results, nil
}

func (s *redisStore) AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis: failed to encode history entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, historyKey, raw)
	pipe.LTrim(ctx, historyKey, 0, historyCapacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: failed to append history: %w", err)
	}
	return nil
}

func (s *redisStore) RecentHistory(ctx context.Context, n int) ([]*domain.HistoryEntry, error) {
	rows, err := s.client.LRange(ctx, historyKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to read history: %w", err)
	}

	// LPUSH makes index 0 the newest entry; the contract is oldest-first.
	entries := make([]*domain.HistoryEntry, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(rows[i]), &entry); err != nil {
			return nil, fmt.Errorf("redis: corrupt history entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
