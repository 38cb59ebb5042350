// Package redis implements the repository ports on Redis lists. Each entity
// kind lives in one list of JSON documents; new items are pushed to the head.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"dashboard/internal/domain"
)

const (
	eventsKey       = "events_list"
	measurementsKey = "measurements_list"
)

var errNotRemoved = errors.New("list entry was not removed")

// Store keeps events and measurements in Redis lists.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

var _ domain.EventRepository = (*Store)(nil)
var _ domain.MeasurementRepository = (*Store)(nil)

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewStore(client, logger), nil
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, logger: logger}
}

// Health pings the server.
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) AddEvent(ctx context.Context, e domain.Event) error {
	return push(ctx, s.client, eventsKey, e)
}

func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	items, _, err := list[domain.Event](ctx, s, eventsKey)
	return items, err
}

func (s *Store) DeleteEvent(ctx context.Context, id string) (bool, error) {
	return remove(ctx, s, eventsKey, id, func(e domain.Event) string { return e.ID })
}

func (s *Store) AddMeasurement(ctx context.Context, m domain.Measurement) error {
	return push(ctx, s.client, measurementsKey, m)
}

func (s *Store) ListMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	items, _, err := list[domain.Measurement](ctx, s, measurementsKey)
	return items, err
}

func (s *Store) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	return remove(ctx, s, measurementsKey, id, func(m domain.Measurement) string { return m.ID })
}

func push(ctx context.Context, client *redis.Client, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s entry: %w", key, err)
	}
	if err := client.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("push %s: %w", key, err)
	}
	return nil
}

// list decodes every entry of key, skipping entries that are not valid JSON.
// raw holds the stored payload of each returned item, index for index.
func list[T any](ctx context.Context, s *Store, key string) (items []T, raw []string, err error) {
	values, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("range %s: %w", key, err)
	}
	items = make([]T, 0, len(values))
	raw = make([]string, 0, len(values))
	for i, v := range values {
		var item T
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			s.logger.Warn("skipping malformed list entry", "key", key, "index", i, "error", err)
			continue
		}
		items = append(items, item)
		raw = append(raw, v)
	}
	return items, raw, nil
}

// remove deletes the first entry whose id matches, by its exact payload.
func remove[T any](ctx context.Context, s *Store, key, id string, idOf func(T) string) (bool, error) {
	items, raw, err := list[T](ctx, s, key)
	if err != nil {
		return false, err
	}
	for i, item := range items {
		if idOf(item) != id {
			continue
		}
		n, err := s.client.LRem(ctx, key, 1, raw[i]).Result()
		if err != nil {
			return false, fmt.Errorf("remove from %s: %w", key, err)
		}
		if n == 0 {
			return false, fmt.Errorf("remove %s from %s: %w", id, key, errNotRemoved)
		}
		return true, nil
	}
	return false, nil
}
