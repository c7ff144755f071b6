package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"solarfleet/internal/sim"
)

// Store caches the latest reading per site in redis for quick dashboard
// access. History is not kept; every save overwrites the previous reading.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns a redis-backed store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(siteID string) string {
	return fmt.Sprintf("fleet:latest:%s", siteID)
}

// Save caches the reading under its site id.
func (s *Store) Save(ctx context.Context, reading sim.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(reading.SiteID), data, s.ttl).Err()
}

// Latest returns the cached reading for a site.
func (s *Store) Latest(ctx context.Context, siteID string) (*sim.Reading, error) {
	result, err := s.client.Get(ctx, s.key(siteID)).Result()
	if err != nil {
		return nil, err
	}
	var reading sim.Reading
	if err := json.Unmarshal([]byte(result), &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}
