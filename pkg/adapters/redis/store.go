// Package redis caches validation reports keyed by a hash of the tool
// source, so repeated CI runs over unchanged files skip re-validation.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/soundmesh/toolwright/pkg/domain"
)

// ErrCacheMiss is returned by Load when no report is cached for the hash.
var ErrCacheMiss = errors.New("report not cached")

// Store caches validation reports in Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached reports.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached reports.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "toolwright:report:",
		ttl:    24 * time.Hour,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Hash returns the cache key material for a source unit.
func Hash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func (s *Store) key(hash string) string {
	return s.prefix + hash
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save caches the reports for the source hash.
func (s *Store) Save(ctx context.Context, hash string, reports []domain.ValidationReport) error {
	data, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal reports: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(hash), data, s.ttl)

	// Index entries expire alongside their payloads; score 0 means no TTL.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: hash,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves cached reports for the source hash.
func (s *Store) Load(ctx context.Context, hash string) ([]domain.ValidationReport, error) {
	val, err := s.client.Get(ctx, s.key(hash)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var reports []domain.ValidationReport
	if err := json.Unmarshal([]byte(val), &reports); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reports: %w", err)
	}
	return reports, nil
}

// Delete evicts the cached reports for the hash.
func (s *Store) Delete(ctx context.Context, hash string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(hash))
	pipe.ZRem(ctx, s.indexKey(), hash)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the cached hashes, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired entries: %w", err)
	}

	hashes, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list cached reports: %w", err)
	}
	return hashes, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
