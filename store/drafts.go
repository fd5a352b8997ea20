package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"deepresearch/types"
)

// ErrDraftNotFound is returned when a draft id is unknown.
var ErrDraftNotFound = errors.New("draft not found")

const (
	draftKeyPrefix = "deepresearch:draft:"
	draftIndexKey  = "deepresearch:drafts"
)

// Drafts persists saved content drafts in Redis. Each draft is a JSON blob
// under its own key; a sorted set indexed by creation time serves listing.
type Drafts struct {
	client *redis.Client
}

// DraftsConfig holds Redis connection settings for the draft store.
type DraftsConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewDrafts connects to Redis and verifies connectivity.
func NewDrafts(cfg DraftsConfig) (*Drafts, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Drafts{client: client}, nil
}

// NewDraftsFromEnv builds a draft store from REDIS_ADDR / REDIS_PASSWORD /
// REDIS_DB. Returns nil when REDIS_ADDR is unset, which disables draft
// persistence.
func NewDraftsFromEnv() (*Drafts, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		db = parsed
	}

	return NewDrafts(DraftsConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
}

// Save stores a draft.
func (d *Drafts) Save(ctx context.Context, draft types.Draft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	pipe := d.client.TxPipeline()
	pipe.Set(ctx, draftKeyPrefix+draft.ID, b, 0)
	pipe.ZAdd(ctx, draftIndexKey, redis.Z{
		Score:  float64(draft.CreatedAt.UnixNano()),
		Member: draft.ID,
	})
	_, err = pipe.Exec(ctx)
	return err
}

// Get loads a draft by id.
func (d *Drafts) Get(ctx context.Context, id string) (types.Draft, error) {
	b, err := d.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return types.Draft{}, err
	}

	var draft types.Draft
	if err := json.Unmarshal(b, &draft); err != nil {
		return types.Draft{}, err
	}
	return draft, nil
}

// List returns all drafts, newest first.
func (d *Drafts) List(ctx context.Context) ([]types.Draft, error) {
	ids, err := d.client.ZRevRange(ctx, draftIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	drafts := make([]types.Draft, 0, len(ids))
	for _, id := range ids {
		draft, err := d.Get(ctx, id)
		if errors.Is(err, ErrDraftNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// Delete removes a draft by id.
func (d *Drafts) Delete(ctx context.Context, id string) error {
	removed, err := d.client.Del(ctx, draftKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrDraftNotFound
	}
	return d.client.ZRem(ctx, draftIndexKey, id).Err()
}

// Close closes the underlying Redis client.
func (d *Drafts) Close() error {
	return d.client.Close()
}
