package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teaghor/storefront-backend/pkg/config"
	"github.com/teaghor/storefront-backend/pkg/logger"
	"github.com/teaghor/storefront-backend/pkg/redis"
)

// Storage persists the cart item list, keyed by session. The drawer flag is
// deliberately excluded; only order lines survive a restart.
type Storage interface {
	Save(ctx context.Context, sessionID uuid.UUID, items []Item) error
	Load(ctx context.Context, sessionID uuid.UUID) ([]Item, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type blobStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(namespace, sessionID string) string
}

// RedisStorage stores the item list as a JSON blob under cart:<session>.
type RedisStorage struct {
	client blobStore
	cfg    config.CartConfig
	logg   *logger.Logger
}

// NewRedisStorage builds the production cart storage.
func NewRedisStorage(client *redis.Client, cfg config.CartConfig, logg *logger.Logger) (*RedisStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &RedisStorage{client: client, cfg: cfg, logg: logg}, nil
}

// Save serializes the item list and writes it with the configured TTL.
func (s *RedisStorage) Save(ctx context.Context, sessionID uuid.UUID, items []Item) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}
	return s.client.Set(ctx, s.key(sessionID), string(blob), s.cfg.TTL)
}

// Load reads the persisted item list. A missing or unreadable blob yields an
// empty cart, never an error; a session always starts somewhere.
func (s *RedisStorage) Load(ctx context.Context, sessionID uuid.UUID) ([]Item, error) {
	blob, err := s.client.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart blob: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"session_id": sessionID.String()})
		s.logg.Warn(ctx, "discarding corrupt cart blob")
		return nil, nil
	}
	return items, nil
}

// Delete removes the persisted cart blob.
func (s *RedisStorage) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return s.client.Del(ctx, s.key(sessionID))
}

func (s *RedisStorage) key(sessionID uuid.UUID) string {
	return s.client.CartKey(s.cfg.Namespace, sessionID.String())
}

// MemoryStorage keeps carts in process memory. Used by tests and as a
// degraded mode when Redis is unavailable.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]Item
}

// NewMemoryStorage builds an empty in-memory cart store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[uuid.UUID][]Item)}
}

func (m *MemoryStorage) Save(_ context.Context, sessionID uuid.UUID, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]Item, len(items))
	copy(copied, items)
	m.carts[sessionID] = copied
	return nil
}

func (m *MemoryStorage) Load(_ context.Context, sessionID uuid.UUID) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	return copied, nil
}

func (m *MemoryStorage) Delete(_ context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
