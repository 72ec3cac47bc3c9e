package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	stateKeyPrefix = "oauth_state:"
	stateTTL       = 10 * time.Minute
)

// StateStoreInterface defines the storage for OAuth state nonces.
type StateStoreInterface interface {
	Issue(ctx context.Context, provider Provider) (string, error)
	Consume(ctx context.Context, state string) (Provider, error)
}

// stateCache is the slice of the cache client the store depends on. Both
// methods have strict error semantics: a state that was not durably written
// must not be handed to the provider, and one that cannot be read back must
// not validate.
type stateCache interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	GetDel(ctx context.Context, key string) ([]byte, error)
}

// StateStore keeps one-shot OAuth state values in Redis so a callback can be
// tied to the authorization request that started it.
type StateStore struct {
	cache stateCache
}

// Ensure StateStore implements StateStoreInterface
var _ StateStoreInterface = (*StateStore)(nil)

// NewStateStore creates a new state store.
func NewStateStore(cache stateCache) *StateStore {
	return &StateStore{cache: cache}
}

// Issue stores a fresh random state bound to a provider and returns it.
func (s *StateStore) Issue(ctx context.Context, provider Provider) (string, error) {
	state := uuid.New().String()
	key := stateKeyPrefix + state
	if err := s.cache.Put(ctx, key, []byte(provider), stateTTL); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return state, nil
}

// Consume validates a state exactly once and returns the provider it was
// issued for. Unknown, expired, or replayed states fail.
func (s *StateStore) Consume(ctx context.Context, state string) (Provider, error) {
	key := stateKeyPrefix + state
	data, err := s.cache.GetDel(ctx, key)
	if err != nil {
		return "", fmt.Errorf("consume oauth state: %w", err)
	}
	if data == nil {
		return "", fmt.Errorf("unknown or expired oauth state")
	}
	return Provider(data), nil
}
