package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore keeps OAuth state values between /start and /callback. Each
// value may be consumed once.
type StateStore interface {
	Put(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

// memoryStates only works when start and callback hit the same process.
type memoryStates struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func newMemoryStates() *memoryStates {
	return &memoryStates{items: make(map[string]time.Time), now: time.Now}
}

func (m *memoryStates) Put(_ context.Context, state string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, exp := range m.items {
		if now.After(exp) {
			delete(m.items, k)
		}
	}
	m.items[state] = now.Add(ttl)
	return nil
}

func (m *memoryStates) Consume(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.items[state]
	delete(m.items, state)
	return ok && !m.now().After(exp), nil
}

// RedisStates shares OAuth state across API instances and Lambda containers.
type RedisStates struct {
	client *redis.Client
}

func NewRedisStates(client *redis.Client) *RedisStates {
	return &RedisStates{client: client}
}

func stateKey(state string) string { return "jobportal:oauth_state:" + state }

func (r *RedisStates) Put(ctx context.Context, state string, ttl time.Duration) error {
	return r.client.Set(ctx, stateKey(state), 1, ttl).Err()
}

// Consume deletes the key; only the caller that removed it wins.
func (r *RedisStates) Consume(ctx context.Context, state string) (bool, error) {
	n, err := r.client.Del(ctx, stateKey(state)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
