package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo keeps profiles in process memory.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Profile // userID -> profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Profile)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, p Profile) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	p.Skills = append([]string(nil), p.Skills...)
	r.data[p.UserID] = p
	return p, nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) DeleteGuestsBefore(ctx context.Context, cutoff time.Time) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []Profile
	for id, p := range r.data {
		if p.IsGuest && p.UpdatedAt.Before(cutoff) {
			removed = append(removed, p)
			delete(r.data, id)
		}
	}
	return removed, nil
}

var _ Repo = (*MemoryRepo)(nil)
