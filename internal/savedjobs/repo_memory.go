package savedjobs

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]SavedJob // userID -> jobID -> job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]map[string]SavedJob)}
}

func (r *MemoryRepo) Save(ctx context.Context, job SavedJob) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs, ok := r.data[job.UserID]
	if !ok {
		jobs = make(map[string]SavedJob)
		r.data[job.UserID] = jobs
	}
	if _, exists := jobs[job.JobID]; exists {
		return false, nil
	}
	jobs[job.JobID] = job
	return true, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, jobID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[userID][jobID]; !ok {
		return false, nil
	}
	delete(r.data[userID], jobID)
	return true, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]SavedJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]SavedJob, 0, len(r.data[userID]))
	for _, job := range r.data[userID] {
		out = append(out, job)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].JobID < out[j].JobID
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
