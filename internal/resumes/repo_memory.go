package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Resume // ownerID -> resumeID -> resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]map[string]Resume)}
}

// Create stores a new resume.
func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	owned, ok := r.data[res.OwnerID]
	if !ok {
		owned = make(map[string]Resume)
		r.data[res.OwnerID] = owned
	}
	owned[res.ID] = res.Clone()
	return nil
}

// Get returns a copy of one resume.
func (r *MemoryRepo) Get(ctx context.Context, ownerID, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.data[ownerID][id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return res.Clone(), nil
}

// List returns the owner's resumes, most recently updated first.
func (r *MemoryRepo) List(ctx context.Context, ownerID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Resume, 0, len(r.data[ownerID]))
	for _, res := range r.data[ownerID] {
		out = append(out, res.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Update runs fn against a copy under the write lock and swaps it in.
func (r *MemoryRepo) Update(ctx context.Context, ownerID, id string, fn func(*Resume) error) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.data[ownerID][id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return Resume{}, err
	}
	next.ID = current.ID
	next.OwnerID = current.OwnerID
	r.data[ownerID][id] = next
	return next.Clone(), nil
}

// Delete removes a resume.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[ownerID][id]; !ok {
		return ErrNotFound
	}
	delete(r.data[ownerID], id)
	return nil
}
