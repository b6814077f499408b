package crops

import "sync"

// MemoryRepo holds open crop sessions.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]*record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]*record)}
}

func (r *MemoryRepo) put(rec *record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
}

// get returns the owner's record. Other owners' sessions are reported missing.
func (r *MemoryRepo) get(ownerID, id string) (*record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return rec, nil
}

// take removes and returns the record, so exactly one caller wins a discard.
func (r *MemoryRepo) take(id string) (*record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if ok {
		delete(r.data, id)
	}
	return rec, ok
}

// all snapshots the open records. Callers lock each record themselves, never
// while holding the repo lock.
func (r *MemoryRepo) all() []*record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*record, 0, len(r.data))
	for _, rec := range r.data {
		out = append(out, rec)
	}
	return out
}

// Len reports the number of open sessions.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
