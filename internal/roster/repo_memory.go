package roster

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is the dev fallback used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	marks   map[string]map[string]Mark
	changes map[string][]ChangeEntry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		marks:   make(map[string]map[string]Mark),
		changes: make(map[string][]ChangeEntry),
	}
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Mark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byOp := r.marks[userID]
	out := make([]Mark, 0, len(byOp))
	for _, mark := range byOp {
		out = append(out, mark)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OperatorID < out[j].OperatorID })
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, userID, operatorID string) (Mark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mark, ok := r.marks[userID][operatorID]
	if !ok {
		return Mark{}, ErrNotFound
	}
	return mark, nil
}

func (r *MemoryRepo) Upsert(_ context.Context, mark Mark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byOp, ok := r.marks[mark.UserID]
	if !ok {
		byOp = make(map[string]Mark)
		r.marks[mark.UserID] = byOp
	}
	byOp[mark.OperatorID] = mark
	return nil
}

func (r *MemoryRepo) AppendChanges(_ context.Context, entries []ChangeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		r.changes[entry.UserID] = append(r.changes[entry.UserID], entry)
	}
	return nil
}

func (r *MemoryRepo) ListChanges(_ context.Context, userID string, limit int) ([]ChangeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.changes[userID]
	// Newest first.
	out := make([]ChangeEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
