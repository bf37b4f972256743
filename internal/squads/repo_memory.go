package squads

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	presets map[string][]Preset
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{presets: make(map[string][]Preset)}
}

func (r *MemoryRepo) ListByIS(ctx context.Context, isID string) ([]Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	presets, ok := r.presets[isID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out, nil
}

func (r *MemoryRepo) SaveForIS(ctx context.Context, isID string, presets []Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]Preset, len(presets))
	copy(copied, presets)
	r.presets[isID] = copied
	return nil
}
