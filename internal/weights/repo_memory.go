package weights

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	pools *Pools
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Get(ctx context.Context) (Pools, error) {
	if err := ctx.Err(); err != nil {
		return Pools{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pools == nil {
		return Pools{}, ErrNotFound
	}
	return *r.pools, nil
}

func (r *MemoryRepo) Save(ctx context.Context, pools Pools) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := pools
	r.pools = &copied
	return nil
}
