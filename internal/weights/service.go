package weights

import (
	"context"
	"errors"
	"fmt"
)

// Service reads and updates the weight pool configuration, falling back to
// the compiled-in defaults when nothing has been saved yet.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Current returns the active configuration. Missing configuration is not an
// error: recommendation requests must always have weights to work with.
func (s *Service) Current(ctx context.Context) (Pools, error) {
	if s == nil || s.Repo == nil {
		return DefaultPools(), nil
	}
	pools, err := s.Repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DefaultPools(), nil
		}
		return Pools{}, err
	}
	return pools, nil
}

// Update validates and persists a new configuration.
func (s *Service) Update(ctx context.Context, pools Pools) error {
	if s == nil || s.Repo == nil {
		return errors.New("weights service not configured")
	}
	if err := validate(pools); err != nil {
		return err
	}
	return s.Repo.Save(ctx, pools)
}

func validate(pools Pools) error {
	named := []struct {
		name string
		pool Pool
	}{
		{"important", pools.Important},
		{"optional", pools.Optional},
		{"good", pools.Good},
	}
	for _, entry := range named {
		if entry.pool.RawScore < 0 {
			return fmt.Errorf("pool %s: rawScore must be non-negative", entry.name)
		}
		for _, code := range entry.pool.Niches {
			if code == "" {
				return fmt.Errorf("pool %s: empty niche code", entry.name)
			}
		}
	}
	if pools.SynergyScaleFactor < 0 {
		return errors.New("synergyScaleFactor must be non-negative")
	}
	return nil
}
