package gamedata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"arknights-backend/internal/shared/metrics"
	"arknights-backend/internal/shared/telemetry"
)

// Store loads the static game data from a directory and hands out immutable
// snapshots. The directory holds operators.json plus one niches/<code>.json
// per niche. Reload swaps the snapshot pointer atomically, so concurrent
// readers always see a complete data set.
type Store struct {
	dir      string
	snapshot atomic.Pointer[Snapshot]
	loadedAt atomic.Pointer[time.Time]
}

// NewStore loads the data directory once. The returned store is ready for
// concurrent use.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current immutable data snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// LoadedAt reports when the current snapshot was read from disk.
func (s *Store) LoadedAt() time.Time {
	if t := s.loadedAt.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// Reload re-reads the data directory and publishes a fresh snapshot.
// On failure the previous snapshot stays in place.
func (s *Store) Reload() error {
	operators, err := loadOperators(filepath.Join(s.dir, "operators.json"))
	if err != nil {
		return err
	}
	niches, err := loadNiches(filepath.Join(s.dir, "niches"))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	s.snapshot.Store(NewSnapshot(operators, niches))
	s.loadedAt.Store(&now)

	metrics.IncGameDataReload()
	telemetry.Info("gamedata.loaded", map[string]any{
		"operators": len(operators),
		"niches":    len(niches),
	})
	return nil
}

// Watch reloads the store whenever a file in the data directory changes.
// It blocks until the context is cancelled. Reload failures are logged and
// the previous snapshot stays live.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create data watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	nichesDir := filepath.Join(s.dir, "niches")
	if _, statErr := os.Stat(nichesDir); statErr == nil {
		if err := watcher.Add(nichesDir); err != nil {
			return fmt.Errorf("watch %s: %w", nichesDir, err)
		}
	}

	// Editors fire bursts of events per save; debounce before reloading.
	const debounce = 250 * time.Millisecond
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				pending = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			telemetry.Error("gamedata.watch", map[string]any{"error": err.Error()})
		case <-pending:
			timer = nil
			pending = nil
			if err := s.Reload(); err != nil {
				telemetry.Error("gamedata.reload", map[string]any{"error": err.Error()})
			}
		}
	}
}

func loadOperators(path string) ([]Operator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operators: %w", err)
	}
	var operators []Operator
	if err := json.Unmarshal(data, &operators); err != nil {
		return nil, fmt.Errorf("parse operators: %w", err)
	}
	for i, op := range operators {
		if strings.TrimSpace(op.ID) == "" {
			return nil, fmt.Errorf("operators[%d]: id is required", i)
		}
		if op.Rarity < 1 || op.Rarity > 6 {
			return nil, fmt.Errorf("operator %s: rarity %d out of range", op.ID, op.Rarity)
		}
	}
	return operators, nil
}

func loadNiches(dir string) ([]Niche, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob niches: %w", err)
	}
	niches := make([]Niche, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read niche %s: %w", path, err)
		}
		var file nicheFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse niche %s: %w", path, err)
		}
		code := strings.TrimSuffix(filepath.Base(path), ".json")
		niche, err := file.toNiche(code)
		if err != nil {
			return nil, err
		}
		niches = append(niches, niche)
	}
	return niches, nil
}
