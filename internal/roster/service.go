package roster

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"arknights-backend/internal/shared/telemetry"
)

// ErrUnknownOperator is returned when a mark targets an operator id the
// game data does not know.
var ErrUnknownOperator = errors.New("unknown operator id")

type Service struct {
	Repo Repo
	// KnownOperator reports whether an operator id exists in the game
	// data. When nil every id is accepted.
	KnownOperator func(id string) bool
	now           func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// List returns every mark the user has set.
func (s *Service) List(ctx context.Context, userID string) ([]Mark, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Set applies a partial update to one operator's mark. Marking an operator
// raised also marks it owned; a raised operator cannot stay owned=false.
// Every flag that actually flips gets a changelog entry.
func (s *Service) Set(ctx context.Context, userID, operatorID string, upd MarkUpdate) (Mark, error) {
	if operatorID == "" {
		return Mark{}, errors.New("operatorId is required")
	}
	if s.KnownOperator != nil && !s.KnownOperator(operatorID) {
		return Mark{}, ErrUnknownOperator
	}

	mark, err := s.Repo.Get(ctx, userID, operatorID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Mark{}, err
		}
		mark = Mark{UserID: userID, OperatorID: operatorID}
	}

	now := s.now().UTC()
	var changes []ChangeEntry
	record := func(field string, value bool) {
		changes = append(changes, ChangeEntry{
			ID:         uuid.NewString(),
			UserID:     userID,
			OperatorID: operatorID,
			Field:      field,
			Value:      value,
			ChangedAt:  now,
		})
	}

	if upd.Owned != nil && *upd.Owned != mark.Owned {
		mark.Owned = *upd.Owned
		record(FieldOwned, mark.Owned)
	}
	if upd.Raised != nil && *upd.Raised != mark.Raised {
		mark.Raised = *upd.Raised
		record(FieldRaised, mark.Raised)
	}
	if mark.Raised && !mark.Owned {
		mark.Owned = true
		record(FieldOwned, true)
	}
	if upd.WantToUse != nil && *upd.WantToUse != mark.WantToUse {
		mark.WantToUse = *upd.WantToUse
		record(FieldWantToUse, mark.WantToUse)
	}

	if len(changes) == 0 {
		return mark, nil
	}

	mark.UpdatedAt = now
	if err := s.Repo.Upsert(ctx, mark); err != nil {
		return Mark{}, err
	}
	if err := s.Repo.AppendChanges(ctx, changes); err != nil {
		return Mark{}, err
	}
	return mark, nil
}

// Import marks every listed operator as owned and returns how many marks
// actually changed. Ids the user already owns and ids missing from the
// game data are skipped.
func (s *Service) Import(ctx context.Context, userID string, operatorIDs []string) (int, error) {
	owned := true
	changed := 0
	seen := make(map[string]struct{}, len(operatorIDs))
	for _, id := range operatorIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s.KnownOperator != nil && !s.KnownOperator(id) {
			telemetry.Info("roster.import_skip_unknown", map[string]any{
				"operator_id": id,
			})
			continue
		}
		before, err := s.Repo.Get(ctx, userID, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return changed, err
		}
		if before.Owned {
			continue
		}
		if _, err := s.Set(ctx, userID, id, MarkUpdate{Owned: &owned}); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// Changelog returns the newest entries first.
func (s *Service) Changelog(ctx context.Context, userID string, limit int) ([]ChangeEntry, error) {
	return s.Repo.ListChanges(ctx, userID, limit)
}

// OwnedOperatorIDs feeds the team builder and squad recommender.
func (s *Service) OwnedOperatorIDs(ctx context.Context, userID string) ([]string, error) {
	return s.idsWhere(ctx, userID, func(m Mark) bool { return m.Owned })
}

// RaisedOperatorIDs feeds the next-operator advisor.
func (s *Service) RaisedOperatorIDs(ctx context.Context, userID string) ([]string, error) {
	return s.idsWhere(ctx, userID, func(m Mark) bool { return m.Raised })
}

// WantToUseOperatorIDs feeds the team builder's preference bonus.
func (s *Service) WantToUseOperatorIDs(ctx context.Context, userID string) ([]string, error) {
	return s.idsWhere(ctx, userID, func(m Mark) bool { return m.WantToUse })
}

func (s *Service) idsWhere(ctx context.Context, userID string, keep func(Mark) bool) ([]string, error) {
	marks, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, mark := range marks {
		if keep(mark) {
			ids = append(ids, mark.OperatorID)
		}
	}
	return ids, nil
}
