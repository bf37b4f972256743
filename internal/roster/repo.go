package roster

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "roster mark not found" }

// Repo persists per-user roster marks and their changelog.
type Repo interface {
	ListByUser(ctx context.Context, userID string) ([]Mark, error)
	Get(ctx context.Context, userID, operatorID string) (Mark, error)
	Upsert(ctx context.Context, mark Mark) error
	AppendChanges(ctx context.Context, entries []ChangeEntry) error
	ListChanges(ctx context.Context, userID string, limit int) ([]ChangeEntry, error)
}
