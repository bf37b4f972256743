package weights

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "weight pools not configured" }

// Repo persists the admin-editable weight pool configuration. A single row
// holds the whole configuration.
type Repo interface {
	Get(ctx context.Context) (Pools, error)
	Save(ctx context.Context, pools Pools) error
}
