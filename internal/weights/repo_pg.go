package weights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const poolsRowID = "default"

func (r *PGRepo) Get(ctx context.Context) (Pools, error) {
	const query = `
SELECT config
FROM weight_pools
WHERE id = $1
LIMIT 1`
	var raw []byte
	err := r.DB.QueryRowContext(ctx, query, poolsRowID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pools{}, ErrNotFound
		}
		return Pools{}, err
	}
	var pools Pools
	if err := json.Unmarshal(raw, &pools); err != nil {
		return Pools{}, err
	}
	return pools, nil
}

func (r *PGRepo) Save(ctx context.Context, pools Pools) error {
	raw, err := json.Marshal(pools)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO weight_pools (id, config, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET
  config = EXCLUDED.config,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query, poolsRowID, raw)
	return err
}
