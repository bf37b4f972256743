package roster

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Mark, error) {
	const query = `
SELECT user_id, operator_id, owned, raised, want_to_use, updated_at
FROM roster_marks
WHERE user_id = $1
ORDER BY operator_id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mark
	for rows.Next() {
		var mark Mark
		if err := rows.Scan(
			&mark.UserID,
			&mark.OperatorID,
			&mark.Owned,
			&mark.Raised,
			&mark.WantToUse,
			&mark.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, mark)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, userID, operatorID string) (Mark, error) {
	const query = `
SELECT user_id, operator_id, owned, raised, want_to_use, updated_at
FROM roster_marks
WHERE user_id = $1 AND operator_id = $2
LIMIT 1`
	var mark Mark
	err := r.DB.QueryRowContext(ctx, query, userID, operatorID).Scan(
		&mark.UserID,
		&mark.OperatorID,
		&mark.Owned,
		&mark.Raised,
		&mark.WantToUse,
		&mark.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Mark{}, ErrNotFound
		}
		return Mark{}, err
	}
	return mark, nil
}

func (r *PGRepo) Upsert(ctx context.Context, mark Mark) error {
	const query = `
INSERT INTO roster_marks (user_id, operator_id, owned, raised, want_to_use, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, operator_id) DO UPDATE SET
  owned = EXCLUDED.owned,
  raised = EXCLUDED.raised,
  want_to_use = EXCLUDED.want_to_use,
  updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		mark.UserID,
		mark.OperatorID,
		mark.Owned,
		mark.Raised,
		mark.WantToUse,
		mark.UpdatedAt,
	)
	return err
}

func (r *PGRepo) AppendChanges(ctx context.Context, entries []ChangeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO roster_changelog (id, user_id, operator_id, field, value, changed_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, entry := range entries {
		if _, err := tx.ExecContext(
			ctx,
			query,
			entry.ID,
			entry.UserID,
			entry.OperatorID,
			entry.Field,
			entry.Value,
			entry.ChangedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PGRepo) ListChanges(ctx context.Context, userID string, limit int) ([]ChangeEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	const query = `
SELECT id, user_id, operator_id, field, value, changed_at
FROM roster_changelog
WHERE user_id = $1
ORDER BY changed_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChangeEntry
	for rows.Next() {
		var entry ChangeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.OperatorID,
			&entry.Field,
			&entry.Value,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
