package squads

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ListByIS(ctx context.Context, isID string) ([]Preset, error) {
	const query = `
SELECT squad_id, name, config
FROM squad_presets
WHERE is_id = $1
ORDER BY squad_id`
	rows, err := r.DB.QueryContext(ctx, query, isID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		var squadID, name string
		var raw []byte
		if err := rows.Scan(&squadID, &name, &raw); err != nil {
			return nil, err
		}
		var preset Preset
		if err := json.Unmarshal(raw, &preset); err != nil {
			return nil, err
		}
		preset.ISID = isID
		preset.SquadID = squadID
		preset.Name = name
		presets = append(presets, preset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, ErrNotFound
	}
	return presets, nil
}

func (r *PGRepo) SaveForIS(ctx context.Context, isID string, presets []Preset) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM squad_presets WHERE is_id = $1`, isID); err != nil {
		return err
	}
	const insert = `
INSERT INTO squad_presets (is_id, squad_id, name, config, updated_at)
VALUES ($1, $2, $3, $4, now())`
	for _, preset := range presets {
		var raw []byte
		raw, err = json.Marshal(preset)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, insert, isID, preset.SquadID, preset.Name, raw); err != nil {
			return err
		}
	}
	return tx.Commit()
}
