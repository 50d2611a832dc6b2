package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/model"
)

// HistoryRepository stores finished encounter outcomes.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new outcome repository
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// NameStats aggregates outcomes of one encounter definition.
type NameStats struct {
	Name         string
	Total        int
	Completed    int
	Failed       int
	Aborted      int
	GuardsKilled int
}

// Insert saves an outcome. A repeated instance id is ignored.
func (r *HistoryRepository) Insert(ctx context.Context, o encounter.Outcome) error {
	var winnerID *int64
	var winnerName *string
	if o.WinnerID != 0 {
		id := int64(o.WinnerID)
		winnerID = &id
		winnerName = &o.WinnerName
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO encounter_outcomes (
			instance_id, name, kind, result, anchor_x, anchor_y, anchor_z,
			winner_id, winner_name, guards_total, guards_killed, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (instance_id) DO NOTHING
	`,
		o.InstanceID, o.Name, o.Kind.String(), string(o.Result),
		o.Anchor.X, o.Anchor.Y, o.Anchor.Z,
		winnerID, winnerName, o.GuardsTotal, o.GuardsKilled, o.StartedAt, o.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting outcome %s: %w", o.InstanceID, err)
	}
	return nil
}

// Recent returns up to limit outcomes, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]encounter.Outcome, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT instance_id, name, kind, result, anchor_x, anchor_y, anchor_z,
		       winner_id, winner_name, guards_total, guards_killed, started_at, ended_at
		FROM encounter_outcomes
		ORDER BY ended_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent outcomes: %w", err)
	}
	defer rows.Close()

	var out []encounter.Outcome
	for rows.Next() {
		var (
			o          encounter.Outcome
			kind       string
			result     string
			x, y, z    float64
			winnerID   *int64
			winnerName *string
		)
		if err := rows.Scan(
			&o.InstanceID, &o.Name, &kind, &result, &x, &y, &z,
			&winnerID, &winnerName, &o.GuardsTotal, &o.GuardsKilled, &o.StartedAt, &o.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		if o.Kind, err = encounter.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("outcome %s: %w", o.InstanceID, err)
		}
		o.Result = encounter.Result(result)
		o.Anchor = model.NewLocation(x, y, z)
		if winnerID != nil {
			o.WinnerID = uint64(*winnerID)
		}
		if winnerName != nil {
			o.WinnerName = *winnerName
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return out, nil
}

// Stats aggregates outcomes per encounter name, ordered by name.
func (r *HistoryRepository) Stats(ctx context.Context) ([]NameStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE result = 'completed'),
		       COUNT(*) FILTER (WHERE result = 'failed'),
		       COUNT(*) FILTER (WHERE result = 'aborted'),
		       COALESCE(SUM(guards_killed), 0)
		FROM encounter_outcomes
		GROUP BY name
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying outcome stats: %w", err)
	}
	defer rows.Close()

	var out []NameStats
	for rows.Next() {
		var s NameStats
		if err := rows.Scan(&s.Name, &s.Total, &s.Completed, &s.Failed, &s.Aborted, &s.GuardsKilled); err != nil {
			return nil, fmt.Errorf("scanning outcome stats: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome stats: %w", err)
	}
	return out, nil
}
