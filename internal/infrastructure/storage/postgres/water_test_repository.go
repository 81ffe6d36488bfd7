package postgres

import (
	"context"
	"fmt"

	"healthwatch/internal/domain/watertest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type WaterTestRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewWaterTestRepository(pool *pgxpool.Pool, log *slog.Logger) *WaterTestRepository {
	return &WaterTestRepository{
		pool: pool,
		log:  log.With("component", "water_test_repository"),
	}
}

const waterTestColumns = `w.id::text, w.location, w.turbidity, w.ph, w.temperature,
	w.bacterial_test, w.notes, w.created_at, ` + reporterColumns

func (r *WaterTestRepository) Create(ctx context.Context, reporterID string, in watertest.Input) (watertest.Test, error) {
	const query = `
		WITH w AS (
			INSERT INTO water_tests
				(location, turbidity, ph, temperature, bacterial_test, notes, reported_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7::uuid)
			RETURNING *
		)
		SELECT ` + waterTestColumns + `
		FROM w LEFT JOIN users u ON u.id = w.reported_by`

	row := r.pool.QueryRow(ctx, query,
		in.Location, in.Turbidity, in.PH, in.Temperature, in.BacterialTest, in.Notes, reporterID)

	wt, err := scanWaterTest(row)
	if err != nil {
		r.log.Debug("failed to insert water test", "reporter_id", reporterID, "error", err)
		return watertest.Test{}, insertErr("water test", err)
	}
	return wt, nil
}

func (r *WaterTestRepository) List(ctx context.Context) ([]watertest.Test, error) {
	const query = `
		SELECT ` + waterTestColumns + `
		FROM water_tests w LEFT JOIN users u ON u.id = w.reported_by
		ORDER BY w.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list water tests: %w", err)
	}
	defer rows.Close()

	out := make([]watertest.Test, 0)
	for rows.Next() {
		wt, err := scanWaterTest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water tests: %w", err)
	}
	return out, nil
}

func scanWaterTest(row pgx.Row) (watertest.Test, error) {
	var (
		wt watertest.Test
		by reporter
	)
	dest := append([]any{
		&wt.ID, &wt.Location, &wt.Turbidity, &wt.PH, &wt.Temperature,
		&wt.BacterialTest, &wt.Notes, &wt.CreatedAt,
	}, by.dest()...)

	if err := row.Scan(dest...); err != nil {
		return watertest.Test{}, err
	}
	wt.ReportedBy = by.public()
	return wt, nil
}
