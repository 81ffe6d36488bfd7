package postgres

import (
	"context"
	"fmt"

	"healthwatch/internal/domain/casereport"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type CaseRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCaseRepository(pool *pgxpool.Pool, log *slog.Logger) *CaseRepository {
	return &CaseRepository{
		pool: pool,
		log:  log.With("component", "case_repository"),
	}
}

const caseColumns = `c.id::text, c.patient_name, c.age, c.gender, c.symptoms, c.water_source,
	c.location, c.notes, c.image_url, c.created_at, ` + reporterColumns

func (r *CaseRepository) Create(ctx context.Context, reporterID string, in casereport.Input) (casereport.Report, error) {
	const query = `
		WITH c AS (
			INSERT INTO case_reports
				(patient_name, age, gender, symptoms, water_source, location, notes, image_url, reported_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::uuid)
			RETURNING *
		)
		SELECT ` + caseColumns + `
		FROM c LEFT JOIN users u ON u.id = c.reported_by`

	row := r.pool.QueryRow(ctx, query,
		in.PatientName, in.Age, in.Gender, in.Symptoms, in.WaterSource,
		in.Location, in.Notes, in.ImageURL, reporterID)

	rep, err := scanCase(row)
	if err != nil {
		r.log.Debug("failed to insert case report", "reporter_id", reporterID, "error", err)
		return casereport.Report{}, insertErr("case report", err)
	}
	return rep, nil
}

func (r *CaseRepository) List(ctx context.Context) ([]casereport.Report, error) {
	const query = `
		SELECT ` + caseColumns + `
		FROM case_reports c LEFT JOIN users u ON u.id = c.reported_by
		ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list case reports: %w", err)
	}
	defer rows.Close()

	out := make([]casereport.Report, 0)
	for rows.Next() {
		rep, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case reports: %w", err)
	}
	return out, nil
}

func scanCase(row pgx.Row) (casereport.Report, error) {
	var (
		rep casereport.Report
		by  reporter
	)
	dest := append([]any{
		&rep.ID, &rep.PatientName, &rep.Age, &rep.Gender, &rep.Symptoms, &rep.WaterSource,
		&rep.Location, &rep.Notes, &rep.ImageURL, &rep.CreatedAt,
	}, by.dest()...)

	if err := row.Scan(dest...); err != nil {
		return casereport.Report{}, err
	}
	rep.ReportedBy = by.public()
	return rep, nil
}
