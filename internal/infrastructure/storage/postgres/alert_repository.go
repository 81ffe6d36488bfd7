package postgres

import (
	"context"
	"fmt"

	"healthwatch/internal/domain/alert"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type AlertRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewAlertRepository(pool *pgxpool.Pool, log *slog.Logger) *AlertRepository {
	return &AlertRepository{
		pool: pool,
		log:  log.With("component", "alert_repository"),
	}
}

const (
	alertColumns = `id::text, title, message, severity, location, is_active, created_at`
	insertAlert  = `INSERT INTO alerts (title, message, severity, location, is_active)
		VALUES ($1, $2, $3, $4, $5)`
)

// Create ignores reporterID: alerts are not attributed.
func (r *AlertRepository) Create(ctx context.Context, _ string, in alert.Input) (alert.Alert, error) {
	row := r.pool.QueryRow(ctx, insertAlert+` RETURNING `+alertColumns,
		in.Title, in.Message, in.Severity, in.Location, in.Active())

	a, err := scanAlert(row)
	if err != nil {
		return alert.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	return a, nil
}

// List возвращает только активные объявления, новые сверху.
func (r *AlertRepository) List(ctx context.Context) ([]alert.Alert, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	out := make([]alert.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return out, nil
}

func (r *AlertRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM alerts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}

// InsertMany вставляет все объявления одним батчем в транзакции.
func (r *AlertRepository) InsertMany(ctx context.Context, in []alert.Input) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, a := range in {
		batch.Queue(insertAlert, a.Title, a.Message, a.Severity, a.Location, a.Active())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert alerts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.log.Info("alerts inserted", "count", len(in))
	return nil
}

func scanAlert(row pgx.Row) (alert.Alert, error) {
	var a alert.Alert
	err := row.Scan(&a.ID, &a.Title, &a.Message, &a.Severity, &a.Location, &a.IsActive, &a.CreatedAt)
	return a, err
}
