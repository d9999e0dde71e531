package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civic_pulse/mlservice/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS civic_complaints (
	id               BIGSERIAL PRIMARY KEY,
	area             TEXT    NOT NULL,
	zone             TEXT    NOT NULL,
	year             INTEGER NOT NULL,
	month            INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
	total_complaints INTEGER NOT NULL DEFAULT 0
)`

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LoadComplaintRecords returns the catalog in insertion order, which is the
// order the service treats as load order.
func (s *Store) LoadComplaintRecords(ctx context.Context) ([]models.ComplaintRecord, error) {
	rows, err := s.Pool.Query(ctx, `SELECT area, zone, year, month, total_complaints FROM civic_complaints ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ComplaintRecord
	for rows.Next() {
		var r models.ComplaintRecord
		if err := rows.Scan(&r.Area, &r.Zone, &r.Year, &r.Month, &r.TotalComplaints); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceComplaintRecords swaps the whole catalog table for records.
func (s *Store) ReplaceComplaintRecords(ctx context.Context, records []models.ComplaintRecord) (int64, error) {
	var inserted int64
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE civic_complaints RESTART IDENTITY`); err != nil {
			return err
		}
		rows := make([][]any, 0, len(records))
		for _, r := range records {
			rows = append(rows, []any{r.Area, r.Zone, r.Year, r.Month, r.TotalComplaints})
		}
		n, err := tx.CopyFrom(ctx, pgx.Identifier{"civic_complaints"}, []string{"area", "zone", "year", "month", "total_complaints"}, pgx.CopyFromRows(rows))
		inserted = n
		return err
	})
	return inserted, err
}
