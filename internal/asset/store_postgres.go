package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fleetgate/pkg/sentinel"
)

// PostgresStore persists assets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, a Asset) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (id, name, vin, imei, account, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.VIN, a.IMEI, a.Account, a.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Asset, error) {
	var a Asset
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, vin, imei, account, created_at FROM assets WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Name, &a.VIN, &a.IMEI, &a.Account, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Asset{}, sentinel.ErrNotFound
		}
		return Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) Rename(ctx context.Context, id uuid.UUID, name string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE assets SET name = $2 WHERE id = $1`,
		id, name,
	)
	if err != nil {
		return fmt.Errorf("rename asset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename asset: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByAccount(ctx context.Context, account string) ([]Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, vin, imei, account, created_at
		 FROM assets WHERE account = $1 ORDER BY created_at`,
		account,
	)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.VIN, &a.IMEI, &a.Account, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return out, nil
}
