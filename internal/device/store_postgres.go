package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleetgate/pkg/sentinel"
)

// PostgresStore persists the device directory in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, imei string) (Device, error) {
	var dev Device
	err := s.db.QueryRowContext(ctx,
		`SELECT imei, model, assigned, imported_at FROM devices WHERE imei = $1`,
		imei,
	).Scan(&dev.IMEI, &dev.Model, &dev.Assigned, &dev.ImportedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Device{}, sentinel.ErrNotFound
		}
		return Device{}, fmt.Errorf("get device: %w", err)
	}
	return dev, nil
}

func (s *PostgresStore) Find(ctx context.Context, imei string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM devices WHERE imei = $1)`,
		imei,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("find device: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Save(ctx context.Context, dev Device) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO devices (imei, model, assigned, imported_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (imei) DO UPDATE SET model = $2, assigned = $3`,
		dev.IMEI, dev.Model, dev.Assigned, dev.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("save device: %w", err)
	}
	return nil
}

func (s *PostgresStore) MarkAssigned(ctx context.Context, imei string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE devices SET assigned = TRUE WHERE imei = $1`,
		imei,
	)
	if err != nil {
		return fmt.Errorf("mark device assigned: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark device assigned: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
