package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"fleetgate/pkg/sentinel"
)

// PostgresStore persists customer accounts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c Customer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, username, first_name, last_name, password_hash, created_at)
		 VALUES ($1, LOWER($2), $3, $4, $5, $6)`,
		c.ID, c.Username, c.FirstName, c.LastName, c.PasswordHash, c.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (Customer, error) {
	var c Customer
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, first_name, last_name, password_hash, created_at
		 FROM customers WHERE username = LOWER($1)`,
		username,
	).Scan(&c.ID, &c.Username, &c.FirstName, &c.LastName, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, sentinel.ErrNotFound
		}
		return Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE username = LOWER($1))`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return exists, nil
}
