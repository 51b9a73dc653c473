package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleetgate/pkg/sentinel"
)

// PostgresStore persists subscriptions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, sub Subscription) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, account, email, first_name, remaining_days, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   account = $2, email = $3, first_name = $4, remaining_days = $5, updated_at = $6`,
		sub.ID, sub.Account, sub.Email, sub.FirstName, sub.RemainingDays, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Subscription, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, account, email, first_name, remaining_days, updated_at
		 FROM subscriptions WHERE id = $1`, id))
}

func (s *PostgresStore) GetByAccount(ctx context.Context, account string) (Subscription, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, account, email, first_name, remaining_days, updated_at
		 FROM subscriptions WHERE account = $1`, account))
}

// DecrementAll runs the daily tick in one statement and returns the rows
// that reached zero in this pass.
func (s *PostgresStore) DecrementAll(ctx context.Context) ([]Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`UPDATE subscriptions
		 SET remaining_days = remaining_days - 1, updated_at = NOW()
		 WHERE remaining_days > 0
		 RETURNING id, account, email, first_name, remaining_days, updated_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("decrement subscriptions: %w", err)
	}
	defer rows.Close()

	var lapsed []Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.ID, &sub.Account, &sub.Email, &sub.FirstName, &sub.RemainingDays, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if sub.RemainingDays == 0 {
			lapsed = append(lapsed, sub)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("decrement subscriptions: %w", err)
	}
	return lapsed, nil
}

func (s *PostgresStore) scanOne(row *sql.Row) (Subscription, error) {
	var sub Subscription
	err := row.Scan(&sub.ID, &sub.Account, &sub.Email, &sub.FirstName, &sub.RemainingDays, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, sentinel.ErrNotFound
		}
		return Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}
