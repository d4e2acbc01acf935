package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// SubscriberRepository handles digest recipient persistence
type SubscriberRepository struct {
	db *sqlx.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

type subscriberRow struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *subscriberRow) toDomain() domain.Subscriber {
	return domain.Subscriber{ID: r.ID, Email: r.Email, Active: r.Active, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

// Subscribe adds an email to the recipient list. Re-subscribing an
// unsubscribed address reactivates it instead of failing on the unique key.
func (s *SubscriberRepository) Subscribe(ctx context.Context, email string) (domain.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Subscriber{}, fmt.Errorf("empty email")
	}

	err := withRetry(ctx, func() error {
		query := `
			INSERT INTO subscribers (email, active) VALUES (?, 1)
			ON CONFLICT(email) DO UPDATE SET active = 1, updated_at = datetime('now')
		`
		if _, err := s.db.ExecContext(ctx, query, email); err != nil {
			return fmt.Errorf("subscribe %s: %w", email, err)
		}
		return nil
	})
	if err != nil {
		return domain.Subscriber{}, err
	}

	return s.getByEmail(ctx, email)
}

// Unsubscribe deactivates a recipient, keeping the row for auditability
func (s *SubscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	return withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			"UPDATE subscribers SET active = 0, updated_at = datetime('now') WHERE email = ?", email)
		if err != nil {
			return fmt.Errorf("unsubscribe %s: %w", email, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return &criticalError{err: fmt.Errorf("unsubscribe %s: %w", email, ErrNotFound)}
		}
		return nil
	})
}

// ListActive returns emails of active recipients, for digest delivery
func (s *SubscriberRepository) ListActive(ctx context.Context) ([]string, error) {
	var emails []string
	err := s.db.SelectContext(ctx, &emails,
		"SELECT email FROM subscribers WHERE active = 1 ORDER BY email")
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	return emails, nil
}

// List returns all subscribers including inactive ones
func (s *SubscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	var rows []subscriberRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM subscribers ORDER BY email")
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	subs := make([]domain.Subscriber, len(rows))
	for i := range rows {
		subs[i] = rows[i].toDomain()
	}
	return subs, nil
}

// Get returns a single subscriber by email, ErrNotFound when absent
func (s *SubscriberRepository) Get(ctx context.Context, email string) (domain.Subscriber, error) {
	return s.getByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *SubscriberRepository) getByEmail(ctx context.Context, email string) (domain.Subscriber, error) {
	var row subscriberRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM subscribers WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Subscriber{}, fmt.Errorf("subscriber %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("get subscriber: %w", err)
	}
	return row.toDomain(), nil
}
