package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// NewsRepository handles news item persistence
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// newsRow is the database representation of a news item
type newsRow struct {
	ID         int64        `db:"id"`
	URL        string       `db:"url"`
	Title      string       `db:"title"`
	Summary    string       `db:"summary"`
	Published  time.Time    `db:"published"`
	EventStart sql.NullTime `db:"event_start"`
	EventEnd   sql.NullTime `db:"event_end"`
	ImageURL   string       `db:"image_url"`
	Category   string       `db:"category"`
	Notified   bool         `db:"notified"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

func (r *newsRow) toDomain() domain.NewsItem {
	return domain.NewsItem{
		ID:         r.ID,
		URL:        r.URL,
		Title:      r.Title,
		Summary:    r.Summary,
		Published:  r.Published,
		EventStart: timePtr(r.EventStart),
		EventEnd:   timePtr(r.EventEnd),
		ImageURL:   r.ImageURL,
		Category:   r.Category,
		Notified:   r.Notified,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// CreateItems inserts news items in one transaction, skipping URLs that
// already exist, and returns only the rows actually inserted, in input
// order with database ids assigned. Reprocessing the same page is a no-op.
func (r *NewsRepository) CreateItems(ctx context.Context, items []domain.NewsItem) ([]domain.NewsItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var inserted []domain.NewsItem
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		query := `
			INSERT INTO news_items (
				url, title, summary, published, event_start, event_end,
				image_url, category, notified
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
			ON CONFLICT(url) DO NOTHING
		`

		inserted = inserted[:0] // reset on retry
		for _, item := range items {
			res, err := tx.ExecContext(ctx, query,
				item.URL, item.Title, item.Summary, item.Published,
				nullTime(item.EventStart), nullTime(item.EventEnd),
				item.ImageURL, item.Category)
			if err != nil {
				return fmt.Errorf("insert news item %q: %w", item.URL, err)
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if affected == 0 {
				continue // already seen
			}

			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("insert id: %w", err)
			}
			item.ID = id
			item.Notified = false
			inserted = append(inserted, item)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// GetUnnotified retrieves all items not yet included in a delivered digest,
// oldest first. This picks up leftovers from runs whose notification failed.
func (r *NewsRepository) GetUnnotified(ctx context.Context) ([]domain.NewsItem, error) {
	var rows []newsRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM news_items WHERE notified = 0 ORDER BY published ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("get unnotified items: %w", err)
	}

	items := make([]domain.NewsItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, nil
}

// MarkNotified flags items as included in a delivered digest.
// Called only after the notifier reports successful delivery.
func (r *NewsRepository) MarkNotified(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	return withRetry(ctx, func() error {
		query, args, err := sqlx.In(
			"UPDATE news_items SET notified = 1, updated_at = datetime('now') WHERE id IN (?)", ids)
		if err != nil {
			return fmt.Errorf("build mark notified query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
			return fmt.Errorf("mark notified: %w", err)
		}
		return nil
	})
}

// ListItems retrieves news items newest first, up to limit starting at offset
func (r *NewsRepository) ListItems(ctx context.Context, limit, offset int) ([]domain.NewsItem, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rows []newsRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM news_items ORDER BY published DESC, id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list news items: %w", err)
	}

	items := make([]domain.NewsItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, nil
}

// GetByURL retrieves a single item by its canonical URL
func (r *NewsRepository) GetByURL(ctx context.Context, url string) (domain.NewsItem, error) {
	var row newsRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM news_items WHERE url = ?", url); err != nil {
		return domain.NewsItem{}, fmt.Errorf("get news item by url: %w", err)
	}
	return row.toDomain(), nil
}
