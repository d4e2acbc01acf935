package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// VideoRepository handles video item persistence
type VideoRepository struct {
	db *sqlx.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// videoRow is the database representation of a video item
type videoRow struct {
	ID           int64      `db:"id"`
	VideoID      string     `db:"video_id"`
	Title        string     `db:"title"`
	ChannelName  string     `db:"channel_name"`
	ChannelID    string     `db:"channel_id"`
	ThumbnailURL string     `db:"thumbnail_url"`
	Description  string     `db:"description"`
	Published    time.Time  `db:"published"`
	VideoURL     string     `db:"video_url"`
	ViewCount    int        `db:"view_count"`
	Tags         stringList `db:"tags"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (r *videoRow) toDomain() domain.VideoItem {
	return domain.VideoItem{
		ID:           r.ID,
		VideoID:      r.VideoID,
		Title:        r.Title,
		ChannelName:  r.ChannelName,
		ChannelID:    r.ChannelID,
		ThumbnailURL: r.ThumbnailURL,
		Description:  r.Description,
		Published:    r.Published,
		VideoURL:     r.VideoURL,
		ViewCount:    r.ViewCount,
		Tags:         r.Tags,
		CreatedAt:    r.CreatedAt,
	}
}

// CreateVideos inserts video items in one transaction, skipping ids that
// already exist, and returns only the rows actually inserted, in input order.
func (r *VideoRepository) CreateVideos(ctx context.Context, videos []domain.VideoItem) ([]domain.VideoItem, error) {
	if len(videos) == 0 {
		return nil, nil
	}

	var inserted []domain.VideoItem
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		query := `
			INSERT INTO video_items (
				video_id, title, channel_name, channel_id, thumbnail_url,
				description, published, video_url, view_count, tags
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(video_id) DO NOTHING
		`

		inserted = inserted[:0] // reset on retry
		for _, v := range videos {
			res, err := tx.ExecContext(ctx, query,
				v.VideoID, v.Title, v.ChannelName, v.ChannelID, v.ThumbnailURL,
				v.Description, v.Published, v.VideoURL, v.ViewCount, stringList(v.Tags))
			if err != nil {
				return fmt.Errorf("insert video %q: %w", v.VideoID, err)
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
			v.ID = id
			inserted = append(inserted, v)
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

// DeleteOlderThan removes videos published before the cutoff and reports
// how many rows went away
func (r *VideoRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM video_items WHERE published < ?", cutoff)
		if err != nil {
			return fmt.Errorf("delete old videos: %w", err)
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ListVideos retrieves videos newest first, up to limit starting at offset
func (r *VideoRepository) ListVideos(ctx context.Context, limit, offset int) ([]domain.VideoItem, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rows []videoRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM video_items ORDER BY published DESC, id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	videos := make([]domain.VideoItem, len(rows))
	for i := range rows {
		videos[i] = rows[i].toDomain()
	}
	return videos, nil
}
