package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

const announcementColumns = `id, title, body, start_at, end_at, type, meta, created_at, updated_at`

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO announcements (title, body, start_at, end_at, type, meta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.Title, a.Body, a.StartAt, a.EndAt, a.Type, a.Meta,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// ListActive returns announcements whose visibility window covers now,
// newest start first.
func (r *AnnouncementRepository) ListActive(ctx context.Context) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+announcementColumns+`
		 FROM announcements
		 WHERE start_at <= NOW() AND end_at >= NOW()
		 ORDER BY start_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnouncements(rows)
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int) (*model.Announcement, error) {
	var a model.Announcement
	err := r.pool.QueryRow(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.StartAt, &a.EndAt, &a.Type, &a.Meta, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE announcements
		 SET title = $1, body = $2, start_at = $3, end_at = $4, type = $5, meta = $6, updated_at = NOW()
		 WHERE id = $7`,
		a.Title, a.Body, a.StartAt, a.EndAt, a.Type, a.Meta, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAnnouncements(rows pgx.Rows) ([]model.Announcement, error) {
	var out []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.StartAt, &a.EndAt, &a.Type, &a.Meta, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
