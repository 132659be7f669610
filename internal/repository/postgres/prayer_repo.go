package postgres

import (
	"context"
	"database/sql"
	"errors"

	"praisetabernacle/internal/domain"
)

type prayerWallRepository struct {
	DB *sql.DB
}

func NewPrayerWallRepository(db *sql.DB) domain.PrayerWallRepository {
	return &prayerWallRepository{
		DB: db,
	}
}

const prayerColumns = `id, name, request, kind, approved, prayed_count, created_at`

func (r *prayerWallRepository) Add(ctx context.Context, post *domain.PrayerWallPost) error {
	query := `
		INSERT INTO prayer_wall_posts (id, name, request, kind, approved, prayed_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, post.ID, post.Name, post.Request, string(post.Kind), post.Approved, post.PrayedCount, post.CreatedAt)
	return err
}

func (r *prayerWallRepository) ListApproved(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	query := `SELECT ` + prayerColumns + ` FROM prayer_wall_posts WHERE approved = TRUE ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *prayerWallRepository) ListAll(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	query := `SELECT ` + prayerColumns + ` FROM prayer_wall_posts ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *prayerWallRepository) list(ctx context.Context, query string) ([]*domain.PrayerWallPost, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*domain.PrayerWallPost{}
	for rows.Next() {
		p := &domain.PrayerWallPost{}
		var kind string
		if err := rows.Scan(&p.ID, &p.Name, &p.Request, &kind, &p.Approved, &p.PrayedCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Kind = domain.PostKind(kind)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementPrayed relies on the row lock taken by UPDATE, so concurrent presses never lose a count.
func (r *prayerWallRepository) IncrementPrayed(ctx context.Context, id string) (int, error) {
	query := `UPDATE prayer_wall_posts SET prayed_count = prayed_count + 1 WHERE id = $1 RETURNING prayed_count`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

func (r *prayerWallRepository) Approve(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, `UPDATE prayer_wall_posts SET approved = TRUE WHERE id = $1`, id)
}

func (r *prayerWallRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, `DELETE FROM prayer_wall_posts WHERE id = $1`, id)
}

func (r *prayerWallRepository) exec(ctx context.Context, query, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
