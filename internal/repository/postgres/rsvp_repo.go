package postgres

import (
	"context"
	"database/sql"
	"time"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/idgen"
)

type rsvpRepository struct {
	DB  *sql.DB
	now func() time.Time
}

func NewRsvpRepository(db *sql.DB) domain.RsvpRepository {
	return &rsvpRepository{
		DB:  db,
		now: time.Now,
	}
}

// Upsert uses xmax = 0 to tell a fresh insert from a conflict update in one round trip.
func (r *rsvpRepository) Upsert(ctx context.Context, rec *domain.RsvpRecord) (domain.UpsertKind, error) {
	query := `
		INSERT INTO rsvps (id, event_slug, name, email, seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (event_slug, email) DO UPDATE
		SET name = EXCLUDED.name, seats = EXCLUDED.seats, updated_at = EXCLUDED.updated_at
		RETURNING id, email, created_at, updated_at, (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.DB.QueryRowContext(ctx, query,
		idgen.RecordID(), rec.EventSlug, rec.Name, domain.NormalizeEmail(rec.Email), rec.Seats, r.now().UTC(),
	).Scan(&rec.ID, &rec.Email, &rec.CreatedAt, &rec.UpdatedAt, &inserted)
	if err != nil {
		return "", err
	}
	if inserted {
		return domain.UpsertCreated, nil
	}
	return domain.UpsertUpdated, nil
}

func (r *rsvpRepository) ListByEvent(ctx context.Context, eventSlug string) ([]*domain.RsvpRecord, error) {
	query := `
		SELECT id, event_slug, name, email, seats, created_at, updated_at
		FROM rsvps
		WHERE event_slug = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.RsvpRecord{}
	for rows.Next() {
		rec := &domain.RsvpRecord{}
		if err := rows.Scan(&rec.ID, &rec.EventSlug, &rec.Name, &rec.Email, &rec.Seats, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *rsvpRepository) ReservedSeats(ctx context.Context, eventSlug string) (int, error) {
	var seats int
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(seats), 0) FROM rsvps WHERE event_slug = $1`, eventSlug).Scan(&seats)
	return seats, err
}

func (r *rsvpRepository) Cancel(ctx context.Context, eventSlug, email string) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rsvps WHERE event_slug = $1 AND email = $2`, eventSlug, domain.NormalizeEmail(email))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
