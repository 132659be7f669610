package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praisetabernacle/internal/domain"
)

func TestRsvpRepository_Upsert(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		inserted bool
		want     domain.UpsertKind
	}{
		{"created", true, domain.UpsertCreated},
		{"updated", false, domain.UpsertUpdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := &rsvpRepository{DB: db, now: func() time.Time { return now }}
			mock.ExpectQuery(`INSERT INTO rsvps .* ON CONFLICT \(event_slug, email\) DO UPDATE`).
				WithArgs(sqlmock.AnyArg(), "youth-camp", "Anna", "anna@example.com", 3, now).
				WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at", "updated_at", "inserted"}).
					AddRow("rsvp-1", "anna@example.com", now.Add(-time.Hour), now, tt.inserted))

			rec := domain.NewRsvpRecord("youth-camp", "Anna", "Anna@Example.com", 3, now)
			kind, err := repo.Upsert(context.Background(), rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, "rsvp-1", rec.ID)
			assert.Equal(t, now.Add(-time.Hour), rec.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRsvpRepository_ListAndReserved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRsvpRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, event_slug, name, email, seats, created_at, updated_at\s+FROM rsvps`).
		WithArgs("carols").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_slug", "name", "email", "seats", "created_at", "updated_at"}).
			AddRow("r1", "carols", "A", "a@example.com", 2, now, now).
			AddRow("r2", "carols", "B", "b@example.com", 5, now, now))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(seats\), 0\) FROM rsvps WHERE event_slug = \$1`).
		WithArgs("carols").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	records, err := repo.ListByEvent(ctx, "carols")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 5, records[1].Seats)

	seats, err := repo.ReservedSeats(ctx, "carols")
	require.NoError(t, err)
	assert.Equal(t, 7, seats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRsvpRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM rsvps WHERE event_slug = \$1 AND email = \$2`).
		WithArgs("carols", "a@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := NewRsvpRepository(db).Cancel(context.Background(), "carols", " A@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
