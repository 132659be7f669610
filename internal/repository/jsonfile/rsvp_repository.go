package jsonfile

import (
	"context"
	"time"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/idgen"
)

const rsvpFile = "rsvps.json"

type rsvpRepository struct {
	db  *DB
	now func() time.Time
}

// NewRsvpRepository stores every event's RSVPs in rsvps.json.
func NewRsvpRepository(db *DB) domain.RsvpRepository {
	return &rsvpRepository{db: db, now: time.Now}
}

func (r *rsvpRepository) load() ([]*domain.RsvpRecord, error) {
	var all []*domain.RsvpRecord
	if _, err := r.db.read(rsvpFile, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (r *rsvpRepository) Upsert(ctx context.Context, rec *domain.RsvpRecord) (domain.UpsertKind, error) {
	unlock := r.db.lock(rsvpFile)
	defer unlock()

	all, err := r.load()
	if err != nil {
		return "", err
	}
	email := domain.NormalizeEmail(rec.Email)
	now := r.now().UTC()
	for _, existing := range all {
		if existing.EventSlug == rec.EventSlug && existing.Email == email {
			existing.Name = rec.Name
			existing.Seats = rec.Seats
			existing.UpdatedAt = now
			if err := r.db.write(rsvpFile, all); err != nil {
				return "", err
			}
			*rec = *existing
			return domain.UpsertUpdated, nil
		}
	}

	created := *rec
	created.ID = idgen.RecordID()
	created.Email = email
	created.CreatedAt = now
	created.UpdatedAt = now
	all = append(all, &created)
	if err := r.db.write(rsvpFile, all); err != nil {
		return "", err
	}
	*rec = created
	return domain.UpsertCreated, nil
}

func (r *rsvpRepository) ListByEvent(ctx context.Context, eventSlug string) ([]*domain.RsvpRecord, error) {
	unlock := r.db.lock(rsvpFile)
	defer unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []*domain.RsvpRecord{}
	for _, rec := range all {
		if rec.EventSlug == eventSlug {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *rsvpRepository) ReservedSeats(ctx context.Context, eventSlug string) (int, error) {
	records, err := r.ListByEvent(ctx, eventSlug)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range records {
		total += rec.Seats
	}
	return total, nil
}

func (r *rsvpRepository) Cancel(ctx context.Context, eventSlug, email string) (int, error) {
	unlock := r.db.lock(rsvpFile)
	defer unlock()

	all, err := r.load()
	if err != nil {
		return 0, err
	}
	email = domain.NormalizeEmail(email)
	kept := all[:0]
	removed := 0
	for _, rec := range all {
		if rec.EventSlug == eventSlug && rec.Email == email {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := r.db.write(rsvpFile, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
