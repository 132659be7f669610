package services

import (
	"context"
	"time"

	"praisetabernacle/internal/content"
	"praisetabernacle/internal/domain"
)

type promiseService struct {
	promises []domain.DailyPromise
	loc      *time.Location
	now      func() time.Time
}

// NewPromiseService rotates through promises by day of year in loc.
func NewPromiseService(promises []domain.DailyPromise, loc *time.Location) domain.PromiseService {
	return &promiseService{promises: promises, loc: loc, now: time.Now}
}

func (s *promiseService) ForDate(ctx context.Context, isoDate string) (domain.DailyPromiseResult, error) {
	t := s.now()
	if isoDate != "" {
		d, err := time.ParseInLocation(domain.ISODateLayout, isoDate, s.loc)
		if err != nil {
			return domain.DailyPromiseResult{}, domain.Invalid("invalid_date")
		}
		// Noon avoids any ambiguity around midnight transitions.
		t = d.Add(12 * time.Hour)
	}
	return content.DailyPromiseIn(t, s.loc, s.promises), nil
}
