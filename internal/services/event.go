package services

import (
	"context"
	"time"

	"praisetabernacle/internal/domain"
)

type eventService struct {
	catalog domain.EventCatalog
	rsvps   domain.RsvpRepository
	now     func() time.Time
}

// NewEventService lists catalog events together with live seat counts from rsvps.
func NewEventService(catalog domain.EventCatalog, rsvps domain.RsvpRepository) domain.EventService {
	return &eventService{catalog: catalog, rsvps: rsvps, now: time.Now}
}

func (s *eventService) ListUpcoming(ctx context.Context) ([]*domain.EventWithAvailability, error) {
	upcoming := s.catalog.UpcomingEvents(s.now())
	out := make([]*domain.EventWithAvailability, 0, len(upcoming))
	for _, e := range upcoming {
		reserved, err := s.rsvps.ReservedSeats(ctx, e.Slug)
		if err != nil {
			return nil, err
		}
		av := &domain.SeatAvailability{EventSlug: e.Slug, Capacity: e.Capacity, Reserved: reserved}
		if e.Capacity != nil {
			left := max(*e.Capacity-reserved, 0)
			av.Remaining = &left
		}
		out = append(out, &domain.EventWithAvailability{Event: e, Availability: av})
	}
	return out, nil
}
