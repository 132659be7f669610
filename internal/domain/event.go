package domain

import (
	"context"
	"time"
)

// Event is a church event that visitors can RSVP to.
// swagger:model Event
type Event struct {
	Slug     string    `json:"slug" yaml:"slug"`
	Title    string    `json:"title" yaml:"title"`
	TitleTa  string    `json:"titleTa,omitempty" yaml:"title_ta"`
	Location string    `json:"location,omitempty" yaml:"location"`
	StartsAt time.Time `json:"startsAt" yaml:"starts_at"`
	Capacity *int      `json:"capacity" yaml:"capacity"`
}

// IsPast reports whether the event's calendar date in loc is before now's calendar date in loc.
// An event later today is not past.
func (e *Event) IsPast(now time.Time, loc *time.Location) bool {
	eventDay := e.StartsAt.In(loc).Format(ISODateLayout)
	today := now.In(loc).Format(ISODateLayout)
	return eventDay < today
}

// ServeOpportunity is a ministry team or training a volunteer can sign up for.
type ServeOpportunity struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	TitleTa string `json:"titleTa,omitempty" yaml:"title_ta"`
}

// EventCatalog looks up the statically configured events.
type EventCatalog interface {
	EventBySlug(slug string) (*Event, bool)
	UpcomingEvents(now time.Time) []*Event
}

// ServeCatalog looks up the statically configured serve opportunities and trainings.
type ServeCatalog interface {
	Opportunity(id string) (*ServeOpportunity, bool)
	Training(id string) (*ServeOpportunity, bool)
}

// EventWithAvailability bundles an event with its current seat availability.
type EventWithAvailability struct {
	Event        *Event            `json:"event"`
	Availability *SeatAvailability `json:"availability"`
}

// EventService lists events for the public site.
type EventService interface {
	ListUpcoming(ctx context.Context) ([]*EventWithAvailability, error)
}
