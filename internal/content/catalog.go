// Package content loads the statically configured site content: events, serve
// opportunities, trainings and daily promises.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"praisetabernacle/internal/domain"
)

//go:embed data/*.yaml
var embedded embed.FS

type eventsDoc struct {
	Events []*domain.Event `yaml:"events"`
}

type serveDoc struct {
	Opportunities []*domain.ServeOpportunity `yaml:"opportunities"`
	Trainings     []*domain.ServeOpportunity `yaml:"trainings"`
}

type promisesDoc struct {
	Promises []domain.DailyPromise `yaml:"promises"`
}

// Catalog is an immutable, in-memory view of the content files.
type Catalog struct {
	loc           *time.Location
	events        []*domain.Event
	eventsBySlug  map[string]*domain.Event
	opportunities map[string]*domain.ServeOpportunity
	trainings     map[string]*domain.ServeOpportunity
	promises      []domain.DailyPromise
}

var (
	_ domain.EventCatalog = (*Catalog)(nil)
	_ domain.ServeCatalog = (*Catalog)(nil)
)

// Load reads content from dir, or from the embedded defaults when dir is empty.
// loc is the site time zone used to decide which events are past.
func Load(dir string, loc *time.Location) (*Catalog, error) {
	var fsys fs.FS = embedded
	root := "data"
	if dir != "" {
		fsys = os.DirFS(dir)
		root = "."
	}
	return LoadFS(fsys, root, loc)
}

// LoadFS reads events.yaml, serve.yaml and promises.yaml from root within fsys.
func LoadFS(fsys fs.FS, root string, loc *time.Location) (*Catalog, error) {
	var ev eventsDoc
	if err := decode(fsys, path.Join(root, "events.yaml"), &ev); err != nil {
		return nil, err
	}
	var sv serveDoc
	if err := decode(fsys, path.Join(root, "serve.yaml"), &sv); err != nil {
		return nil, err
	}
	var pr promisesDoc
	if err := decode(fsys, path.Join(root, "promises.yaml"), &pr); err != nil {
		return nil, err
	}

	c := &Catalog{
		loc:           loc,
		eventsBySlug:  make(map[string]*domain.Event, len(ev.Events)),
		opportunities: make(map[string]*domain.ServeOpportunity, len(sv.Opportunities)),
		trainings:     make(map[string]*domain.ServeOpportunity, len(sv.Trainings)),
		promises:      pr.Promises,
	}
	for _, e := range ev.Events {
		if !domain.ValidSlug(e.Slug) {
			return nil, fmt.Errorf("events.yaml: invalid slug %q", e.Slug)
		}
		if _, dup := c.eventsBySlug[e.Slug]; dup {
			return nil, fmt.Errorf("events.yaml: duplicate slug %q", e.Slug)
		}
		if e.Capacity != nil && *e.Capacity < 0 {
			return nil, fmt.Errorf("events.yaml: negative capacity for %q", e.Slug)
		}
		c.eventsBySlug[e.Slug] = e
		c.events = append(c.events, e)
	}
	sort.SliceStable(c.events, func(i, j int) bool { return c.events[i].StartsAt.Before(c.events[j].StartsAt) })
	for _, o := range sv.Opportunities {
		c.opportunities[o.ID] = o
	}
	for _, t := range sv.Trainings {
		c.trainings[t.ID] = t
	}
	return c, nil
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Location returns the site time zone.
func (c *Catalog) Location() *time.Location { return c.loc }

// EventBySlug returns the event with slug.
func (c *Catalog) EventBySlug(slug string) (*domain.Event, bool) {
	e, ok := c.eventsBySlug[slug]
	return e, ok
}

// UpcomingEvents returns events that are not past at now, soonest first.
func (c *Catalog) UpcomingEvents(now time.Time) []*domain.Event {
	out := make([]*domain.Event, 0, len(c.events))
	for _, e := range c.events {
		if !e.IsPast(now, c.loc) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Catalog) Opportunity(id string) (*domain.ServeOpportunity, bool) {
	o, ok := c.opportunities[id]
	return o, ok
}

func (c *Catalog) Training(id string) (*domain.ServeOpportunity, bool) {
	t, ok := c.trainings[id]
	return t, ok
}

// Promises returns the configured daily promises in file order.
func (c *Catalog) Promises() []domain.DailyPromise {
	return c.promises
}
