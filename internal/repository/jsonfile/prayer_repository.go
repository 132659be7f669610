package jsonfile

import (
	"context"
	"sort"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/idgen"
)

const prayerWallFile = "prayer-wall.json"

type prayerWallRepository struct {
	db *DB
}

// NewPrayerWallRepository stores posts in prayer-wall.json, upgrading older shapes on load.
func NewPrayerWallRepository(db *DB) domain.PrayerWallRepository {
	return &prayerWallRepository{db: db}
}

func (r *prayerWallRepository) load() ([]*domain.PrayerWallPost, error) {
	raw, err := r.db.readRaw(prayerWallFile)
	if err != nil {
		return nil, err
	}
	return decodePrayerWall(raw)
}

func (r *prayerWallRepository) save(posts []*domain.PrayerWallPost) error {
	if posts == nil {
		posts = []*domain.PrayerWallPost{}
	}
	return r.db.write(prayerWallFile, prayerWallDoc{Version: prayerWallVersion, Posts: posts})
}

// mutate loads the posts, applies fn and saves when fn reports a change.
func (r *prayerWallRepository) mutate(fn func(posts []*domain.PrayerWallPost) ([]*domain.PrayerWallPost, bool, error)) error {
	unlock := r.db.lock(prayerWallFile)
	defer unlock()

	posts, err := r.load()
	if err != nil {
		return err
	}
	posts, changed, err := fn(posts)
	if err != nil || !changed {
		return err
	}
	return r.save(posts)
}

func (r *prayerWallRepository) Add(ctx context.Context, post *domain.PrayerWallPost) error {
	if post.ID == "" {
		id, err := idgen.PostID()
		if err != nil {
			return err
		}
		post.ID = id
	}
	return r.mutate(func(posts []*domain.PrayerWallPost) ([]*domain.PrayerWallPost, bool, error) {
		cp := *post
		return append(posts, &cp), true, nil
	})
}

func (r *prayerWallRepository) list(approvedOnly bool) ([]*domain.PrayerWallPost, error) {
	unlock := r.db.lock(prayerWallFile)
	defer unlock()

	posts, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PrayerWallPost, 0, len(posts))
	for _, p := range posts {
		if approvedOnly && !p.Approved {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *prayerWallRepository) ListApproved(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	return r.list(true)
}

func (r *prayerWallRepository) ListAll(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	return r.list(false)
}

func (r *prayerWallRepository) IncrementPrayed(ctx context.Context, id string) (int, error) {
	count := 0
	err := r.mutate(func(posts []*domain.PrayerWallPost) ([]*domain.PrayerWallPost, bool, error) {
		for _, p := range posts {
			if p.ID == id {
				p.PrayedCount++
				count = p.PrayedCount
				return posts, true, nil
			}
		}
		return posts, false, domain.ErrNotFound
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *prayerWallRepository) Approve(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.mutate(func(posts []*domain.PrayerWallPost) ([]*domain.PrayerWallPost, bool, error) {
		for _, p := range posts {
			if p.ID == id {
				found = true
				p.Approved = true
				return posts, true, nil
			}
		}
		return posts, false, nil
	})
	return found, err
}

func (r *prayerWallRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.mutate(func(posts []*domain.PrayerWallPost) ([]*domain.PrayerWallPost, bool, error) {
		for i, p := range posts {
			if p.ID == id {
				found = true
				return append(posts[:i], posts[i+1:]...), true, nil
			}
		}
		return posts, false, nil
	})
	return found, err
}
