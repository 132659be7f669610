package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praisetabernacle/internal/domain"
)

func newPrayerRepo(t *testing.T) (domain.PrayerWallRepository, *DB) {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	return NewPrayerWallRepository(db), db
}

func addPost(t *testing.T, repo domain.PrayerWallRepository, id string, createdAt time.Time, approved bool) {
	t.Helper()
	p := domain.NewPrayerWallPost("Ruth", "Pray for my family", domain.PostKindRequest, createdAt)
	p.ID = id
	p.Approved = approved
	require.NoError(t, repo.Add(context.Background(), p))
}

func TestPrayerWallRepository_AddAndListApproved(t *testing.T) {
	repo, _ := newPrayerRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	addPost(t, repo, "old", base, false)
	addPost(t, repo, "mid", base.Add(time.Hour), false)
	addPost(t, repo, "new", base.Add(2*time.Hour), false)

	approved, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved, "new posts start unapproved")

	for _, id := range []string{"old", "new"} {
		ok, err := repo.Approve(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := repo.Approve(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	approved, err = repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, "new", approved[0].ID)
	assert.Equal(t, "old", approved[1].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "mid", all[1].ID)
}

func TestPrayerWallRepository_AddGeneratesID(t *testing.T) {
	repo, _ := newPrayerRepo(t)
	p := domain.NewPrayerWallPost("Anonymous", "Healing", domain.PostKindTestimony, time.Now())
	require.NoError(t, repo.Add(context.Background(), p))
	assert.Regexp(t, `^pw_`, p.ID)
	assert.False(t, p.Approved)
	assert.Equal(t, 0, p.PrayedCount)
}

func TestPrayerWallRepository_IncrementPrayed(t *testing.T) {
	repo, _ := newPrayerRepo(t)
	ctx := context.Background()
	addPost(t, repo, "p1", time.Now(), true)

	count, err := repo.IncrementPrayed(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repo.IncrementPrayed(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "increment on a missing id must not create a post")
}

func TestPrayerWallRepository_ConcurrentIncrements(t *testing.T) {
	repo, _ := newPrayerRepo(t)
	ctx := context.Background()
	addPost(t, repo, "p1", time.Now(), true)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementPrayed(ctx, "p1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	posts, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, n, posts[0].PrayedCount)
}

func TestPrayerWallRepository_Delete(t *testing.T) {
	repo, _ := newPrayerRepo(t)
	ctx := context.Background()
	addPost(t, repo, "a", time.Now(), true)
	addPost(t, repo, "b", time.Now(), true)

	ok, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
}

func TestPrayerWallRepository_MigratesV0(t *testing.T) {
	repo, db := newPrayerRepo(t)
	ctx := context.Background()
	v0 := `[
  {"id":"legacy-1","name":"Mary","request":"Exams","createdAt":"2024-01-05T10:00:00Z"},
  {"id":"legacy-2","name":"","request":"Travel","createdAt":1704450000000}
]`
	require.NoError(t, os.WriteFile(filepath.Join(db.Dir(), prayerWallFile), []byte(v0), 0o600))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assert.Equal(t, domain.PostKindRequest, p.Kind)
		assert.Equal(t, 0, p.PrayedCount)
		assert.False(t, p.Approved)
	}
	byID := map[string]*domain.PrayerWallPost{all[0].ID: all[0], all[1].ID: all[1]}
	assert.Equal(t, "Mary", byID["legacy-1"].Name)
	assert.Equal(t, domain.AnonymousName, byID["legacy-2"].Name)
	assert.Equal(t, time.UnixMilli(1704450000000).UTC(), byID["legacy-2"].CreatedAt)

	// The next mutation rewrites the file as the current version.
	ok, err := repo.Approve(ctx, "legacy-1")
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := os.ReadFile(filepath.Join(db.Dir(), prayerWallFile))
	require.NoError(t, err)
	var doc struct {
		Version int              `json:"version"`
		Posts   []map[string]any `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc.Version)
	require.Len(t, doc.Posts, 2)
	assert.Equal(t, "request", doc.Posts[0]["kind"])
	assert.Equal(t, float64(0), doc.Posts[0]["prayedCount"])
	assert.Contains(t, doc.Posts[0], "createdAtIso")
}

func TestPrayerWallRepository_LegacyPostsWithoutIDAreAddressable(t *testing.T) {
	repo, db := newPrayerRepo(t)
	ctx := context.Background()
	v0 := `[
  {"name":"Mary","request":"Exams","createdAt":"2024-01-05T10:00:00Z"},
  {"name":"Mary","request":"Exams","createdAt":"2024-01-05T10:00:00Z"}
]`
	require.NoError(t, os.WriteFile(filepath.Join(db.Dir(), prayerWallFile), []byte(v0), 0o600))

	first, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	second, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, second, 2)

	ids := map[string]bool{}
	for _, p := range first {
		require.NotEmpty(t, p.ID)
		ids[p.ID] = true
	}
	assert.Len(t, ids, 2, "duplicate content must still get distinct ids")
	for _, p := range second {
		assert.True(t, ids[p.ID], "id %q changed between loads", p.ID)
	}

	// An id read before any write can be used to moderate the post.
	target := first[1].ID
	ok, err := repo.Approve(ctx, target)
	require.NoError(t, err)
	require.True(t, ok)

	count, err := repo.IncrementPrayed(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	approved, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, target, approved[0].ID)
}

func TestPrayerWallRepository_MigratesV1(t *testing.T) {
	repo, db := newPrayerRepo(t)
	v1 := `{"version":1,"posts":[{"id":"x","name":"John","request":"Job","createdAtIso":"2025-03-01T09:00:00Z","approved":true}]}`
	require.NoError(t, os.WriteFile(filepath.Join(db.Dir(), prayerWallFile), []byte(v1), 0o600))

	approved, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, domain.PostKindRequest, approved[0].Kind)
	assert.Equal(t, 0, approved[0].PrayedCount)

	count, err := repo.IncrementPrayed(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrayerWallRepository_RejectsFutureVersion(t *testing.T) {
	repo, db := newPrayerRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(db.Dir(), prayerWallFile), []byte(`{"version":9,"posts":[]}`), 0o600))

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
}
