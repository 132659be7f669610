package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praisetabernacle/internal/domain"
)

func newSubmission(kind string, i int) *domain.Submission {
	sub := domain.NewSubmission(kind, map[string]any{"name": fmt.Sprintf("visitor-%d", i), "attendees": i},
		domain.RequestMeta{UserAgent: "test", IP: "10.0.0.1"}, time.Date(2026, 2, 1, 10, 0, i, 0, time.UTC))
	sub.ID = fmt.Sprintf("sub-%d", i)
	return sub
}

func TestSubmissionRepository_AppendAndList(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	empty, err := repo.List(ctx, domain.SubmissionBooking)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Append(ctx, newSubmission(domain.SubmissionBooking, 1)))
	require.NoError(t, repo.Append(ctx, newSubmission(domain.SubmissionBooking, 2)))
	require.NoError(t, repo.Append(ctx, newSubmission(domain.SubmissionServe, 3)))

	bookings, err := repo.List(ctx, domain.SubmissionBooking)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "sub-1", bookings[0].ID)
	assert.Equal(t, "sub-2", bookings[1].ID)
	assert.Equal(t, "visitor-2", bookings[1].Fields["name"])
	assert.Equal(t, float64(2), bookings[1].Fields["attendees"])
	assert.Equal(t, "10.0.0.1", bookings[1].IP)

	_, err = os.Stat(filepath.Join(db.Dir(), "submissions", "serve.json"))
	assert.NoError(t, err)
}

func TestSubmissionRepository_InvalidKind(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	repo := NewSubmissionRepository(db)

	for _, kind := range []string{"", "../etc", "Booking", "a/b"} {
		err := repo.Append(context.Background(), newSubmission(kind, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "kind %q", kind)
	}
}

func TestSubmissionRepository_ConcurrentAppends(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Append(ctx, newSubmission(domain.SubmissionBooking, i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.SubmissionBooking)
	require.NoError(t, err)
	require.Len(t, all, n)
	seen := make(map[string]bool, n)
	for _, s := range all {
		assert.False(t, seen[s.ID], "duplicate %s", s.ID)
		seen[s.ID] = true
	}
}

func TestSubmissionRepository_WriteFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	require.NoError(t, err)
	// A regular file where the submissions directory should be makes every write fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "submissions"), []byte("x"), 0o600))

	err = NewSubmissionRepository(db).Append(context.Background(), newSubmission(domain.SubmissionBooking, 1))
	require.Error(t, err)
}
