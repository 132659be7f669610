package jsonfile

import (
	"context"
	"fmt"
	"regexp"

	"praisetabernacle/internal/domain"
)

var kindRegexp = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

type submissionRepository struct {
	db *DB
}

// NewSubmissionRepository stores each kind in submissions/<kind>.json as a JSON array in append order.
func NewSubmissionRepository(db *DB) domain.SubmissionRepository {
	return &submissionRepository{db: db}
}

func submissionFile(kind string) (string, error) {
	if !kindRegexp.MatchString(kind) {
		return "", fmt.Errorf("%w: submission kind %q", domain.ErrInvalidInput, kind)
	}
	return "submissions/" + kind + ".json", nil
}

func (r *submissionRepository) Append(ctx context.Context, sub *domain.Submission) error {
	name, err := submissionFile(sub.Kind)
	if err != nil {
		return err
	}
	unlock := r.db.lock(name)
	defer unlock()

	var all []*domain.Submission
	if _, err := r.db.read(name, &all); err != nil {
		return err
	}
	all = append(all, sub)
	return r.db.write(name, all)
}

func (r *submissionRepository) List(ctx context.Context, kind string) ([]*domain.Submission, error) {
	name, err := submissionFile(kind)
	if err != nil {
		return nil, err
	}
	unlock := r.db.lock(name)
	defer unlock()

	var all []*domain.Submission
	if _, err := r.db.read(name, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = []*domain.Submission{}
	}
	return all, nil
}
