package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"praisetabernacle/internal/domain"
)

type submissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &submissionRepository{
		DB: db,
	}
}

func (r *submissionRepository) Append(ctx context.Context, sub *domain.Submission) error {
	data, err := json.Marshal(sub.Fields)
	if err != nil {
		return fmt.Errorf("encode submission fields: %w", err)
	}
	query := `
		INSERT INTO submissions (id, kind, data, user_agent, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.DB.ExecContext(ctx, query, sub.ID, sub.Kind, data, sub.UserAgent, sub.IP, sub.CreatedAt)
	return err
}

func (r *submissionRepository) List(ctx context.Context, kind string) ([]*domain.Submission, error) {
	query := `
		SELECT id, kind, data, user_agent, ip, created_at
		FROM submissions
		WHERE kind = $1
		ORDER BY seq ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*domain.Submission{}
	for rows.Next() {
		sub := &domain.Submission{}
		var data []byte
		if err := rows.Scan(&sub.ID, &sub.Kind, &data, &sub.UserAgent, &sub.IP, &sub.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &sub.Fields); err != nil {
			return nil, fmt.Errorf("decode submission %s: %w", sub.ID, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}
