package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// QuestionLogRepository is the append-only log of assigned question slugs.
//
// Schema:
//
//	CREATE TABLE questions (
//	    id         SERIAL PRIMARY KEY,
//	    slug       TEXT NOT NULL UNIQUE,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type QuestionLogRepository interface {
	Log(ctx context.Context, slug string) (*model.LoggedQuestion, error)
	ListSince(ctx context.Context, since time.Time) ([]model.LoggedQuestion, error)
}

type pgQuestionLogRepository struct {
	db *sql.DB
}

func NewPgQuestionLogRepository(db *sql.DB) QuestionLogRepository {
	return &pgQuestionLogRepository{db: db}
}

func (r *pgQuestionLogRepository) Log(ctx context.Context, slug string) (*model.LoggedQuestion, error) {
	query := `INSERT INTO questions (slug) VALUES ($1) RETURNING id, slug, created_at`

	logged := &model.LoggedQuestion{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&logged.ID, &logged.Slug, &logged.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return nil, fmt.Errorf("question %q already logged: %w", slug, common.ErrConflict)
		}
		return nil, fmt.Errorf("pgQuestionLogRepository.Log: %w", err)
	}
	return logged, nil
}

func (r *pgQuestionLogRepository) ListSince(ctx context.Context, since time.Time) ([]model.LoggedQuestion, error) {
	query := `SELECT id, slug, created_at FROM questions WHERE created_at >= $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionLogRepository.ListSince query: %w", err)
	}
	defer rows.Close()

	questions := []model.LoggedQuestion{}
	for rows.Next() {
		var q model.LoggedQuestion
		if err := rows.Scan(&q.ID, &q.Slug, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgQuestionLogRepository.ListSince scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionLogRepository.ListSince rows.Err: %w", err)
	}

	return questions, nil
}
