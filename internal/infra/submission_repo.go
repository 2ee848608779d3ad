package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

const submissionColumns = `id, session_id, display_name, track_url, wants_feedback, manual_weight, status, created_at`

type PgSubmissionRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ ports.SubmissionRepository = (*PgSubmissionRepo)(nil)

func NewPgSubmissionRepo(pool *pgxpool.Pool, logger *zap.Logger) ports.SubmissionRepository {
	return &PgSubmissionRepo{
		pool:   pool,
		logger: logger.Named("PgSubmissionRepo"),
	}
}

func (r *PgSubmissionRepo) Insert(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	query := `
		INSERT INTO submissions (session_id, display_name, track_url, wants_feedback, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, manual_weight, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		sub.SessionID, sub.DisplayName, sub.TrackURL, sub.WantsFeedback, sub.Status,
	)
	if err := row.Scan(&sub.ID, &sub.ManualWeight, &sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

func (r *PgSubmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	var s models.Submission
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SessionID, &s.DisplayName, &s.TrackURL,
		&s.WantsFeedback, &s.ManualWeight, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get submission by id: %w", err)
	}
	return &s, nil
}

func (r *PgSubmissionRepo) ListQueued(ctx context.Context, sessionID uuid.UUID) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE session_id = $1 AND status = 'QUEUED'
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, sessionID)
}

func (r *PgSubmissionRepo) ListDecided(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE session_id = $1 AND status IN ('FINALIST', 'DENIED')
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, sessionID, limit)
}

func (r *PgSubmissionRepo) ListFinalists(ctx context.Context, sessionID uuid.UUID) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE session_id = $1 AND status = 'FINALIST'
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, sessionID)
}

func (r *PgSubmissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Debug("submission status updated",
		zap.String("id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}

func (r *PgSubmissionRepo) AdjustWeight(ctx context.Context, id uuid.UUID, delta float64) (float64, error) {
	// Single UPDATE so the read-add-clamp is atomic per row.
	query := `
		UPDATE submissions
		SET manual_weight = GREATEST(0, manual_weight + $1)
		WHERE id = $2
		RETURNING manual_weight
	`
	var weight float64
	err := r.pool.QueryRow(ctx, query, delta, id).Scan(&weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrNotFound
		}
		return 0, fmt.Errorf("adjust submission weight: %w", err)
	}
	return weight, nil
}

func (r *PgSubmissionRepo) list(ctx context.Context, query string, args ...any) ([]models.Submission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.Submission, 0)
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(
			&s.ID, &s.SessionID, &s.DisplayName, &s.TrackURL,
			&s.WantsFeedback, &s.ManualWeight, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
