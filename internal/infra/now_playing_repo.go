package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

// now_playing is a single-row table (id is a bool primary key locked to
// true), so every write is an upsert against the same row.
type PgNowPlayingRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ ports.NowPlayingRepository = (*PgNowPlayingRepo)(nil)

func NewPgNowPlayingRepo(pool *pgxpool.Pool, logger *zap.Logger) ports.NowPlayingRepository {
	return &PgNowPlayingRepo{
		pool:   pool,
		logger: logger.Named("PgNowPlayingRepo"),
	}
}

func (r *PgNowPlayingRepo) Get(ctx context.Context) (*models.NowPlaying, error) {
	var np models.NowPlaying
	err := r.pool.QueryRow(ctx,
		`SELECT submission_id, started_at FROM now_playing WHERE id`,
	).Scan(&np.SubmissionID, &np.StartedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.NowPlaying{}, nil
		}
		return nil, fmt.Errorf("get now playing: %w", err)
	}
	return &np, nil
}

func (r *PgNowPlayingRepo) Set(ctx context.Context, submissionID uuid.UUID, startedAt time.Time) error {
	query := `
		INSERT INTO now_playing (id, submission_id, started_at)
		VALUES (true, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET submission_id = EXCLUDED.submission_id, started_at = EXCLUDED.started_at
	`
	if _, err := r.pool.Exec(ctx, query, submissionID, startedAt); err != nil {
		return fmt.Errorf("set now playing: %w", err)
	}
	r.logger.Debug("now playing set", zap.String("submission_id", submissionID.String()))
	return nil
}

func (r *PgNowPlayingRepo) Clear(ctx context.Context) error {
	query := `
		INSERT INTO now_playing (id, submission_id, started_at)
		VALUES (true, NULL, NULL)
		ON CONFLICT (id) DO UPDATE
		SET submission_id = NULL, started_at = NULL
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear now playing: %w", err)
	}
	return nil
}
