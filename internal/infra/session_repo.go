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

type PgSessionRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ ports.SessionRepository = (*PgSessionRepo)(nil)

func NewPgSessionRepo(pool *pgxpool.Pool, logger *zap.Logger) ports.SessionRepository {
	return &PgSessionRepo{
		pool:   pool,
		logger: logger.Named("PgSessionRepo"),
	}
}

func (r *PgSessionRepo) Insert(ctx context.Context, name string) (*models.Session, error) {
	query := `
		INSERT INTO sessions (name)
		VALUES ($1)
		RETURNING id, created_at
	`
	s := models.Session{Name: name}
	if err := r.pool.QueryRow(ctx, query, name).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	r.logger.Info("session created", zap.String("id", s.ID.String()), zap.String("name", name))
	return &s, nil
}

func (r *PgSessionRepo) End(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sessions SET ended_at = $1 WHERE id = $2`,
		endedAt, id,
	)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PgSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := `SELECT id, name, created_at, ended_at FROM sessions WHERE id = $1`

	var s models.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}
	return &s, nil
}
