package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

// Settings live as jsonb values under fixed keys: 'portal' -> {"open": bool}
// and 'session' -> {"active_session_id": "<uuid>"}.
type PgSettingsRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ ports.SettingsRepository = (*PgSettingsRepo)(nil)

func NewPgSettingsRepo(pool *pgxpool.Pool, logger *zap.Logger) ports.SettingsRepository {
	return &PgSettingsRepo{
		pool:   pool,
		logger: logger.Named("PgSettingsRepo"),
	}
}

func (r *PgSettingsRepo) PortalOpen(ctx context.Context) (bool, error) {
	var open bool
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE((value->>'open')::boolean, false) FROM settings WHERE key = 'portal'`,
	).Scan(&open)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("read portal flag: %w", err)
	}
	return open, nil
}

func (r *PgSettingsRepo) SetPortalOpen(ctx context.Context, open bool) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ('portal', jsonb_build_object('open', $1::boolean))
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.pool.Exec(ctx, query, open); err != nil {
		return fmt.Errorf("write portal flag: %w", err)
	}
	return nil
}

func (r *PgSettingsRepo) ActiveSessionID(ctx context.Context) (*uuid.UUID, error) {
	var raw *string
	err := r.pool.QueryRow(ctx,
		`SELECT value->>'active_session_id' FROM settings WHERE key = 'session'`,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read active session: %w", err)
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("parse active session id %q: %w", *raw, err)
	}
	return &id, nil
}

func (r *PgSettingsRepo) SetActiveSessionID(ctx context.Context, id uuid.UUID) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ('session', jsonb_build_object('active_session_id', $1::text))
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.pool.Exec(ctx, query, id.String()); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	r.logger.Debug("active session repointed", zap.String("session_id", id.String()))
	return nil
}
