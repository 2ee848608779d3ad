package infra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

type PgAuditRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ ports.AuditRepository = (*PgAuditRepo)(nil)

func NewPgAuditRepo(pool *pgxpool.Pool, logger *zap.Logger) ports.AuditRepository {
	return &PgAuditRepo{
		pool:   pool,
		logger: logger.Named("PgAuditRepo"),
	}
}

func (r *PgAuditRepo) Record(ctx context.Context, action models.AdminActionKind, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO admin_actions (action, payload) VALUES ($1, $2)`,
		string(action), body,
	)
	if err != nil {
		return fmt.Errorf("record admin action: %w", err)
	}
	r.logger.Debug("admin action recorded", zap.String("action", string(action)))
	return nil
}
