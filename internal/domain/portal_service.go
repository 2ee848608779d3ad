package domain

import (
	"context"
	"fmt"

	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

type portalService struct {
	settings ports.SettingsRepository
	audit    ports.AuditRepository
	logger   *zap.Logger
}

func NewPortalService(
	settings ports.SettingsRepository,
	audit ports.AuditRepository,
	logger *zap.Logger,
) ports.PortalService {
	return &portalService{
		settings: settings,
		audit:    audit,
		logger:   logger.Named("Portal"),
	}
}

func (s *portalService) IsOpen(ctx context.Context) (bool, error) {
	return s.settings.PortalOpen(ctx)
}

func (s *portalService) SetOpen(ctx context.Context, open bool) error {
	if err := s.settings.SetPortalOpen(ctx, open); err != nil {
		return fmt.Errorf("set portal flag: %w", err)
	}

	// The audit trail is write-only; a failed entry must not fail the toggle.
	if err := s.audit.Record(ctx, models.ActionTogglePortal, map[string]any{"open": open}); err != nil {
		s.logger.Warn("audit write failed", zap.Error(err))
	}

	s.logger.Info("portal toggled", zap.Bool("open", open))
	return nil
}
