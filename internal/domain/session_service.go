package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

type sessionService struct {
	sessions   ports.SessionRepository
	settings   ports.SettingsRepository
	nowPlaying ports.NowPlayingRepository
	audit      ports.AuditRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewSessionService(
	sessions ports.SessionRepository,
	settings ports.SettingsRepository,
	nowPlaying ports.NowPlayingRepository,
	audit ports.AuditRepository,
	logger *zap.Logger,
) ports.SessionService {
	return &sessionService{
		sessions:   sessions,
		settings:   settings,
		nowPlaying: nowPlaying,
		audit:      audit,
		logger:     logger.Named("Session"),
		now:        time.Now,
	}
}

func (s *sessionService) ActiveSessionID(ctx context.Context) (*uuid.UUID, error) {
	return s.settings.ActiveSessionID(ctx)
}

// StartNewSession inserts the new session before touching anything else, so
// a failed insert leaves the previous session fully intact. The remaining
// steps (end old, repoint settings, clear now-playing) run in order; the
// store offers no cross-table transaction, so a crash mid-sequence can leave
// the tail steps unapplied.
func (s *sessionService) StartNewSession(ctx context.Context, name string) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		name = "Session " + s.now().Format("2006-01-02")
	}

	prevID, err := s.settings.ActiveSessionID(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("read active session: %w", err)
	}

	created, err := s.sessions.Insert(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", models.ErrSessionCreate, err)
	}

	if prevID != nil {
		if err := s.sessions.End(ctx, *prevID, s.now()); err != nil {
			// The old session stays unarchived but the rollover proceeds:
			// activation below is what actually hides it.
			s.logger.Error("failed to end previous session",
				zap.String("session_id", prevID.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.settings.SetActiveSessionID(ctx, created.ID); err != nil {
		return uuid.Nil, fmt.Errorf("activate session: %w", err)
	}

	if err := s.nowPlaying.Clear(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("clear now playing: %w", err)
	}

	if err := s.audit.Record(ctx, models.ActionNewSession, map[string]any{"session_id": created.ID.String()}); err != nil {
		s.logger.Warn("audit write failed", zap.Error(err))
	}

	s.logger.Info("new session started",
		zap.String("session_id", created.ID.String()),
		zap.String("name", name),
	)
	return created.ID, nil
}
