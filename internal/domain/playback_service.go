package domain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

// playbackService owns the submission state machine:
//
//	QUEUED -> PLAYING -> {FINALIST, DENIED} -> QUEUED (re-queue)
//
// At most one submission is PLAYING at a time; PickNext re-queues a
// still-playing submission before promoting the next one.
type playbackService struct {
	submissions ports.SubmissionRepository
	nowPlaying  ports.NowPlayingRepository
	settings    ports.SettingsRepository
	audit       ports.AuditRepository
	logger      *zap.Logger
	now         func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

func NewPlaybackService(
	submissions ports.SubmissionRepository,
	nowPlaying ports.NowPlayingRepository,
	settings ports.SettingsRepository,
	audit ports.AuditRepository,
	rng *rand.Rand,
	logger *zap.Logger,
) ports.PlaybackService {
	return &playbackService{
		submissions: submissions,
		nowPlaying:  nowPlaying,
		settings:    settings,
		audit:       audit,
		logger:      logger.Named("Playback"),
		now:         time.Now,
		rng:         rng,
	}
}

func (s *playbackService) PickNext(ctx context.Context) (*models.Submission, error) {
	sessionID, err := s.settings.ActiveSessionID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read active session: %w", err)
	}
	if sessionID == nil {
		return nil, models.ErrNoActiveSession
	}

	// If the admin skips without deciding, the current track goes back to
	// the queue. Keeps PLAYING unique.
	current, _, err := s.playingSubmission(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if err := s.submissions.UpdateStatus(ctx, current.ID, models.StatusQueued); err != nil {
			return nil, fmt.Errorf("requeue current track: %w", err)
		}
	}

	queue, err := s.submissions.ListQueued(ctx, *sessionID)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}

	s.mu.Lock()
	picked := WeightedPick(queue, s.rng)
	s.mu.Unlock()
	if picked == nil {
		return nil, models.ErrQueueEmpty
	}

	if err := s.submissions.UpdateStatus(ctx, picked.ID, models.StatusPlaying); err != nil {
		return nil, fmt.Errorf("mark playing: %w", err)
	}
	if err := s.nowPlaying.Set(ctx, picked.ID, s.now()); err != nil {
		return nil, fmt.Errorf("point now playing: %w", err)
	}
	s.recordAudit(ctx, models.ActionPickNext, picked.ID)

	picked.Status = models.StatusPlaying
	s.logger.Info("picked next track",
		zap.String("submission_id", picked.ID.String()),
		zap.Int("queue_size", len(queue)),
	)
	return picked, nil
}

func (s *playbackService) Accept(ctx context.Context) error {
	return s.decide(ctx, models.StatusFinalist, models.ActionAccept)
}

func (s *playbackService) Deny(ctx context.Context) error {
	return s.decide(ctx, models.StatusDenied, models.ActionDeny)
}

func (s *playbackService) decide(ctx context.Context, status models.SubmissionStatus, action models.AdminActionKind) error {
	sub, _, err := s.playingSubmission(ctx)
	if err != nil {
		return err
	}
	if sub == nil {
		return models.ErrNothingPlaying
	}

	if err := s.submissions.UpdateStatus(ctx, sub.ID, status); err != nil {
		return fmt.Errorf("set status %s: %w", status, err)
	}
	// The now-playing pointer is deliberately left in place; Playing()
	// reports nothing playing because the row is no longer PLAYING, and the
	// next PickNext overwrites the pointer.
	s.recordAudit(ctx, action, sub.ID)

	s.logger.Info("decision recorded",
		zap.String("submission_id", sub.ID.String()),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *playbackService) AdjustWeight(ctx context.Context, id uuid.UUID, delta float64) (float64, error) {
	weight, err := s.submissions.AdjustWeight(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	s.logger.Info("weight adjusted",
		zap.String("submission_id", id.String()),
		zap.Float64("delta", delta),
		zap.Float64("weight", weight),
	)
	return weight, nil
}

// Requeue moves a submission back to QUEUED from any state. Calling it on an
// already queued submission is a harmless no-op.
func (s *playbackService) Requeue(ctx context.Context, id uuid.UUID) error {
	return s.submissions.UpdateStatus(ctx, id, models.StatusQueued)
}

func (s *playbackService) Playing(ctx context.Context) (*models.PlayingView, error) {
	sub, np, err := s.playingSubmission(ctx)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	view := models.PlayingView{Submission: *sub}
	if np.StartedAt != nil {
		view.StartedAt = *np.StartedAt
	}
	return &view, nil
}

// playingSubmission resolves the now-playing pointer. A non-nil pointer whose
// submission is no longer PLAYING (stale after accept/deny) reads as nothing
// playing.
func (s *playbackService) playingSubmission(ctx context.Context) (*models.Submission, *models.NowPlaying, error) {
	np, err := s.nowPlaying.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get now playing: %w", err)
	}
	if np.SubmissionID == nil {
		return nil, np, nil
	}

	sub, err := s.submissions.GetByID(ctx, *np.SubmissionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, np, nil
		}
		return nil, nil, fmt.Errorf("resolve now playing: %w", err)
	}
	if sub.Status != models.StatusPlaying {
		return nil, np, nil
	}
	return sub, np, nil
}

func (s *playbackService) recordAudit(ctx context.Context, action models.AdminActionKind, submissionID uuid.UUID) {
	err := s.audit.Record(ctx, action, map[string]any{"submission_id": submissionID.String()})
	if err != nil {
		s.logger.Warn("audit write failed", zap.Error(err))
	}
}
