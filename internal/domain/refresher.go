package domain

import (
	"context"
	"sync"

	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

const previousLimit = 50

// Refresher keeps a cached admin snapshot and recomputes it whenever the
// store reports a change or an admin action invalidates it. Each recomputed
// snapshot is emitted on Events for fan-out to connected clients.
type Refresher struct {
	submissions ports.SubmissionRepository
	settings    ports.SettingsRepository
	playback    ports.PlaybackService
	feed        ports.ChangeFeed
	logger      *zap.Logger

	mu       sync.RWMutex
	snapshot models.Snapshot

	events chan models.Snapshot
	kick   chan struct{}
}

func NewRefresher(
	submissions ports.SubmissionRepository,
	settings ports.SettingsRepository,
	playback ports.PlaybackService,
	feed ports.ChangeFeed,
	logger *zap.Logger,
) *Refresher {
	return &Refresher{
		submissions: submissions,
		settings:    settings,
		playback:    playback,
		feed:        feed,
		logger:      logger.Named("Refresher"),
		snapshot:    emptySnapshot(),
		events:      make(chan models.Snapshot, 8),
		kick:        make(chan struct{}, 1),
	}
}

func (r *Refresher) Events() <-chan models.Snapshot {
	return r.events
}

func (r *Refresher) Snapshot() models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Invalidate forces a recompute for changes the feed does not cover
// (settings and sessions carry no notify trigger).
func (r *Refresher) Invalidate() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is canceled.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case table := <-r.feed.Changes():
			r.logger.Debug("store change", zap.String("table", table))
			r.refresh(ctx)
		case <-r.kick:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	snap, err := r.compute(ctx)
	if err != nil {
		// Stale view until the next notification; no retry.
		r.logger.Error("view refresh failed", zap.Error(err))
		return
	}

	r.mu.Lock()
	r.snapshot = *snap
	r.mu.Unlock()

	select {
	case r.events <- *snap:
	default:
		r.logger.Debug("snapshot dropped, no consumer keeping up")
	}
}

func (r *Refresher) compute(ctx context.Context) (*models.Snapshot, error) {
	snap := emptySnapshot()

	open, err := r.settings.PortalOpen(ctx)
	if err != nil {
		return nil, err
	}
	snap.PortalOpen = open

	playing, err := r.playback.Playing(ctx)
	if err != nil {
		return nil, err
	}
	snap.Playing = playing

	sessionID, err := r.settings.ActiveSessionID(ctx)
	if err != nil {
		return nil, err
	}
	if sessionID == nil {
		return &snap, nil
	}
	snap.ActiveSessionID = sessionID

	if snap.Queue, err = r.submissions.ListQueued(ctx, *sessionID); err != nil {
		return nil, err
	}
	if snap.Finalists, err = r.submissions.ListFinalists(ctx, *sessionID); err != nil {
		return nil, err
	}
	if snap.Previous, err = r.submissions.ListDecided(ctx, *sessionID, previousLimit); err != nil {
		return nil, err
	}
	return &snap, nil
}

// emptySnapshot keeps the list fields non-nil so they marshal as [].
func emptySnapshot() models.Snapshot {
	return models.Snapshot{
		Queue:     make([]models.Submission, 0),
		Finalists: make([]models.Submission, 0),
		Previous:  make([]models.Submission, 0),
	}
}
