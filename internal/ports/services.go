package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
)

type PortalService interface {
	IsOpen(ctx context.Context) (bool, error)
	SetOpen(ctx context.Context, open bool) error
}

type SessionService interface {
	ActiveSessionID(ctx context.Context) (*uuid.UUID, error)

	// StartNewSession creates and activates a fresh session, ending the
	// previous one and clearing the now-playing pointer. If the insert
	// fails nothing else runs and the previous session stays active.
	StartNewSession(ctx context.Context, name string) (uuid.UUID, error)
}

type NewSubmission struct {
	DisplayName   string `json:"display_name"`
	TrackURL      string `json:"track_url"`
	WantsFeedback bool   `json:"wants_feedback"`
}

type IntakeService interface {
	Submit(ctx context.Context, in NewSubmission) (*models.Submission, error)
}

type PlaybackService interface {
	PickNext(ctx context.Context) (*models.Submission, error)
	Accept(ctx context.Context) error
	Deny(ctx context.Context) error
	AdjustWeight(ctx context.Context, id uuid.UUID, delta float64) (float64, error)
	Requeue(ctx context.Context, id uuid.UUID) error

	// Playing resolves the now-playing pointer; nil unless the referenced
	// submission is still in status PLAYING.
	Playing(ctx context.Context) (*models.PlayingView, error)
}
