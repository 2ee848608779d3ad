package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
)

type SubmissionRepository interface {
	Insert(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)

	// ListQueued returns QUEUED submissions of one session, oldest first.
	// The weighted picker depends on that ordering for its fallback path.
	ListQueued(ctx context.Context, sessionID uuid.UUID) ([]models.Submission, error)
	ListDecided(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.Submission, error)
	ListFinalists(ctx context.Context, sessionID uuid.UUID) ([]models.Submission, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus) error

	// AdjustWeight adds delta to manual_weight, clamped at zero, and returns
	// the resulting weight. Last write wins under concurrent adjustments.
	AdjustWeight(ctx context.Context, id uuid.UUID, delta float64) (float64, error)
}
