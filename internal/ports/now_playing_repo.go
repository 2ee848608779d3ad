package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
)

type NowPlayingRepository interface {
	// Get never returns ErrNotFound; a missing row reads as an empty pointer.
	Get(ctx context.Context) (*models.NowPlaying, error)
	Set(ctx context.Context, submissionID uuid.UUID, startedAt time.Time) error
	Clear(ctx context.Context) error
}
