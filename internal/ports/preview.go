package ports

import (
	"context"

	"github.com/uxmedia/demoportal/internal/models"
)

type PreviewService interface {
	Preview(ctx context.Context, trackURL string) (*models.TrackPreview, error)
}
