package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
)

type SessionRepository interface {
	Insert(ctx context.Context, name string) (*models.Session, error)
	End(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
}
