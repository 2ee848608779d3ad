package ports

import (
	"context"

	"github.com/uxmedia/demoportal/internal/models"
)

type AuditRepository interface {
	Record(ctx context.Context, action models.AdminActionKind, payload map[string]any) error
}
