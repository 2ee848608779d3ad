package ports

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository backs the two singleton settings rows: the portal flag
// and the active session pointer.
type SettingsRepository interface {
	PortalOpen(ctx context.Context) (bool, error)
	SetPortalOpen(ctx context.Context, open bool) error

	// ActiveSessionID returns nil (not an error) when no session has ever
	// been started.
	ActiveSessionID(ctx context.Context) (*uuid.UUID, error)
	SetActiveSessionID(ctx context.Context, id uuid.UUID) error
}
