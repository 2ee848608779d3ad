package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one stream's worth of submissions. EndedAt stays nil while the
// session is active; exactly one session is active at a time, referenced by
// the settings table.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at"`
}
