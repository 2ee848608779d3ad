package models

import (
	"time"

	"github.com/google/uuid"
)

// NowPlaying is the singleton pointer to the submission currently under
// review. The pointer is not cleared when a decision is made, so a non-nil
// SubmissionID alone does not mean something is playing: consumers must check
// that the referenced submission still has status PLAYING.
type NowPlaying struct {
	SubmissionID *uuid.UUID `json:"submission_id"`
	StartedAt    *time.Time `json:"started_at"`
}
