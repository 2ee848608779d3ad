package models

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	StatusQueued   SubmissionStatus = "QUEUED"
	StatusPlaying  SubmissionStatus = "PLAYING"
	StatusFinalist SubmissionStatus = "FINALIST"
	StatusDenied   SubmissionStatus = "DENIED"
)

// Submission is one track sent in through the public portal. It is never
// deleted; decisions only move it between statuses, and session_id is fixed
// at creation.
type Submission struct {
	ID            uuid.UUID        `json:"id"`
	SessionID     uuid.UUID        `json:"session_id"`
	DisplayName   string           `json:"display_name"`
	TrackURL      string           `json:"track_url"`
	WantsFeedback bool             `json:"wants_feedback"`
	ManualWeight  float64          `json:"manual_weight"`
	Status        SubmissionStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}
