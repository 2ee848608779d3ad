package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayingView joins the now-playing pointer with its submission. Only built
// when the referenced submission is actually PLAYING.
type PlayingView struct {
	Submission Submission `json:"submission"`
	StartedAt  time.Time  `json:"started_at"`
}

// Snapshot is the full admin view, recomputed by the refresher on every
// store change and pushed to connected clients.
type Snapshot struct {
	PortalOpen      bool         `json:"portal_open"`
	ActiveSessionID *uuid.UUID   `json:"active_session_id"`
	Playing         *PlayingView `json:"playing"`
	Queue           []Submission `json:"queue"`
	Finalists       []Submission `json:"finalists"`
	Previous        []Submission `json:"previous"`
}

// TrackPreview is the embeddable descriptor returned by the oEmbed endpoint.
// Display-only, never persisted.
type TrackPreview struct {
	HTML       string `json:"html"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}
