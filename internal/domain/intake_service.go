package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

var trackURLPattern = regexp.MustCompile(`(?i)^https?://(soundcloud\.com|on\.soundcloud\.com)/`)

const maxDisplayNameLen = 64

// intakeService records public submissions. All checks run server side so
// the portal flag and session assignment cannot be bypassed by a client.
type intakeService struct {
	submissions ports.SubmissionRepository
	settings    ports.SettingsRepository
	logger      *zap.Logger
}

func NewIntakeService(
	submissions ports.SubmissionRepository,
	settings ports.SettingsRepository,
	logger *zap.Logger,
) ports.IntakeService {
	return &intakeService{
		submissions: submissions,
		settings:    settings,
		logger:      logger.Named("Intake"),
	}
}

func (s *intakeService) Submit(ctx context.Context, in ports.NewSubmission) (*models.Submission, error) {
	open, err := s.settings.PortalOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("read portal flag: %w", err)
	}
	if !open {
		return nil, &models.ValidationError{Field: "portal", Reason: "portal is closed"}
	}

	name := strings.TrimSpace(in.DisplayName)
	if utf8.RuneCountInString(name) < 2 {
		return nil, &models.ValidationError{Field: "display_name", Reason: "must be at least 2 characters"}
	}
	if utf8.RuneCountInString(name) > maxDisplayNameLen {
		return nil, &models.ValidationError{Field: "display_name", Reason: "must be at most 64 characters"}
	}

	trackURL := strings.TrimSpace(in.TrackURL)
	if !trackURLPattern.MatchString(trackURL) {
		return nil, &models.ValidationError{Field: "track_url", Reason: "must be a SoundCloud track link"}
	}

	sessionID, err := s.settings.ActiveSessionID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read active session: %w", err)
	}
	if sessionID == nil {
		return nil, models.ErrNoActiveSession
	}

	sub := &models.Submission{
		SessionID:     *sessionID,
		DisplayName:   name,
		TrackURL:      trackURL,
		WantsFeedback: in.WantsFeedback,
		Status:        models.StatusQueued,
	}
	created, err := s.submissions.Insert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	s.logger.Info("submission received",
		zap.String("submission_id", created.ID.String()),
		zap.Bool("wants_feedback", created.WantsFeedback),
	)
	return created, nil
}
