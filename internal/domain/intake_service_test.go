package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

func newIntake(m *memStore) ports.IntakeService {
	return NewIntakeService(m, m, zap.NewNop())
}

func validSubmission() ports.NewSubmission {
	return ports.NewSubmission{
		DisplayName:   "  DJ Tester  ",
		TrackURL:      "https://soundcloud.com/dj-tester/first-demo",
		WantsFeedback: true,
	}
}

func TestSubmitPortalClosed(t *testing.T) {
	m := newMemStore()
	m.startSession("live")
	m.portalOpen = false

	_, err := newIntake(m).Submit(context.Background(), validSubmission())

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "portal", verr.Field)
	assert.Empty(t, m.submissions)
}

func TestSubmitDisplayNameTooShort(t *testing.T) {
	m := newMemStore()
	m.startSession("live")
	m.portalOpen = true

	in := validSubmission()
	in.DisplayName = " x "

	_, err := newIntake(m).Submit(context.Background(), in)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "display_name", verr.Field)
}

func TestSubmitRejectsNonSoundCloudURL(t *testing.T) {
	m := newMemStore()
	m.startSession("live")
	m.portalOpen = true

	for _, url := range []string{
		"https://example.com/track",
		"soundcloud.com/no-scheme",
		"ftp://soundcloud.com/track",
	} {
		in := validSubmission()
		in.TrackURL = url

		_, err := newIntake(m).Submit(context.Background(), in)

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr, "url %q", url)
		assert.Equal(t, "track_url", verr.Field)
	}
}

func TestSubmitAcceptsShortLinkHost(t *testing.T) {
	m := newMemStore()
	m.startSession("live")
	m.portalOpen = true

	in := validSubmission()
	in.TrackURL = "HTTPS://ON.SOUNDCLOUD.COM/abc123"

	_, err := newIntake(m).Submit(context.Background(), in)
	require.NoError(t, err)
}

func TestSubmitNoActiveSession(t *testing.T) {
	m := newMemStore()
	m.portalOpen = true

	_, err := newIntake(m).Submit(context.Background(), validSubmission())
	require.ErrorIs(t, err, models.ErrNoActiveSession)
}

func TestSubmitQueuesSubmission(t *testing.T) {
	m := newMemStore()
	sessionID := m.startSession("live")
	m.portalOpen = true

	created, err := newIntake(m).Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, "DJ Tester", created.DisplayName)
	assert.Equal(t, sessionID, created.SessionID)
	assert.Equal(t, models.StatusQueued, created.Status)
	assert.True(t, created.WantsFeedback)
	assert.Zero(t, created.ManualWeight)
}
