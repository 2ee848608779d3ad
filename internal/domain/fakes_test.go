package domain

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
)

// memStore is an in-memory stand-in for every repository port, shared by the
// domain tests. A monotonic fake clock keeps created_at ordering stable.
type memStore struct {
	mu sync.Mutex

	submissions map[uuid.UUID]*models.Submission
	sessions    map[uuid.UUID]*models.Session

	portalOpen bool
	activeID   *uuid.UUID
	np         models.NowPlaying
	actions    []models.AdminAction

	failSessionInsert bool

	clock time.Time
}

var (
	_ ports.SubmissionRepository = (*memStore)(nil)
	_ ports.SessionRepository    = (*memSessions)(nil)
	_ ports.SettingsRepository   = (*memStore)(nil)
	_ ports.NowPlayingRepository = (*memStore)(nil)
	_ ports.AuditRepository      = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		submissions: make(map[uuid.UUID]*models.Submission),
		sessions:    make(map[uuid.UUID]*models.Session),
		clock:       time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
	}
}

// memSessions separates the session repo because its method set overlaps
// with the submission repo's (Insert, GetByID).
type memSessions struct {
	store *memStore
}

func (s *memSessions) Insert(_ context.Context, name string) (*models.Session, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSessionInsert {
		return nil, errors.New("insert rejected")
	}

	sess := &models.Session{ID: uuid.New(), Name: name, CreatedAt: m.tick()}
	m.sessions[sess.ID] = sess
	cp := *sess
	return &cp, nil
}

func (s *memSessions) End(_ context.Context, id uuid.UUID, endedAt time.Time) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return models.ErrNotFound
	}
	cp := endedAt
	sess.EndedAt = &cp
	return nil
}

func (s *memSessions) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// --- SubmissionRepository ---

func (m *memStore) Insert(_ context.Context, sub *models.Submission) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *sub
	cp.ID = uuid.New()
	cp.CreatedAt = m.tick()
	m.submissions[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (m *memStore) ListQueued(_ context.Context, sessionID uuid.UUID) ([]models.Submission, error) {
	return m.listByStatus(sessionID, true, 0, models.StatusQueued), nil
}

func (m *memStore) ListDecided(_ context.Context, sessionID uuid.UUID, limit int) ([]models.Submission, error) {
	return m.listByStatus(sessionID, false, limit, models.StatusFinalist, models.StatusDenied), nil
}

func (m *memStore) ListFinalists(_ context.Context, sessionID uuid.UUID) ([]models.Submission, error) {
	return m.listByStatus(sessionID, false, 0, models.StatusFinalist), nil
}

func (m *memStore) listByStatus(sessionID uuid.UUID, asc bool, limit int, statuses ...models.SubmissionStatus) []models.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Submission, 0)
	for _, sub := range m.submissions {
		if sub.SessionID != sessionID {
			continue
		}
		for _, st := range statuses {
			if sub.Status == st {
				out = append(out, *sub)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.SubmissionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return models.ErrNotFound
	}
	sub.Status = status
	return nil
}

func (m *memStore) AdjustWeight(_ context.Context, id uuid.UUID, delta float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return 0, models.ErrNotFound
	}
	sub.ManualWeight += delta
	if sub.ManualWeight < 0 {
		sub.ManualWeight = 0
	}
	return sub.ManualWeight, nil
}

// --- SettingsRepository ---

func (m *memStore) PortalOpen(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.portalOpen, nil
}

func (m *memStore) SetPortalOpen(_ context.Context, open bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portalOpen = open
	return nil
}

func (m *memStore) ActiveSessionID(_ context.Context) (*uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeID == nil {
		return nil, nil
	}
	cp := *m.activeID
	return &cp, nil
}

func (m *memStore) SetActiveSessionID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := id
	m.activeID = &cp
	return nil
}

// --- NowPlayingRepository ---

func (m *memStore) Get(_ context.Context) (*models.NowPlaying, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := m.np
	return &cp, nil
}

func (m *memStore) Set(_ context.Context, submissionID uuid.UUID, startedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := submissionID, startedAt
	m.np = models.NowPlaying{SubmissionID: &id, StartedAt: &at}
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.np = models.NowPlaying{}
	return nil
}

// --- AuditRepository ---

func (m *memStore) Record(_ context.Context, action models.AdminActionKind, payload map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, models.AdminAction{
		Action:    action,
		Payload:   payload,
		CreatedAt: m.clock,
	})
	return nil
}

func (m *memStore) recordedActions() []models.AdminActionKind {
	m.mu.Lock()
	defer m.mu.Unlock()

	kinds := make([]models.AdminActionKind, len(m.actions))
	for i, a := range m.actions {
		kinds[i] = a.Action
	}
	return kinds
}

// --- test helpers ---

func (m *memStore) startSession(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.sessions[id] = &models.Session{ID: id, Name: name, CreatedAt: m.tick()}
	cp := id
	m.activeID = &cp
	return id
}

func (m *memStore) addQueued(sessionID uuid.UUID, name string, feedback bool, weight float64) *models.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := &models.Submission{
		ID:            uuid.New(),
		SessionID:     sessionID,
		DisplayName:   name,
		TrackURL:      "https://soundcloud.com/artist/" + name,
		WantsFeedback: feedback,
		ManualWeight:  weight,
		Status:        models.StatusQueued,
		CreatedAt:     m.tick(),
	}
	m.submissions[sub.ID] = sub
	cp := *sub
	return &cp
}
