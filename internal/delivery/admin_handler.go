package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
)

// StateSource is the cached admin view. Invalidate covers changes the store
// feed does not notify about (settings, sessions).
type StateSource interface {
	Snapshot() models.Snapshot
	Invalidate()
}

type AdminHandler struct {
	portal   ports.PortalService
	sessions ports.SessionService
	playback ports.PlaybackService
	state    StateSource
	log      *logger.ZapLogger
}

func NewAdminHandler(
	portal ports.PortalService,
	sessions ports.SessionService,
	playback ports.PlaybackService,
	state StateSource,
	log *logger.ZapLogger,
) *AdminHandler {
	return &AdminHandler{
		portal:   portal,
		sessions: sessions,
		playback: playback,
		state:    state,
		log:      log,
	}
}

// GET /api/admin/state
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Snapshot())
}

// POST /api/admin/portal
func (h *AdminHandler) SetPortal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.portal.SetOpen(r.Context(), req.Open); err != nil {
		h.fail(w, "portal toggle failed", err)
		return
	}
	h.state.Invalidate()
	writeJSON(w, http.StatusOK, map[string]bool{"open": req.Open})
}

// POST /api/admin/pick-next
func (h *AdminHandler) PickNext(w http.ResponseWriter, r *http.Request) {
	picked, err := h.playback.PickNext(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrQueueEmpty):
			writeError(w, http.StatusConflict, "queue is empty")
		case errors.Is(err, models.ErrNoActiveSession):
			writeError(w, http.StatusConflict, "no active session")
		default:
			h.fail(w, "pick next failed", err)
		}
		return
	}
	h.state.Invalidate()
	writeJSON(w, http.StatusOK, picked)
}

// POST /api/admin/accept
func (h *AdminHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.playback.Accept)
}

// POST /api/admin/deny
func (h *AdminHandler) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.playback.Deny)
}

func (h *AdminHandler) decide(w http.ResponseWriter, r *http.Request, op func(context.Context) error) {
	if err := op(r.Context()); err != nil {
		if errors.Is(err, models.ErrNothingPlaying) {
			writeError(w, http.StatusConflict, "nothing is playing")
			return
		}
		h.fail(w, "decision failed", err)
		return
	}
	h.state.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/admin/submissions/{id}/weight
func (h *AdminHandler) AdjustWeight(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	weight, err := h.playback.AdjustWeight(r.Context(), id, req.Delta)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		h.fail(w, "weight adjust failed", err)
		return
	}
	h.state.Invalidate()
	writeJSON(w, http.StatusOK, map[string]float64{"manual_weight": weight})
}

// POST /api/admin/submissions/{id}/requeue
func (h *AdminHandler) Requeue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.playback.Requeue(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		h.fail(w, "requeue failed", err)
		return
	}
	h.state.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/admin/sessions
func (h *AdminHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := h.sessions.StartNewSession(r.Context(), req.Name)
	if err != nil {
		h.fail(w, "session rollover failed", err)
		return
	}
	h.state.Invalidate()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id.String()})
}

func (h *AdminHandler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: msg,
		Error:   err,
	})
	writeError(w, http.StatusInternalServerError, "something went wrong")
}
