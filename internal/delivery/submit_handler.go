package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
)

// SubmitHandler serves the public side: submissions, the portal flag, and
// the track preview proxy.
type SubmitHandler struct {
	intake  ports.IntakeService
	portal  ports.PortalService
	preview ports.PreviewService
	log     *logger.ZapLogger
}

func NewSubmitHandler(
	intake ports.IntakeService,
	portal ports.PortalService,
	preview ports.PreviewService,
	log *logger.ZapLogger,
) *SubmitHandler {
	return &SubmitHandler{
		intake:  intake,
		portal:  portal,
		preview: preview,
		log:     log,
	}
}

// POST /api/submissions
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ports.NewSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	sub, err := h.intake.Submit(r.Context(), req)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": vErr.Reason,
				"field": vErr.Field,
			})
		case errors.Is(err, models.ErrNoActiveSession):
			writeError(w, http.StatusConflict, "no active session")
		default:
			h.log.Log(logger.LogEntry{
				Level:   "error",
				Message: "submission failed",
				Error:   err,
			})
			writeError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// GET /api/portal
func (h *SubmitHandler) Portal(w http.ResponseWriter, r *http.Request) {
	open, err := h.portal.IsOpen(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "portal read failed",
			Error:   err,
		})
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"open": open})
}

// GET /api/preview?url=...
//
// The result is display-only and never persisted; an abandoned preview is
// canceled through the request context when the client drops the request.
func (h *SubmitHandler) Preview(w http.ResponseWriter, r *http.Request) {
	trackURL := r.URL.Query().Get("url")
	if trackURL == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	preview, err := h.preview.Preview(r.Context(), trackURL)
	if err != nil {
		writeError(w, http.StatusBadGateway, "preview unavailable")
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
