package api

import (
	"errors"
	"net/http"

	"rangepresets/session"
)

func (h *handler) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Infos())
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		FrameStart *int   `json:"frame_start"`
		FrameEnd   *int   `json:"frame_end"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	var frameRange *[2]int
	if req.FrameStart != nil || req.FrameEnd != nil {
		if req.FrameStart == nil || req.FrameEnd == nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "frame_start and frame_end must be given together")
			return
		}
		frameRange = &[2]int{*req.FrameStart, *req.FrameEnd}
	}

	s, err := h.manager.Create(req.Name, frameRange)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyName):
			writeError(w, http.StatusBadRequest, "invalid_body", "session name is required")
		case errors.Is(err, session.ErrNameTaken):
			writeError(w, http.StatusConflict, "name_taken", "session name already in use")
		default:
			writeError(w, http.StatusInternalServerError, "internal", "failed to create session")
		}
		return
	}

	writeJSON(w, http.StatusCreated, s.Info())
}

func (h *handler) killSession(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Kill(sessionFrom(r).ID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found", "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
