package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"rangepresets/preset"
	"rangepresets/session"
)

type frameRangeRequest struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type deriveResponse struct {
	Created      []preset.RangePreset   `json:"created"`
	Skipped      []preset.SkippedMarker `json:"skipped"`
	CreatedCount int                    `json:"created_count"`
	Presets      session.PresetsView    `json:"presets"`
}

func (h *handler) getScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Scene())
}

func (h *handler) putFrameRange(w http.ResponseWriter, r *http.Request) {
	var req frameRangeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, sessionFrom(r).SetFrameRange(req.Start, req.End))
}

func (h *handler) putMarkers(w http.ResponseWriter, r *http.Request) {
	var markers []preset.Marker
	if !decodeBody(w, r, &markers) {
		return
	}
	writeJSON(w, http.StatusOK, sessionFrom(r).SetMarkers(markers))
}

func (h *handler) deriveFromMarkers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LastRangeLength *int `json:"last_range_length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	length := h.opts.LastRangeLength
	if req.LastRangeLength != nil {
		length = *req.LastRangeLength
	}

	s := sessionFrom(r)
	res, err := s.DeriveFromMarkers(length)
	if err != nil {
		writePresetError(w, err, "")
		return
	}
	h.logger.Info("derived presets from markers",
		zap.String("session", s.ID),
		zap.Int("created", res.CreatedCount()),
		zap.Int("skipped", len(res.Skipped)))

	writeJSON(w, http.StatusOK, deriveResponse{
		Created:      res.Created,
		Skipped:      res.Skipped,
		CreatedCount: res.CreatedCount(),
		Presets:      s.Presets(),
	})
}
