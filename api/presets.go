package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rangepresets/preset"
	"rangepresets/session"
)

type applyResponse struct {
	Preset preset.RangePreset `json:"preset"`
	Scene  session.Scene      `json:"scene"`
}

// presetName returns the {name} path parameter. chi matches against
// URL.RawPath when it is set (an escaped "/" in the name, say) and against the
// already-decoded URL.Path otherwise, so only the first case needs unescaping.
func presetName(r *http.Request) string {
	param := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return param
	}
	if name, err := url.PathUnescape(param); err == nil {
		return name
	}
	return param
}

func (h *handler) getPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Presets())
}

func (h *handler) addPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := sessionFrom(r).AddFromCurrent(req.Name)
	if err != nil {
		writePresetError(w, err, req.Name)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handler) editPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Start int    `json:"start"`
		End   int    `json:"end"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	target := presetName(r)
	p, err := sessionFrom(r).EditPreset(target, req.Name, req.Start, req.End)
	if err != nil {
		name := req.Name
		if preset.KindOf(err) == preset.KindNotFound {
			name = target
		}
		writePresetError(w, err, name)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handler) deletePreset(w http.ResponseWriter, r *http.Request) {
	name := presetName(r)
	if _, err := sessionFrom(r).DeletePreset(name); err != nil {
		writePresetError(w, err, name)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) applyPreset(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index", "preset index must be an integer")
		return
	}
	s := sessionFrom(r)
	p, err := s.ApplyPreset(index)
	if err != nil {
		writePresetError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, applyResponse{Preset: p, Scene: s.Scene()})
}

func (h *handler) putSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s := sessionFrom(r)
	if err := s.SelectPreset(req.Name); err != nil {
		writePresetError(w, err, req.Name)
		return
	}
	writeJSON(w, http.StatusOK, s.Presets())
}
