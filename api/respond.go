package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rangepresets/preset"
	"rangepresets/session"
)

type ctxKey struct{}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// withSession resolves {id} and stores the session on the request context.
func (h *handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.manager.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session_not_found", "session not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, s)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKey{}).(*session.Session)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// writePresetError maps a store failure to an HTTP status. name is the preset
// name the request was about, used for the message.
func writePresetError(w http.ResponseWriter, err error, name string) {
	kind := preset.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case preset.KindEmptyName:
		status = http.StatusBadRequest
	case preset.KindDuplicateName:
		status = http.StatusConflict
	case preset.KindNotFound, preset.KindIndexOutOfRange:
		status = http.StatusNotFound
	case preset.KindNoMarkers:
		status = http.StatusUnprocessableEntity
	}
	code := string(kind)
	if code == "" {
		code = "internal"
	}
	writeError(w, status, code, session.FailureMessage(err, name))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}
