package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"rangepresets/logging"
	"rangepresets/session"
)

// Options carries the preferences handlers apply on behalf of the caller.
type Options struct {
	// LastRangeLength is used when a derive request does not supply one.
	LastRangeLength int
}

func RegisterRoutes(manager *session.Manager, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	h := &handler{manager: manager, opts: opts, logger: logger}

	// Sessions
	r.Get("/api/sessions", h.listSessions)
	r.Post("/api/sessions", h.createSession)

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(h.withSession)
		r.Delete("/", h.killSession)

		// Scene
		r.Get("/scene", h.getScene)
		r.Put("/scene/range", h.putFrameRange)
		r.Put("/scene/markers", h.putMarkers)
		r.Post("/scene/markers/derive", h.deriveFromMarkers)

		// Presets
		r.Get("/presets", h.getPresets)
		r.Post("/presets", h.addPreset)
		r.Put("/presets/{name}", h.editPreset)
		r.Delete("/presets/{name}", h.deletePreset)
		r.Post("/presets/at/{index}/apply", h.applyPreset)
		r.Put("/selection", h.putSelection)

		// WebSocket
		r.Get("/ws", h.handleWS)
	})

	return r
}

type handler struct {
	manager *session.Manager
	opts    Options
	logger  *zap.Logger
}
