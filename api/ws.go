package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"rangepresets/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is a client message. Only "refresh" is understood: it asks for the
// current presets and scene without waiting for the next change.
type wsRequest struct {
	Type string `json:"type"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	log := h.logger.With(zap.String("session", s.ID))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(evt session.Event) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(evt)
	}

	outChan := make(chan session.Event, 64)
	kick, replay := s.Subscribe(outChan) // kicks any prior client
	defer s.ClearClient(outChan)         // closes outChan + clears session state if still owner

	for _, evt := range replay {
		if err := writeMsg(evt); err != nil {
			log.Debug("websocket journal replay failed", zap.Error(err))
			return
		}
	}

	// Pump live change events to the client. Exits when ClearClient closes outChan.
	go func() {
		for evt := range outChan {
			if err := writeMsg(evt); err != nil {
				return
			}
		}
	}()

	// Watch for session end or displacement and close the connection so
	// ReadJSON below unblocks immediately.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			writeMsg(session.Event{Type: session.EventClosed}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection; close without a "closed" event.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg wsRequest
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "refresh":
			view := s.Presets()
			scene := s.Scene()
			if err := writeMsg(session.Event{
				Type:       session.EventPreset,
				Presets:    view.Presets,
				Selected:   view.Selected,
				FrameStart: scene.FrameStart,
				FrameEnd:   scene.FrameEnd,
			}); err != nil {
				return
			}
		}
	}
}
