package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"rangepresets/preset"
)

// Session is one open scene document. It owns the scene's current frame range,
// its timeline markers, and the preset store for that scene. Every access to
// the store goes through Session methods, which serialize on mu.
//
// ID, Name and CreatedAt never change after creation. Everything else is
// guarded: lastActive by mu, connected by outMu. Use Info for a snapshot.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
	frameStart int
	frameEnd   int
	markers    []preset.Marker
	presets    *preset.Store

	logger   *zap.Logger
	journal  *journal
	outChan   chan Event
	kickChan  chan struct{}
	connected bool
	outMu     sync.Mutex
	done     chan struct{}
	doneOnce sync.Once
}

// Info is a point-in-time view of a session, safe to encode.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
}

// Scene is a snapshot of a session's timeline state.
type Scene struct {
	FrameStart int             `json:"frame_start"`
	FrameEnd   int             `json:"frame_end"`
	Markers    []preset.Marker `json:"markers"`
}

// PresetsView is a snapshot of a session's preset store.
type PresetsView struct {
	Presets  []preset.RangePreset `json:"presets"`
	Names    []string             `json:"names"`
	Selected string               `json:"selected"`
}

func newSession(id, name string, start, end, journalSize int, logger *zap.Logger) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		lastActive: now,
		frameStart: start,
		frameEnd:   end,
		markers:    []preset.Marker{},
		presets:    preset.NewStore(),
		logger:     logger,
		journal:    newJournal(journalSize),
		done:       make(chan struct{}),
	}
}

// SetClient registers a channel to receive live change events. If a previous
// client is connected it is kicked: its kick channel is closed so the
// websocket handler can detect the displacement and close that connection.
// Returns a kick channel that will be closed if this client is itself later
// displaced.
func (s *Session) SetClient(ch chan Event) <-chan struct{} {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.outChan = ch
	s.connected = true
	return kick
}

// ClearClient is called when a connection ends. It only updates session state
// if ch is still the current owner (guards against a displaced connection
// clearing a newer one). It always closes ch so the pump goroutine exits.
func (s *Session) ClearClient(ch chan Event) {
	s.outMu.Lock()
	owned := s.outChan == ch
	if owned {
		s.outChan = nil
		s.connected = false
		s.kickChan = nil
	}
	s.outMu.Unlock()
	close(ch)
}

// Info returns a snapshot of the session's identity and activity.
func (s *Session) Info() Info {
	s.mu.Lock()
	lastActive := s.lastActive
	s.mu.Unlock()

	s.outMu.Lock()
	connected := s.connected
	s.outMu.Unlock()

	return Info{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		LastActive: lastActive,
		Connected:  connected,
	}
}

// Subscribe registers ch as the live client and returns the journal as it
// stood at registration. Holding mu keeps publishers out, so every event is
// either in the returned replay or delivered on ch, never both.
func (s *Session) Subscribe(ch chan Event) (kick <-chan struct{}, replay []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kick = s.SetClient(ch)
	return kick, s.journal.Snapshot()
}

// JournalSnapshot returns a copy of the retained change events, oldest first.
func (s *Session) JournalSnapshot() []Event {
	return s.journal.Snapshot()
}

// Done returns a channel that is closed when the session is killed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) close() {
	s.doneOnce.Do(func() { close(s.done) })
}
