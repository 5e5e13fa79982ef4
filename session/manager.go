package session

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNameTaken = errors.New("session name already in use")
var ErrNotFound = errors.New("session not found")
var ErrEmptyName = errors.New("session name is empty")

// Options configures new sessions.
type Options struct {
	DefaultFrameStart int
	DefaultFrameEnd   int
	JournalSize       int
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
	logger   *zap.Logger
}

func NewManager(opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
		logger:   logger,
	}
}

// Create opens a new scene session. A nil frame range uses the configured
// default.
func (m *Manager) Create(name string, frameRange *[2]int) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.Name == name {
			return nil, ErrNameTaken
		}
	}

	start, end := m.opts.DefaultFrameStart, m.opts.DefaultFrameEnd
	if frameRange != nil {
		start, end = frameRange[0], frameRange[1]
	}

	id := uuid.New().String()
	s := newSession(id, name, start, end, m.opts.JournalSize,
		m.logger.With(zap.String("session", id)))
	m.sessions[s.ID] = s

	m.logger.Info("session created",
		zap.String("session", s.ID),
		zap.String("name", name),
		zap.Int("frame_start", start),
		zap.Int("frame_end", end))
	return s, nil
}

// List returns the open sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Kill discards a session and its presets. Connected clients are told the
// session closed.
func (m *Manager) Kill(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.close()
	delete(m.sessions, id)

	m.logger.Info("session closed", zap.String("session", id), zap.String("name", s.Name))
	return nil
}

// Infos returns a snapshot of every open session, oldest first.
func (m *Manager) Infos() []Info {
	sessions := m.List()
	infos := make([]Info, len(sessions))
	for i, s := range sessions {
		infos[i] = s.Info()
	}
	return infos
}

// CloseAll kills every session. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.close()
		delete(m.sessions, id)
	}
}
