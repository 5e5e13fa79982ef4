package session

import (
	"sync"
	"time"

	"rangepresets/preset"
)

type EventType string

const (
	EventPreset  EventType = "preset"
	EventScene   EventType = "scene"
	EventWarning EventType = "warning"
	EventClosed  EventType = "closed"
)

// Event describes one change to a session, with the state after the change
// so a client can redraw without another request.
type Event struct {
	Seq        uint64               `json:"seq"`
	Type       EventType            `json:"type"`
	Message    string               `json:"message,omitempty"`
	Kind       preset.Kind          `json:"kind,omitempty"`
	Presets    []preset.RangePreset `json:"presets"`
	Selected   string               `json:"selected"`
	FrameStart int                  `json:"frame_start"`
	FrameEnd   int                  `json:"frame_end"`
	Time       time.Time            `json:"time"`
}

// journal keeps the most recent events, dropping the oldest past max.
type journal struct {
	mu     sync.Mutex
	events []Event
	max    int
	seq    uint64
}

func newJournal(max int) *journal {
	return &journal{max: max}
}

// Write stamps evt with the next sequence number, retains it, and returns the
// stamped copy.
func (j *journal) Write(evt Event) Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.seq++
	evt.Seq = j.seq
	if j.max <= 0 {
		return evt
	}
	j.events = append(j.events, evt)
	if len(j.events) > j.max {
		excess := len(j.events) - j.max
		j.events = append(j.events[:0:0], j.events[excess:]...)
	}
	return evt
}

func (j *journal) Snapshot() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.events) == 0 {
		return nil
	}
	cp := make([]Event, len(j.events))
	copy(cp, j.events)
	return cp
}
