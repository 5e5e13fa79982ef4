package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"rangepresets/preset"
)

// Scene returns the current frame range and markers.
func (s *Session) Scene() Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneLocked()
}

// SetFrameRange replaces the scene's current frame range.
func (s *Session) SetFrameRange(start, end int) Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameStart, s.frameEnd = start, end
	s.publishLocked(EventScene, fmt.Sprintf("Frame range set to %d - %d", start, end), "")
	return s.sceneLocked()
}

// SetMarkers replaces the timeline markers. They are kept ordered by frame;
// markers sharing a frame keep the order they were given in.
func (s *Session) SetMarkers(markers []preset.Marker) Scene {
	sorted := make([]preset.Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = sorted
	s.publishLocked(EventScene, fmt.Sprintf("Timeline has %d markers", len(sorted)), "")
	return s.sceneLocked()
}

// Presets returns the presets in order along with the selection.
func (s *Session) Presets() PresetsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presetsLocked()
}

// AddFromCurrent saves the scene's current frame range as a preset called
// name and selects it.
func (s *Session) AddFromCurrent(name string) (preset.RangePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.presets.SetSelectedRangeFromCurrent(s.frameStart, s.frameEnd, name)
	if err != nil {
		return p, s.rejectLocked("add", err, name)
	}
	s.publishLocked(EventPreset, fmt.Sprintf("Saved frame range as '%s'", p.Name), "")
	return p, nil
}

// EditPreset renames and re-ranges the preset called target.
func (s *Session) EditPreset(target, newName string, start, end int) (preset.RangePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.presets.Edit(target, newName, start, end)
	if err != nil {
		return p, s.rejectLocked("edit", err, newName)
	}
	s.publishLocked(EventPreset,
		fmt.Sprintf("Updated preset to '%s' with range %d - %d", p.Name, p.Start, p.End), "")
	return p, nil
}

// DeletePreset removes the preset called name.
func (s *Session) DeletePreset(name string) (preset.RangePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.presets.Delete(name)
	if err != nil {
		return p, s.rejectLocked("delete", err, name)
	}
	s.publishLocked(EventPreset, fmt.Sprintf("Deleted preset '%s'", p.Name), "")
	return p, nil
}

// SelectPreset makes the preset called name the selected one.
func (s *Session) SelectPreset(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.presets.Select(name); err != nil {
		return s.rejectLocked("select", err, name)
	}
	s.publishLocked(EventPreset, fmt.Sprintf("Selected preset '%s'", name), "")
	return nil
}

// ApplyPreset copies the range of the preset at index into the scene. The
// index is resolved against the store at the time of the call.
func (s *Session) ApplyPreset(index int) (preset.RangePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.presets.GetByIndex(index)
	if err != nil {
		return p, s.rejectLocked("apply", err, "")
	}
	s.frameStart, s.frameEnd = p.Start, p.End
	s.publishLocked(EventScene, fmt.Sprintf("Set frame range to '%s'", p.Name), "")
	return p, nil
}

// DeriveFromMarkers creates one preset per timeline marker. The final
// marker's range spans lastRangeLength frames.
func (s *Session) DeriveFromMarkers(lastRangeLength int) (preset.DeriveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.presets.DeriveFromMarkers(s.markers, lastRangeLength)
	if err != nil {
		return res, s.rejectLocked("derive", err, "")
	}
	msg := fmt.Sprintf("Created %d presets from markers.", res.CreatedCount())
	if n := len(res.Skipped); n > 0 {
		msg = fmt.Sprintf("Created %d presets from markers (%d skipped).", res.CreatedCount(), n)
	}
	s.publishLocked(EventPreset, msg, "")
	return res, nil
}

func (s *Session) sceneLocked() Scene {
	markers := make([]preset.Marker, len(s.markers))
	copy(markers, s.markers)
	return Scene{FrameStart: s.frameStart, FrameEnd: s.frameEnd, Markers: markers}
}

func (s *Session) presetsLocked() PresetsView {
	selected, _ := s.presets.Selected()
	return PresetsView{
		Presets:  s.presets.List(),
		Names:    s.presets.Names(),
		Selected: selected,
	}
}

// rejectLocked reports a failed store operation to connected clients and
// returns err unchanged.
func (s *Session) rejectLocked(op string, err error, name string) error {
	kind := preset.KindOf(err)
	s.logger.Debug("preset operation rejected",
		zap.String("op", op),
		zap.String("kind", string(kind)),
		zap.Error(err))
	s.publishLocked(EventWarning, FailureMessage(err, name), kind)
	return err
}

func (s *Session) publishLocked(typ EventType, msg string, kind preset.Kind) {
	view := s.presetsLocked()
	evt := s.journal.Write(Event{
		Type:       typ,
		Message:    msg,
		Kind:       kind,
		Presets:    view.Presets,
		Selected:   view.Selected,
		FrameStart: s.frameStart,
		FrameEnd:   s.frameEnd,
		Time:       time.Now(),
	})
	s.lastActive = evt.Time
	s.deliver(evt)
}

func (s *Session) deliver(evt Event) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.outChan == nil {
		return
	}
	select {
	case s.outChan <- evt:
	default:
		s.logger.Warn("dropping event for slow client", zap.Uint64("seq", evt.Seq))
	}
}

// FailureMessage renders a store failure as text for an artist.
func FailureMessage(err error, name string) string {
	name = strings.TrimSpace(name)
	switch preset.KindOf(err) {
	case preset.KindEmptyName:
		return "Preset name cannot be empty."
	case preset.KindDuplicateName:
		return fmt.Sprintf("Preset '%s' already exists.", name)
	case preset.KindNotFound:
		return fmt.Sprintf("Preset '%s' not found.", name)
	case preset.KindIndexOutOfRange:
		return "Invalid preset index."
	case preset.KindNoMarkers:
		return "No markers found in the timeline."
	default:
		return err.Error()
	}
}
