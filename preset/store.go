package preset

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Store is an ordered collection of uniquely named frame ranges with a single
// selected entry. The selection is held by name so it survives index shifts.
//
// A Store is not safe for concurrent use; the owner serializes access.
type Store struct {
	presets  []RangePreset
	selected string
}

// NewStore returns an empty store with nothing selected.
func NewStore() *Store {
	return &Store{presets: []RangePreset{}}
}

// Add appends a preset named name (surrounding whitespace removed) and selects
// it. It fails with ErrEmptyName or ErrDuplicateName without changing the store.
func (s *Store) Add(name string, start, end int) (RangePreset, error) {
	p, err := s.candidate(name, start, end)
	if err != nil {
		return RangePreset{}, err
	}
	s.presets = append(s.presets, p)
	s.selected = p.Name
	return p, nil
}

// SetSelectedRangeFromCurrent stores the caller's current frame range under
// candidateName. It behaves exactly like Add.
func (s *Store) SetSelectedRangeFromCurrent(currentStart, currentEnd int, candidateName string) (RangePreset, error) {
	return s.Add(candidateName, currentStart, currentEnd)
}

// Edit renames and re-ranges the preset called targetName in place. When the
// edited preset is selected the selection follows the new name.
func (s *Store) Edit(targetName, newName string, newStart, newEnd int) (RangePreset, error) {
	idx := s.IndexOf(targetName)
	if idx < 0 {
		return RangePreset{}, errors.Wrapf(ErrNotFound, "edit %q", targetName)
	}
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return RangePreset{}, errors.Wrapf(ErrEmptyName, "edit %q", targetName)
	}
	if other := s.IndexOf(trimmed); other >= 0 && other != idx {
		return RangePreset{}, errors.Wrapf(ErrDuplicateName, "rename %q to %q", targetName, trimmed)
	}

	s.presets[idx] = RangePreset{Name: trimmed, Start: newStart, End: newEnd}
	if s.selected == targetName {
		s.selected = trimmed
	}
	return s.presets[idx], nil
}

// Delete removes the preset called targetName. Deleting the selected preset
// moves the selection to the first remaining preset, or clears it when the
// store is left empty.
func (s *Store) Delete(targetName string) (RangePreset, error) {
	idx := s.IndexOf(targetName)
	if idx < 0 {
		return RangePreset{}, errors.Wrapf(ErrNotFound, "delete %q", targetName)
	}
	removed := s.presets[idx]
	s.presets = slices.Delete(s.presets, idx, idx+1)

	if s.selected == removed.Name {
		s.selected = ""
		if len(s.presets) > 0 {
			s.selected = s.presets[0].Name
		}
	}
	return removed, nil
}

// GetByIndex returns the preset at position i. The index is checked against
// the store as it is now, not as it was when the caller obtained i.
func (s *Store) GetByIndex(i int) (RangePreset, error) {
	if i < 0 || i >= len(s.presets) {
		return RangePreset{}, errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", i, len(s.presets))
	}
	return s.presets[i], nil
}

// Lookup returns the preset called name.
func (s *Store) Lookup(name string) (RangePreset, bool) {
	idx := s.IndexOf(name)
	if idx < 0 {
		return RangePreset{}, false
	}
	return s.presets[idx], true
}

// IndexOf returns the position of the preset called name, or -1.
func (s *Store) IndexOf(name string) int {
	return slices.IndexFunc(s.presets, func(p RangePreset) bool {
		return p.Name == name
	})
}

// List returns a copy of the presets in insertion order.
func (s *Store) List() []RangePreset {
	return slices.Clone(s.presets)
}

// Names returns the preset names in insertion order, for populating a
// selection list.
func (s *Store) Names() []string {
	names := make([]string, len(s.presets))
	for i, p := range s.presets {
		names[i] = p.Name
	}
	return names
}

func (s *Store) Len() int {
	return len(s.presets)
}

// Selected returns the selected preset name and whether one is selected.
func (s *Store) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// Select makes the preset called name the selected one.
func (s *Store) Select(name string) error {
	if s.IndexOf(name) < 0 {
		return errors.Wrapf(ErrNotFound, "select %q", name)
	}
	s.selected = name
	return nil
}

func (s *Store) ClearSelection() {
	s.selected = ""
}

// candidate validates a new preset against the current contents.
func (s *Store) candidate(name string, start, end int) (RangePreset, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return RangePreset{}, errors.WithStack(ErrEmptyName)
	}
	if s.IndexOf(trimmed) >= 0 {
		return RangePreset{}, errors.Wrapf(ErrDuplicateName, "add %q", trimmed)
	}
	return RangePreset{Name: trimmed, Start: start, End: end}, nil
}
