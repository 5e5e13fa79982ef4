package preset

import "github.com/cockroachdb/errors"

// RangesFromMarkers converts markers, which must already be ordered by frame,
// into unvalidated presets. Each range runs up to the frame before the next
// marker; the last one spans lastRangeLength frames past its marker. Two
// markers on the same frame yield End < Start and are left that way.
func RangesFromMarkers(markers []Marker, lastRangeLength int) []RangePreset {
	out := make([]RangePreset, len(markers))
	for i, m := range markers {
		end := m.Frame + lastRangeLength
		if i+1 < len(markers) {
			end = markers[i+1].Frame - 1
		}
		out[i] = RangePreset{Name: m.DisplayName(), Start: m.Frame, End: end}
	}
	return out
}

// DeriveFromMarkers appends one preset per marker. Markers whose name is empty
// or already taken (including by an earlier marker in the same batch) are
// skipped and reported; the rest are still created. An existing selection is
// kept; with none, the first created preset is selected.
func (s *Store) DeriveFromMarkers(markers []Marker, lastRangeLength int) (DeriveResult, error) {
	if len(markers) == 0 {
		return DeriveResult{}, errors.WithStack(ErrNoMarkers)
	}

	res := DeriveResult{
		Created: make([]RangePreset, 0, len(markers)),
		Skipped: []SkippedMarker{},
	}
	for i, r := range RangesFromMarkers(markers, lastRangeLength) {
		p, err := s.candidate(r.Name, r.Start, r.End)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedMarker{
				Marker: markers[i],
				Name:   r.Name,
				Kind:   KindOf(err),
			})
			continue
		}
		s.presets = append(s.presets, p)
		res.Created = append(res.Created, p)
	}

	if s.selected == "" && len(res.Created) > 0 {
		s.selected = res.Created[0].Name
	}
	return res, nil
}
