package preset

// RangePreset is a named, inclusive frame range. End may be less than Start.
type RangePreset struct {
	Name  string `json:"name" toml:"name"`
	Start int    `json:"start" toml:"start"`
	End   int    `json:"end" toml:"end"`
}

// Marker is a timeline marker supplied by the caller. LinkedObject is the name
// of an object bound to the marker (a camera, usually); empty means none.
type Marker struct {
	Frame        int    `json:"frame" toml:"frame"`
	Label        string `json:"label" toml:"label"`
	LinkedObject string `json:"linked_object,omitempty" toml:"linked_object"`
}

// DisplayName is the name a preset derived from m would get.
func (m Marker) DisplayName() string {
	if m.LinkedObject != "" {
		return m.LinkedObject
	}
	return m.Label
}

// SkippedMarker records a marker whose derived preset was rejected.
type SkippedMarker struct {
	Marker Marker `json:"marker"`
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
}

// DeriveResult reports the outcome of DeriveFromMarkers.
type DeriveResult struct {
	Created []RangePreset   `json:"created"`
	Skipped []SkippedMarker `json:"skipped"`
}

// CreatedCount returns how many presets were appended to the store.
func (r DeriveResult) CreatedCount() int {
	return len(r.Created)
}
