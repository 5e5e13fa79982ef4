package preset

import "github.com/cockroachdb/errors"

// Kind classifies a failed store operation.
type Kind string

const (
	KindEmptyName       Kind = "empty_name"
	KindDuplicateName   Kind = "duplicate_name"
	KindNotFound        Kind = "not_found"
	KindIndexOutOfRange Kind = "index_out_of_range"
	KindNoMarkers       Kind = "no_markers"
)

var (
	ErrEmptyName       = errors.New("preset name cannot be empty")
	ErrDuplicateName   = errors.New("preset already exists")
	ErrNotFound        = errors.New("preset not found")
	ErrIndexOutOfRange = errors.New("invalid preset index")
	ErrNoMarkers       = errors.New("no markers to derive presets from")
)

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrEmptyName, KindEmptyName},
	{ErrDuplicateName, KindDuplicateName},
	{ErrNotFound, KindNotFound},
	{ErrIndexOutOfRange, KindIndexOutOfRange},
	{ErrNoMarkers, KindNoMarkers},
}

// KindOf returns the failure kind carried by err, or "" when err is nil or did
// not come from a store operation.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return ""
}
