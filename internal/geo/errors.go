package geo

import (
	"errors"
	"fmt"
)

// ErrDegenerateGeometry is matched by every *DegenerateGeometryError.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// DegenerateGeometryError describes a ring or polygon that cannot be measured.
// Part and Ring are -1 when the problem is not tied to a specific one.
type DegenerateGeometryError struct {
	Part   int
	Ring   int
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	switch {
	case e.Part >= 0 && e.Ring >= 0:
		return fmt.Sprintf("degenerate geometry: part %d ring %d: %s", e.Part, e.Ring, e.Reason)
	case e.Ring >= 0:
		return fmt.Sprintf("degenerate geometry: ring %d: %s", e.Ring, e.Reason)
	case e.Part >= 0:
		return fmt.Sprintf("degenerate geometry: part %d: %s", e.Part, e.Reason)
	}
	return "degenerate geometry: " + e.Reason
}

// Is lets errors.Is match ErrDegenerateGeometry.
func (e *DegenerateGeometryError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}

func degenerate(reason string) *DegenerateGeometryError {
	return &DegenerateGeometryError{Part: -1, Ring: -1, Reason: reason}
}
