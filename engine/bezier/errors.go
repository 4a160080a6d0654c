package bezier

import "errors"

var (
	ErrDegenerateDegree  = errors.New("bezier: degree must be at least 1")
	ErrDegreeTooHigh     = errors.New("bezier: degree exceeds MaxDegree")
	ErrControlPointCount = errors.New("bezier: control point count does not match degrees")
	ErrGridMismatch      = errors.New("bezier: sample grid does not match surface")
)
