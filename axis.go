package carve

// Axis names one of the three coordinate axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	// AxisNone is what [ParseAxis] returns for anything it does not
	// recognize.
	AxisNone
)

// ParseAxis maps "x", "y" or "z" (case sensitive, first byte only) to
// an axis.
func ParseAxis(s string) Axis {
	if len(s) == 0 {
		return AxisNone
	}
	switch s[0] {
	case 'x':
		return AxisX
	case 'y':
		return AxisY
	case 'z':
		return AxisZ
	}
	return AxisNone
}

// String returns "x", "y", "z" or "none".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "none"
}
