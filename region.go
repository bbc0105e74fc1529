package carve

import (
	"fmt"
	"math"
)

// Region is an integer axis-aligned bounding box with inclusive bounds.
// Regions are immutable values: every operation returns a new Region.
type Region struct {
	lower IVec3
	upper IVec3
}

// InvalidRegion is the sentinel for "no region". It fails every
// containment and geometry query.
var InvalidRegion = Region{lower: IVec3{0, 0, 0}, upper: IVec3{-1, -1, -1}}

// NewRegion creates a region spanning lower..upper inclusive.
func NewRegion(lower, upper IVec3) Region {
	return Region{lower: lower, upper: upper}
}

// NewRegionSpan creates a cubic region spanning lower..upper inclusive
// on every axis.
func NewRegionSpan(lower, upper int) Region {
	return Region{lower: SplatIVec3(lower), upper: SplatIVec3(upper)}
}

// Valid reports whether the region spans at least one voxel on every
// axis.
func (r Region) Valid() bool {
	for i := range r.lower {
		if r.lower[i] > r.upper[i] {
			return false
		}
	}
	return true
}

// Lower returns the inclusive lower corner.
func (r Region) Lower() IVec3 { return r.lower }

// Upper returns the inclusive upper corner.
func (r Region) Upper() IVec3 { return r.upper }

// Dimensions returns upper - lower + 1 per axis.
func (r Region) Dimensions() IVec3 {
	return AddIVec3(SubIVec3(r.upper, r.lower), SplatIVec3(1))
}

// VoxelCount returns the number of cells the region spans, or 0 for an
// invalid region.
func (r Region) VoxelCount() int {
	if !r.Valid() {
		return 0
	}
	d := r.Dimensions()
	return d[0] * d[1] * d[2]
}

// Center returns the floating-point center of the region.
func (r Region) Center() Vec3 {
	var c Vec3
	for i := range c {
		c[i] = float64(r.lower[i]+r.upper[i]) / 2
	}
	return c
}

// ContainsPoint reports whether every component of p lies within
// [lower+margin, upper-margin]. An invalid region contains nothing.
func (r Region) ContainsPoint(p IVec3, margin int) bool {
	if !r.Valid() {
		return false
	}
	for i := range p {
		if p[i] < r.lower[i]+margin || p[i] > r.upper[i]-margin {
			return false
		}
	}
	return true
}

// ContainsRegion reports whether both corners of s satisfy
// [Region.ContainsPoint] with the given margin.
func (r Region) ContainsRegion(s Region, margin int) bool {
	return r.ContainsPoint(s.lower, margin) && r.ContainsPoint(s.upper, margin)
}

// Translate returns the region shifted by offset.
func (r Region) Translate(offset IVec3) Region {
	return Region{
		lower: AddIVec3(r.lower, offset),
		upper: AddIVec3(r.upper, offset),
	}
}

// Union returns the smallest region containing both r and s.
// If either region is invalid the other is returned unchanged.
func (r Region) Union(s Region) Region {
	if !r.Valid() {
		return s
	}
	if !s.Valid() {
		return r
	}
	return Region{
		lower: MinIVec3(r.lower, s.lower),
		upper: MaxIVec3(r.upper, s.upper),
	}
}

// Intersect returns the overlap of r and s, which may be invalid when
// they do not overlap.
func (r Region) Intersect(s Region) Region {
	if !r.Valid() || !s.Valid() {
		return InvalidRegion
	}
	return Region{
		lower: MaxIVec3(r.lower, s.lower),
		upper: MinIVec3(r.upper, s.upper),
	}
}

// Equal reports whether r and s have identical corners.
func (r Region) Equal(s Region) bool {
	return r.lower == s.lower && r.upper == s.upper
}

// Rotate transforms all eight corners of the region by m about pivot
// and returns the axis-aligned bounding box of the result — NOT a
// rotated rectangular volume. The returned region generally spans more
// cells than r; callers that assume volume preservation will lose
// voxels at the corners. Bounds are floor(min)/ceil(max) of the
// transformed corner points.
func (r Region) Rotate(m *Mat3, pivot Vec3) Region {
	if !r.Valid() {
		return InvalidRegion
	}
	fmin := Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	fmax := Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for c := 0; c < 8; c++ {
		var corner Vec3
		for i := range corner {
			if c&(1<<i) != 0 {
				corner[i] = float64(r.upper[i])
			} else {
				corner[i] = float64(r.lower[i])
			}
		}
		p := AddVec3(m.Apply(SubVec3(corner, pivot)), pivot)
		for i := range p {
			fmin[i] = math.Min(fmin[i], p[i])
			fmax[i] = math.Max(fmax[i], p[i])
		}
	}
	// The epsilon keeps float noise from exact rotations (90 degree
	// steps land on x.9999…/x.0000…1) from growing the box by a cell.
	const eps = 1e-6
	var out Region
	for i := range out.lower {
		out.lower[i] = int(math.Floor(fmin[i] + eps))
		out.upper[i] = int(math.Ceil(fmax[i] - eps))
	}
	return out
}

// MoveInto wraps the given position into the region. Offsets are taken
// modulo the region dimensions: non-negative remainders measure from
// the lower corner, negative remainders from the upper corner.
func (r Region) MoveInto(x, y, z int) IVec3 {
	size := r.Dimensions()
	pos := IVec3{x, y, z}
	var out IVec3
	for i := range pos {
		delta := pos[i] % size[i]
		if delta >= 0 {
			out[i] = r.lower[i] + delta
		} else {
			out[i] = r.upper[i] + delta
		}
	}
	return out
}

// String returns "lower..upper" with the corners as x:y:z triples.
func (r Region) String() string {
	return fmt.Sprintf("%d:%d:%d..%d:%d:%d",
		r.lower[0], r.lower[1], r.lower[2],
		r.upper[0], r.upper[1], r.upper[2])
}
