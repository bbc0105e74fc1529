package carve

import (
	"math"
	"testing"
)

func TestRegionContains(t *testing.T) {
	mins := IVec3{0, 0, 0}
	maxs := IVec3{15, 15, 15}
	r := NewRegion(mins, maxs)
	assertTrue(t, "contains lower", r.ContainsPoint(mins, 0))
	assertTrue(t, "contains upper", r.ContainsPoint(maxs, 0))
	assertFalse(t, "contains lower margin 1", r.ContainsPoint(mins, 1))
	assertFalse(t, "contains upper margin 1", r.ContainsPoint(maxs, 1))
	assertFalse(t, "contains upper+1", r.ContainsPoint(IVec3{16, 16, 16}, 0))
	assertTrue(t, "contains self", r.ContainsRegion(r, 0))
	assertFalse(t, "contains self margin 1", r.ContainsRegion(r, 1))
}

func TestRegionInvalid(t *testing.T) {
	assertFalse(t, "InvalidRegion.Valid", InvalidRegion.Valid())
	assertFalse(t, "contains origin", InvalidRegion.ContainsPoint(IVec3{}, 0))
	assertFalse(t, "contains region", InvalidRegion.ContainsRegion(NewRegionSpan(0, 1), 0))
	assertInt(t, "voxel count", InvalidRegion.VoxelCount(), 0)
	assertFalse(t, "rotate stays invalid", InvalidRegion.Rotate(&Mat3{}, Vec3{}).Valid())
}

func TestRegionDimensions(t *testing.T) {
	r := NewRegion(IVec3{-1, 0, 2}, IVec3{1, 0, 5})
	assertIVec3(t, "dimensions", r.Dimensions(), IVec3{3, 1, 4})
	assertInt(t, "voxel count", r.VoxelCount(), 12)
}

func TestRegionUnionIntersect(t *testing.T) {
	a := NewRegionSpan(0, 4)
	b := NewRegionSpan(3, 8)
	assertRegion(t, "union", a.Union(b), NewRegionSpan(0, 8))
	assertRegion(t, "intersect", a.Intersect(b), NewRegionSpan(3, 4))
	assertFalse(t, "disjoint intersect", a.Intersect(NewRegionSpan(6, 8)).Valid())
	assertRegion(t, "union with invalid", a.Union(InvalidRegion), a)
	assertRegion(t, "invalid union", InvalidRegion.Union(b), b)
}

// Rotating a symmetric region 45 degrees about the origin must keep
// the rotation axis' bounds untouched and expand the other two; the
// result is an enclosing AABB, never a rotated rectangular volume.
func TestRegionRotateAxisY45(t *testing.T) {
	r := NewRegionSpan(-10, 10)
	m := RotationY(45 * math.Pi / 180)
	rot := r.Rotate(&m, Vec3{})
	assertInt(t, "lower y", rot.Lower()[1], -10)
	assertInt(t, "upper y", rot.Upper()[1], 10)
	assertInt(t, "lower x", rot.Lower()[0], -15)
	assertInt(t, "upper x", rot.Upper()[0], 15)
	assertInt(t, "lower z", rot.Lower()[2], -15)
	assertInt(t, "upper z", rot.Upper()[2], 15)
	assertTrue(t, "rotated AABB contains source", rot.ContainsRegion(r, 0))
}

// Exact 90 degree steps must not grow the box: float noise in the
// rotation matrix has to be absorbed, not ceil'd into an extra cell.
func TestRegionRotate90Exact(t *testing.T) {
	r := NewRegionSpan(0, 2)
	m := RotationY(math.Pi / 2)
	rot := r.Rotate(&m, r.Center())
	assertRegion(t, "rotated 90", rot, r)
}

// A rotation composed with its inverse transforms the corners back to
// where they started, within integer rounding.
func TestRegionRotateRoundTripCorners(t *testing.T) {
	fwd := RotationY(45 * math.Pi / 180)
	back := RotationY(-45 * math.Pi / 180)
	for _, corner := range []Vec3{
		{-10, -10, -10},
		{10, 10, 10},
		{-10, 10, 10},
	} {
		p := back.Apply(fwd.Apply(corner))
		for i := range p {
			assertNear(t, "corner component", p[i], corner[i], 1)
		}
	}
}

func TestRegionMoveInto(t *testing.T) {
	cases := []struct {
		name    string
		r       Region
		pos     IVec3
		want    IVec3
	}{
		{"size1 overlap", NewRegionSpan(0, 0), IVec3{2, 2, 2}, IVec3{0, 0, 0}},
		{"size1 no overlap", NewRegionSpan(0, 0), IVec3{0, 0, 0}, IVec3{0, 0, 0}},
		{"size1 x overlap", NewRegionSpan(0, 0), IVec3{10, 0, 0}, IVec3{0, 0, 0}},
		{"no overlap", NewRegionSpan(0, 10), IVec3{2, 2, 2}, IVec3{2, 2, 2}},
		{"y overlap", NewRegionSpan(0, 10), IVec3{2, 20, 2}, IVec3{2, 9, 2}},
		{"y boundary", NewRegionSpan(0, 10), IVec3{2, 10, 2}, IVec3{2, 10, 2}},
		{"nonzero origin", NewRegionSpan(10, 11), IVec3{2, 2, 2}, IVec3{10, 10, 10}},
		{"nonzero origin no overlap", NewRegionSpan(10, 15), IVec3{2, 2, 2}, IVec3{12, 12, 12}},
		{"negative mins", NewRegion(IVec3{-10, -10, -10}, IVec3{15, 15, 15}), IVec3{2, 2, 2}, IVec3{-8, -8, -8}},
		{"negative steps", NewRegion(IVec3{-10, -10, -10}, IVec3{15, 15, 15}), IVec3{-2, -2, -2}, IVec3{13, 13, 13}},
		{"bigger than size", NewRegionSpan(-10, 10), IVec3{41, 41, -41}, IVec3{10, 10, -10}},
	}
	for _, tc := range cases {
		got := tc.r.MoveInto(tc.pos[0], tc.pos[1], tc.pos[2])
		assertIVec3(t, tc.name, got, tc.want)
	}
}

func TestRegionTranslate(t *testing.T) {
	r := NewRegionSpan(0, 4).Translate(IVec3{1, -2, 3})
	assertRegion(t, "translated", r, NewRegion(IVec3{1, -2, 3}, IVec3{5, 2, 7}))
}
