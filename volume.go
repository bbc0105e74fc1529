package carve

import "fmt"

// Volume is a dense 3D array of voxel cells bound to an owning Region.
// Every volume belongs to exactly one model [Node] at a time; transfer
// happens through [Node.SetVolume] and [Node.TakeVolume], never by
// sharing.
//
// Out-of-bounds access is well defined: [Volume.At] outside the region
// reads air, [Volume.Set] outside the region reports false and writes
// nothing.
type Volume struct {
	region Region
	data   []Voxel
}

// NewVolume allocates an all-air volume over r. It panics when r is
// invalid; sizing a volume is the caller's responsibility.
func NewVolume(r Region) *Volume {
	if !r.Valid() {
		panic(fmt.Sprintf("carve: cannot allocate a volume over invalid region %s", r))
	}
	return &Volume{
		region: r,
		data:   make([]Voxel, r.VoxelCount()),
	}
}

// Region returns the bounds the volume is addressed by.
func (v *Volume) Region() Region { return v.region }

func (v *Volume) offset(x, y, z int) int {
	d := v.region.Dimensions()
	lx := x - v.region.lower[0]
	ly := y - v.region.lower[1]
	lz := z - v.region.lower[2]
	return (lz*d[1]+ly)*d[0] + lx
}

// At returns the cell at the given coordinate, or air when the
// coordinate lies outside the region.
func (v *Volume) At(x, y, z int) Voxel {
	if !v.region.ContainsPoint(IVec3{x, y, z}, 0) {
		return AirVoxel
	}
	return v.data[v.offset(x, y, z)]
}

// Set writes the cell at the given coordinate and reports whether the
// coordinate was inside the region.
func (v *Volume) Set(x, y, z int, vox Voxel) bool {
	if !v.region.ContainsPoint(IVec3{x, y, z}, 0) {
		return false
	}
	v.data[v.offset(x, y, z)] = vox
	return true
}

// Translate shifts the volume's region by offset. Cell content is
// untouched; only the addressing moves.
func (v *Volume) Translate(offset IVec3) {
	v.region = v.region.Translate(offset)
}

// Clone returns an independent copy of the volume.
func (v *Volume) Clone() *Volume {
	out := &Volume{region: v.region, data: make([]Voxel, len(v.data))}
	copy(out.data, v.data)
	return out
}

// Equal reports whether o covers the same region with identical cell
// content.
func (v *Volume) Equal(o *Volume) bool {
	if v == nil || o == nil {
		return v == o
	}
	if !v.region.Equal(o.region) {
		return false
	}
	for i := range v.data {
		if v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
