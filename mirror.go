package carve

// Mirror reflects the voxels of v across the given axis within the
// existing region bounds. The output has the same region; the remap is
// one-to-one, so there is no resampling ambiguity. A nil input or
// [AxisNone] is a no-op returning the input.
func Mirror(v *Volume, axis Axis) *Volume {
	if v == nil || axis == AxisNone {
		return v
	}
	r := v.Region()
	sum := r.Lower()[axis] + r.Upper()[axis]
	out := NewVolume(r)
	Visit(v, func(x, y, z int, vox Voxel) {
		p := IVec3{x, y, z}
		p[axis] = sum - p[axis]
		out.Set(p[0], p[1], p[2], vox)
	})
	return out
}
