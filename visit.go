package carve

// Visitor is called for each visited voxel with its absolute
// coordinate.
type Visitor func(x, y, z int, vox Voxel)

// Visit calls fn for every non-air voxel in z, y, x order (x varies
// fastest) and returns the number of voxels visited. The order is
// fixed: palette scans of RGB sources rely on it to produce the same
// insertion order on every pass.
func Visit(v *Volume, fn Visitor) int {
	if v == nil {
		return 0
	}
	count := 0
	lower, upper := v.region.Lower(), v.region.Upper()
	for z := lower[2]; z <= upper[2]; z++ {
		for y := lower[1]; y <= upper[1]; y++ {
			for x := lower[0]; x <= upper[0]; x++ {
				vox := v.At(x, y, z)
				if vox.IsAir() {
					continue
				}
				count++
				if fn != nil {
					fn(x, y, z, vox)
				}
			}
		}
	}
	return count
}

// VisitAll calls fn for every cell including air, in the same order as
// [Visit].
func VisitAll(v *Volume, fn Visitor) {
	if v == nil {
		return
	}
	lower, upper := v.region.Lower(), v.region.Upper()
	for z := lower[2]; z <= upper[2]; z++ {
		for y := lower[1]; y <= upper[1]; y++ {
			for x := lower[0]; x <= upper[0]; x++ {
				fn(x, y, z, v.At(x, y, z))
			}
		}
	}
}
