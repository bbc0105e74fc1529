package carve

// Crop copies the voxels of v into a new volume sized to the tightest
// region containing all non-air voxels, re-based so its lower corner
// becomes the local origin. An all-air volume crops to nil; a nil
// input is a no-op returning nil. Cropping an already-cropped volume
// returns an identical region and content.
func Crop(v *Volume) *Volume {
	if v == nil {
		return nil
	}
	tight := InvalidRegion
	Visit(v, func(x, y, z int, vox Voxel) {
		p := IVec3{x, y, z}
		tight = tight.Union(NewRegion(p, p))
	})
	if !tight.Valid() {
		return nil
	}
	out := NewVolume(NewRegion(IVec3{}, SubIVec3(tight.Upper(), tight.Lower())))
	base := tight.Lower()
	Visit(v, func(x, y, z int, vox Voxel) {
		out.Set(x-base[0], y-base[1], z-base[2], vox)
	})
	return out
}
