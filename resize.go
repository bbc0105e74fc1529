package carve

// Resize re-allocates v to the given size, keeping the lower corner.
// Voxels at coordinates shared by the old and new regions are copied;
// newly exposed cells are air and shrinking discards voxels outside
// the new bounds. A non-positive size or nil input yields nil.
func Resize(v *Volume, size IVec3) *Volume {
	if v == nil {
		return nil
	}
	for _, d := range size {
		if d <= 0 {
			Logf("resize to non-positive dimensions %v skipped", size)
			return nil
		}
	}
	lower := v.Region().Lower()
	out := NewVolume(NewRegion(lower, SubIVec3(AddIVec3(lower, size), SplatIVec3(1))))
	overlap := v.Region().Intersect(out.Region())
	if !overlap.Valid() {
		return out
	}
	lo, up := overlap.Lower(), overlap.Upper()
	for z := lo[2]; z <= up[2]; z++ {
		for y := lo[1]; y <= up[1]; y++ {
			for x := lo[0]; x <= up[0]; x++ {
				out.Set(x, y, z, v.At(x, y, z))
			}
		}
	}
	return out
}
