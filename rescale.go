package carve

// Rescale down-samples v to half its dimensions: the destination spans
// the source's lower corner plus half the source dimensions minus one
// per axis. Each destination cell samples its 2x2x2 source block and
// resolves a representative voxel by voting: the most frequent non-air
// COLOR in the block wins (colors resolved through pal, so duplicate
// palette entries vote together), air when the block is empty. Ties go
// to the color seen first. The palette is left untouched.
//
// Sources too small to halve (any dimension < 2) yield nil.
func Rescale(v *Volume, pal *Palette) *Volume {
	if v == nil {
		return nil
	}
	src := v.Region()
	half := SubIVec3(IVec3{
		src.Dimensions()[0] / 2,
		src.Dimensions()[1] / 2,
		src.Dimensions()[2] / 2,
	}, SplatIVec3(1))
	dst := NewRegion(src.Lower(), AddIVec3(src.Lower(), half))
	if !dst.Valid() {
		Logf("volume %s is too small to rescale", src)
		return nil
	}

	out := NewVolume(dst)
	lo, up := dst.Lower(), dst.Upper()
	base := src.Lower()
	for z := lo[2]; z <= up[2]; z++ {
		for y := lo[1]; y <= up[1]; y++ {
			for x := lo[0]; x <= up[0]; x++ {
				if vox, ok := blockVote(v, pal, base, IVec3{x - lo[0], y - lo[1], z - lo[2]}); ok {
					out.Set(x, y, z, vox)
				}
			}
		}
	}
	return out
}

// blockVote picks the representative voxel for the 2x2x2 source block
// at base + 2*rel.
func blockVote(v *Volume, pal *Palette, base, rel IVec3) (Voxel, bool) {
	type tally struct {
		vox   Voxel
		count int
	}
	var votes []tally
	for dz := 0; dz < 2; dz++ {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				vox := v.At(base[0]+rel[0]*2+dx, base[1]+rel[1]*2+dy, base[2]+rel[2]*2+dz)
				if vox.IsAir() {
					continue
				}
				c := pal.Color(int(vox.Index))
				found := false
				for i := range votes {
					if pal.Color(int(votes[i].vox.Index)) == c {
						votes[i].count++
						found = true
						break
					}
				}
				if !found {
					votes = append(votes, tally{vox: vox, count: 1})
				}
			}
		}
	}
	best := -1
	for i := range votes {
		if best < 0 || votes[i].count > votes[best].count {
			best = i
		}
	}
	if best < 0 {
		return AirVoxel, false
	}
	return votes[best].vox, true
}
