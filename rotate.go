package carve

import "math"

// Rotate resamples v rotated by the given degrees about the volume
// center on the given axis. Degrees are normalized by modulo 360 (into
// (0, 360) for negative input); a normalized step of 1 degree or less
// is logged and returns v unchanged rather than failing.
//
// The destination bounds come from [Region.Rotate], so the result is
// the enclosing AABB of the rotated source, not a volume-preserving
// remap. Each destination cell inverse-transforms its coordinate back
// into source space and nearest-samples the source voxel; coordinates
// landing outside the source stay air.
func Rotate(v *Volume, axis Axis, degrees float64) *Volume {
	if v == nil {
		return nil
	}
	deg := math.Mod(degrees, 360)
	if deg < 0 {
		deg += 360
	}
	if deg <= 1 {
		Logf("not rotating on axis %s by %.2f degrees", axis, deg)
		return v
	}
	rad := deg * math.Pi / 180
	var m Mat3
	switch axis {
	case AxisX:
		m = RotationX(rad)
	case AxisY:
		m = RotationY(rad)
	case AxisZ:
		m = RotationZ(rad)
	default:
		Logf("not rotating: no axis given")
		return v
	}

	pivot := v.Region().Center()
	out := NewVolume(v.Region().Rotate(&m, pivot))
	var inv Mat3
	inv.Transpose(&m)

	lo, up := out.Region().Lower(), out.Region().Upper()
	for z := lo[2]; z <= up[2]; z++ {
		for y := lo[1]; y <= up[1]; y++ {
			for x := lo[0]; x <= up[0]; x++ {
				p := Vec3{float64(x), float64(y), float64(z)}
				s := AddVec3(inv.Apply(SubVec3(p, pivot)), pivot)
				sx := int(math.Round(s[0]))
				sy := int(math.Round(s[1]))
				sz := int(math.Round(s[2]))
				if vox := v.At(sx, sy, sz); !vox.IsAir() {
					out.Set(x, y, z, vox)
				}
			}
		}
	}
	return out
}
