package carve

import "testing"

func TestCropTightensAndRebases(t *testing.T) {
	v := NewVolume(NewRegionSpan(0, 15))
	v.Set(4, 5, 6, NewVoxel(VoxelGeneric, 1))
	v.Set(8, 9, 10, NewVoxel(VoxelGeneric, 2))

	c := Crop(v)
	if c == nil {
		t.Fatal("crop of a non-empty volume returned nil")
	}
	assertRegion(t, "rebased region", c.Region(), NewRegion(IVec3{0, 0, 0}, IVec3{4, 4, 4}))
	assertVoxel(t, "first voxel", c.At(0, 0, 0), NewVoxel(VoxelGeneric, 1))
	assertVoxel(t, "second voxel", c.At(4, 4, 4), NewVoxel(VoxelGeneric, 2))
	assertInt(t, "voxel count", Visit(c, nil), 2)
}

func TestCropIdempotent(t *testing.T) {
	v := NewVolume(NewRegion(IVec3{-3, -3, -3}, IVec3{12, 12, 12}))
	v.Set(0, 1, 2, NewVoxel(VoxelGeneric, 7))
	v.Set(5, 5, 5, NewVoxel(VoxelGeneric, 8))

	once := Crop(v)
	twice := Crop(once)
	assertTrue(t, "crop(crop(v)) == crop(v)", once.Equal(twice))
}

func TestCropAllAir(t *testing.T) {
	if Crop(NewVolume(NewRegionSpan(0, 7))) != nil {
		t.Fatal("cropping an all-air volume should yield nil")
	}
}

func TestCropNil(t *testing.T) {
	if Crop(nil) != nil {
		t.Fatal("crop of nil should be a nil no-op")
	}
}
