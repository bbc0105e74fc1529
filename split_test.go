package carve

import "testing"

func TestSplitCoverageExact(t *testing.T) {
	v := NewVolume(NewRegionSpan(0, 9))
	v.Set(0, 0, 0, NewVoxel(VoxelGeneric, 1))
	v.Set(9, 9, 9, NewVoxel(VoxelGeneric, 2))

	tiles := Split(v, IVec3{4, 4, 4})
	// 10/4 -> tiles of extent 4,4,2 per axis: 3 per axis, 27 total.
	assertInt(t, "tile count", len(tiles), 27)

	// No gaps, no overlaps: every cell of the original region belongs
	// to exactly one tile, and the union of tile regions is the
	// original region.
	union := InvalidRegion
	cells := 0
	for _, tile := range tiles {
		r := tile.Region()
		union = union.Union(r)
		cells += r.VoxelCount()
		for _, other := range tiles {
			if other != tile && r.Intersect(other.Region()).Valid() {
				t.Fatalf("tiles %s and %s overlap", r, other.Region())
			}
		}
	}
	assertRegion(t, "union equals original", union, v.Region())
	assertInt(t, "cell budget", cells, v.Region().VoxelCount())
}

func TestSplitClipsPartialTiles(t *testing.T) {
	v := NewVolume(NewRegionSpan(0, 4))
	tiles := Split(v, IVec3{3, 3, 3})
	assertInt(t, "tile count", len(tiles), 8)
	last := tiles[len(tiles)-1]
	assertRegion(t, "clipped corner tile", last.Region(), NewRegionSpan(3, 4))
}

func TestSplitKeepsContent(t *testing.T) {
	v := NewVolume(NewRegionSpan(0, 5))
	v.Set(5, 5, 5, NewVoxel(VoxelGeneric, 8))
	tiles := Split(v, IVec3{3, 3, 3})
	total := 0
	for _, tile := range tiles {
		total += Visit(tile, nil)
	}
	assertInt(t, "voxels preserved", total, 1)
}

func TestSplitRejectsBadSize(t *testing.T) {
	logged := silenceLogs(t)
	if Split(NewVolume(NewRegionSpan(0, 1)), IVec3{0, 1, 1}) != nil {
		t.Fatal("non-positive tile size should yield nil")
	}
	assertInt(t, "warned", *logged, 1)
	if Split(nil, IVec3{2, 2, 2}) != nil {
		t.Fatal("nil input should stay nil")
	}
}

func TestSplitGraphRebuildsNodes(t *testing.T) {
	g := NewGraph()
	pal := NewPalette()
	pal.Add(Color{200, 100, 0, 255})
	n := NewModelNode("big")
	v := NewVolume(NewRegionSpan(0, 5))
	v.Set(0, 0, 0, NewVoxel(VoxelGeneric, 0))
	n.SetVolume(v)
	n.SetPalette(pal)
	g.Emplace(n, RootNodeID)

	if err := SplitGraph(g, IVec3{3, 3, 3}); err != nil {
		t.Fatalf("SplitGraph: %v", err)
	}
	assertInt(t, "nodes", g.Size(), 8)
	g.ForEachModel(func(n *Node) {
		if n.OwnPalette() == nil {
			t.Fatal("split nodes must share the unified palette")
		}
	})
}

func TestSplitGraphNoModels(t *testing.T) {
	g := NewGraph()
	if err := SplitGraph(g, IVec3{2, 2, 2}); err != ErrNoModels {
		t.Fatalf("err = %v, want ErrNoModels", err)
	}
	// The graph is untouched on failure.
	if g.Root() == nil {
		t.Fatal("graph damaged by failed split")
	}
}
