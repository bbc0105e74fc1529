package carve

// Split tiles v into sub-volumes of the given size, covering the
// original region with no gaps and no overlaps. The final tile on each
// axis is clipped to the original region rather than padded, so the
// union of the returned regions exactly equals v's region. Tiles that
// happen to contain only air are still returned, keeping the coverage
// complete. A nil input or non-positive tile size yields nil.
func Split(v *Volume, size IVec3) []*Volume {
	if v == nil {
		return nil
	}
	for _, d := range size {
		if d <= 0 {
			Logf("split with non-positive tile size %v skipped", size)
			return nil
		}
	}
	whole := v.Region()
	lo, up := whole.Lower(), whole.Upper()
	var out []*Volume
	for z := lo[2]; z <= up[2]; z += size[2] {
		for y := lo[1]; y <= up[1]; y += size[1] {
			for x := lo[0]; x <= up[0]; x += size[0] {
				corner := IVec3{x, y, z}
				tile := NewRegion(corner, SubIVec3(AddIVec3(corner, size), SplatIVec3(1))).Intersect(whole)
				sub := NewVolume(tile)
				tlo, tup := tile.Lower(), tile.Upper()
				for sz := tlo[2]; sz <= tup[2]; sz++ {
					for sy := tlo[1]; sy <= tup[1]; sy++ {
						for sx := tlo[0]; sx <= tup[0]; sx++ {
							if vox := v.At(sx, sy, sz); !vox.IsAir() {
								sub.Set(sx, sy, sz, vox)
							}
						}
					}
				}
				out = append(out, sub)
			}
		}
	}
	return out
}

// SplitGraph merges the whole graph into one volume, tiles it, and
// rebuilds the graph with one model node per tile, all sharing the
// unified palette. On merge failure the graph is left unchanged and
// the error is returned.
func SplitGraph(g *Graph, size IVec3) error {
	merged, pal, err := g.Merge()
	if err != nil {
		return err
	}
	tiles := Split(merged, size)
	g.Clear()
	for _, tile := range tiles {
		n := NewModelNode("")
		n.SetVolume(tile)
		n.SetPalette(pal)
		if _, err := g.Emplace(n, RootNodeID); err != nil {
			return err
		}
	}
	return nil
}
