package carve

import "errors"

// ErrNoModels is returned by [Graph.Merge] when the graph has no model
// node with a volume to flatten. Callers must treat it as a hard
// failure, not as an empty result.
var ErrNoModels = errors.New("carve: no model nodes to merge")

// Merge flattens every model node's volume and palette into a single
// volume over the union region and a single unified palette.
//
// Nodes are visited in insertion order; each non-air voxel is resolved
// to a color through its own node's palette and rewritten through one
// shared [PaletteLookup], deduplicating colors across nodes. Where
// volumes overlap, later nodes win — no blending. The graph itself is
// left untouched; ownership of the returned volume and palette passes
// to the caller.
func (g *Graph) Merge() (*Volume, *Palette, error) {
	union := InvalidRegion
	var sources []*Node
	g.ForEachModel(func(n *Node) {
		if n.volume == nil {
			return
		}
		union = union.Union(n.volume.Region())
		sources = append(sources, n)
	})
	if len(sources) == 0 || !union.Valid() {
		return nil, nil, ErrNoModels
	}

	dest := NewVolume(union)
	lookup := NewPaletteLookup(nil)
	for _, n := range sources {
		pal := g.PaletteFor(n)
		Visit(n.volume, func(x, y, z int, vox Voxel) {
			idx := lookup.Lookup(pal.Color(int(vox.Index)))
			dest.Set(x, y, z, NewVoxel(VoxelGeneric, idx))
		})
	}
	return dest, lookup.Palette(), nil
}
