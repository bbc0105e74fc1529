// Package carve is a format-neutral voxel model interchange engine.
//
// Carve reads voxel scenes out of incompatible file formats, reconciles
// their color models, and writes them back out — without color drift,
// without losing spatial layout, and without flattening scene hierarchy
// unless asked to.
//
// # Data model
//
// Every format loads into the same structures: a [Graph] of typed
// [Node] values, where model nodes own a dense [Volume] of voxels bound
// to an integer bounding [Region], and resolve voxel colors through an
// ordered [Palette] of up to 256 entries.
//
//	g := carve.NewGraph()
//	n := carve.NewModelNode("hull")
//	n.SetVolume(carve.NewVolume(carve.NewRegionSpan(0, 15)))
//	g.Emplace(n, 0)
//
// # Color reconciliation
//
// Formats fall into two camps: indexed formats store a palette and
// per-voxel indices; RGB formats store a raw color per voxel and have
// no palette at all. [PaletteLookup] bridges the two: it maps arriving
// colors to palette entries, appending new entries in arrival order
// while capacity remains and degrading to nearest-match once the
// palette is full. An RGB source with at most 256 distinct colors
// round-trips through an indexed format with every color intact, at
// the same palette position.
//
// # Operations
//
// [Graph.Merge] flattens a multi-node scene into a single volume and a
// single unified palette. [Crop], [Resize], [Rotate], [Mirror],
// [Rescale], [Split], and [Volume.Translate] are the geometric edit
// operations; each returns a freshly allocated volume and treats a nil
// input as a no-op.
//
// Codecs live in the format subpackage; the carve command wires it all
// into a converter tool.
package carve
