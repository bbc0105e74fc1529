package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/carve"
)

// knightColors is a 17-entry palette in a fixed order, the shape of a
// small character model's color set.
var knightColors = []carve.Color{
	{R: 32, G: 32, B: 32, A: 255},
	{R: 64, G: 64, B: 64, A: 255},
	{R: 128, G: 128, B: 128, A: 255},
	{R: 192, G: 192, B: 192, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
	{R: 120, G: 64, B: 16, A: 255},
	{R: 160, G: 96, B: 32, A: 255},
	{R: 200, G: 128, B: 48, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 180, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 0, G: 0, B: 180, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 0, G: 128, B: 0, A: 255},
	{R: 0, G: 255, B: 128, A: 255},
	{R: 128, G: 0, B: 255, A: 255},
	{R: 255, G: 128, B: 192, A: 255},
}

// knightGraph builds a single-model graph that uses every knight color
// exactly in palette order along the x axis, plus a second row that
// reuses a few colors.
func knightGraph(t *testing.T) *carve.Graph {
	t.Helper()
	pal := carve.NewPalette()
	for _, c := range knightColors {
		_, err := pal.Add(c)
		require.NoError(t, err)
	}

	vol := carve.NewVolume(carve.NewRegion(carve.IVec3{}, carve.IVec3{16, 1, 0}))
	for i := range knightColors {
		vol.Set(i, 0, 0, carve.NewVoxel(carve.VoxelGeneric, uint8(i)))
	}
	for i := 0; i < 5; i++ {
		vol.Set(i, 1, 0, carve.NewVoxel(carve.VoxelGeneric, uint8(i*3)))
	}

	g := carve.NewGraph()
	n := carve.NewModelNode("knight")
	n.SetVolume(vol)
	n.SetPalette(pal)
	_, err := g.Emplace(n, carve.RootNodeID)
	require.NoError(t, err)
	return g
}

// firstVolume returns the first model volume of a loaded graph.
func firstVolume(t *testing.T, g *carve.Graph) *carve.Volume {
	t.Helper()
	var vol *carve.Volume
	g.ForEachModel(func(n *carve.Node) {
		if vol == nil {
			vol = n.Volume()
		}
	})
	require.NotNil(t, vol)
	return vol
}

// saveLoad runs g through a save/load cycle on the given codec.
func saveLoad(t *testing.T, f Format, g *carve.Graph) *carve.Graph {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Save(g, &buf))
	out, err := f.Load(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return out
}

// encode saves g with the codec and returns the raw bytes.
func encode(t *testing.T, f Format, g *carve.Graph) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Save(g, &buf))
	return buf.Bytes()
}

// resolve maps every solid voxel of vol to its color through pal,
// keyed by coordinate.
func resolve(t *testing.T, vol *carve.Volume, pal *carve.Palette) map[carve.IVec3]carve.Color {
	t.Helper()
	out := map[carve.IVec3]carve.Color{}
	carve.Visit(vol, func(x, y, z int, vox carve.Voxel) {
		out[carve.IVec3{x, y, z}] = pal.Color(int(vox.Index))
	})
	return out
}

// silenceLogs mutes the package logger for one test.
func silenceLogs(t *testing.T) {
	t.Helper()
	prev := carve.Logf
	carve.Logf = func(string, ...interface{}) {}
	t.Cleanup(func() { carve.Logf = prev })
}
