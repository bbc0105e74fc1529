package format

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voxelstack/carve"
)

// SproxelFormat reads and writes Sproxel CSV files. The first record
// holds the grid dimensions; the rest is one "#RRGGBBAA" field per
// cell, written slice by slice from the top layer down. A zero alpha
// marks an empty cell, and like every RGB-per-voxel source the loaded
// palette entries are forced opaque.
type SproxelFormat struct{}

func (*SproxelFormat) Desc() Desc {
	return Desc{Name: "Sproxel CSV", Exts: []string{"csv"}, Indexed: false}
}

func sproxelParseCell(field string) (carve.Color, bool, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return carve.Color{}, false, nil
	}
	if !strings.HasPrefix(s, "#") || len(s) != 9 {
		return carve.Color{}, false, fmt.Errorf("sproxel: malformed cell %q", field)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return carve.Color{}, false, fmt.Errorf("sproxel: malformed cell %q: %w", field, err)
	}
	if byte(v) == 0 { // alpha
		return carve.Color{}, false, nil
	}
	return carve.Color{R: byte(v >> 24), G: byte(v >> 16), B: byte(v >> 8), A: 255}, true, nil
}

// sproxelWalk parses the grid, announces its dimensions through begin
// and feeds every solid cell to cell in the fixed volume visit order,
// so palette insertion order matches a Visit pass over the loaded
// volume.
func sproxelWalk(r io.Reader, begin func(dims carve.IVec3), cell func(x, y, z int, c carve.Color)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("sproxel: could not read dimensions: %w", err)
	}
	if len(header) != 3 {
		return fmt.Errorf("sproxel: dimension record has %d fields, want 3", len(header))
	}
	var dims carve.IVec3
	for i, f := range header {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v <= 0 {
			return fmt.Errorf("sproxel: bad dimension %q", f)
		}
		dims[i] = v
	}
	if begin != nil {
		begin(dims)
	}

	// Rows run top layer first (y descending), z ascending inside a
	// layer. Buffer the whole grid so cells can be replayed in the
	// canonical z, y, x order.
	grid := make([]carve.Color, dims[0]*dims[1]*dims[2])
	solid := make([]bool, len(grid))
	for y := dims[1] - 1; y >= 0; y-- {
		for z := 0; z < dims[2]; z++ {
			rec, err := cr.Read()
			if err != nil {
				return fmt.Errorf("sproxel: truncated grid: %w", err)
			}
			if len(rec) != dims[0] {
				return fmt.Errorf("sproxel: row has %d cells, want %d", len(rec), dims[0])
			}
			for x := 0; x < dims[0]; x++ {
				c, ok, err := sproxelParseCell(rec[x])
				if err != nil {
					return err
				}
				if ok {
					i := (z*dims[1]+y)*dims[0] + x
					grid[i], solid[i] = c, true
				}
			}
		}
	}
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				i := (z*dims[1]+y)*dims[0] + x
				if solid[i] {
					cell(x, y, z, grid[i])
				}
			}
		}
	}
	return nil
}

func (f *SproxelFormat) LoadPalette(r io.Reader) (int, *carve.Palette, error) {
	lookup := carve.NewPaletteLookup(nil)
	err := sproxelWalk(r, nil, func(_, _, _ int, c carve.Color) {
		lookup.Lookup(c)
	})
	if err != nil {
		return 0, nil, err
	}
	pal := lookup.Palette()
	return pal.ColorCount(), pal, nil
}

func (f *SproxelFormat) Load(r io.Reader) (*carve.Graph, error) {
	lookup := carve.NewPaletteLookup(nil)
	var vol *carve.Volume
	err := sproxelWalk(r, func(dims carve.IVec3) {
		vol = carve.NewVolume(carve.NewRegion(carve.IVec3{}, carve.IVec3{dims[0] - 1, dims[1] - 1, dims[2] - 1}))
	}, func(x, y, z int, c carve.Color) {
		vol.Set(x, y, z, carve.NewVoxel(carve.VoxelGeneric, lookup.Lookup(c)))
	})
	if err != nil {
		return nil, err
	}
	g := carve.NewGraph()
	n := carve.NewModelNode("sproxel")
	n.SetVolume(vol)
	n.SetPalette(lookup.Palette())
	if _, err := g.Emplace(n, carve.RootNodeID); err != nil {
		return nil, err
	}
	return g, nil
}

func (f *SproxelFormat) Save(g *carve.Graph, w io.Writer) error {
	var model *carve.Node
	g.ForEachModel(func(n *carve.Node) {
		if model == nil && n.Volume() != nil {
			model = n
		}
	})
	if model == nil {
		return fmt.Errorf("sproxel: nothing to save, graph has no model with a volume")
	}
	if g.Size() > 1 {
		carve.Logf("sproxel: format holds a single grid, saving only %q", model.Name)
	}

	pal := g.PaletteFor(model)
	vol := model.Volume()
	region := vol.Region()
	dims := region.Dimensions()
	lower := region.Lower()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d,%d,%d\r\n", dims[0], dims[1], dims[2])
	for y := dims[1] - 1; y >= 0; y-- {
		for z := 0; z < dims[2]; z++ {
			for x := 0; x < dims[0]; x++ {
				if x > 0 {
					bw.WriteByte(',')
				}
				vox := vol.At(lower[0]+x, lower[1]+y, lower[2]+z)
				if vox.IsAir() {
					bw.WriteString("#00000000")
					continue
				}
				c := pal.Color(int(vox.Index))
				fmt.Fprintf(bw, "#%02X%02X%02XFF", c.R, c.G, c.B)
			}
			bw.WriteString("\r\n")
		}
		bw.WriteString("\r\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sproxel: could not write grid: %w", err)
	}
	return nil
}
