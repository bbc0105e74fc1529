package format

import (
	"fmt"
	"io"

	"github.com/voxelstack/carve"
)

// QBFormat reads and writes Qubicle Binary files. QB stores one RGBA
// color per voxel, so loading always reconciles colors into a palette
// and saving resolves palette indices back to colors. The alpha byte
// encodes visibility, not translucency: zero means the cell is empty.
type QBFormat struct{}

const (
	qbVersion       = 0x00000101
	qbCodeFlag      = 2
	qbNextSliceFlag = 6

	qbColorRGBA = 0
	qbColorBGRA = 1
)

func (*QBFormat) Desc() Desc {
	return Desc{Name: "Qubicle Binary", Exts: []string{"qb"}, Indexed: false}
}

// qbWalk decodes every matrix in the stream. For each matrix it calls
// begin with the matrix name and region and feeds every visible cell
// to the returned callback. Cells arrive in z, y, x order with x
// varying fastest, which keeps palette insertion order stable between
// LoadPalette and Load passes.
func qbWalk(r io.Reader, begin func(name string, region carve.Region) func(x, y, z int, c carve.Color)) error {
	version, err := readU32(r)
	if err != nil {
		return fmt.Errorf("qb: could not read header: %w", err)
	}
	if version != qbVersion {
		return fmt.Errorf("qb: unsupported version 0x%08x", version)
	}
	colorFormat, err := readU32(r)
	if err != nil {
		return err
	}
	if colorFormat != qbColorRGBA && colorFormat != qbColorBGRA {
		return fmt.Errorf("qb: unknown color format %d", colorFormat)
	}
	if _, err := readU32(r); err != nil { // z axis orientation
		return err
	}
	compressed, err := readU32(r)
	if err != nil {
		return err
	}
	if _, err := readU32(r); err != nil { // visibility mask encoding
		return err
	}
	numMatrices, err := readU32(r)
	if err != nil {
		return err
	}

	decode := func(raw uint32) (carve.Color, bool) {
		b := [4]byte{byte(raw), byte(raw >> 8), byte(raw >> 16), byte(raw >> 24)}
		if b[3] == 0 {
			return carve.Color{}, false
		}
		c := carve.Color{R: b[0], G: b[1], B: b[2], A: 255}
		if colorFormat == qbColorBGRA {
			c.R, c.B = c.B, c.R
		}
		return c, true
	}

	for m := uint32(0); m < numMatrices; m++ {
		nameLen, err := readU8(r)
		if err != nil {
			return fmt.Errorf("qb: truncated matrix header: %w", err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return err
		}
		var size [3]uint32
		for i := range size {
			if size[i], err = readU32(r); err != nil {
				return err
			}
		}
		var pos [3]int32
		for i := range pos {
			if pos[i], err = readI32(r); err != nil {
				return err
			}
		}
		if size[0] == 0 || size[1] == 0 || size[2] == 0 {
			return fmt.Errorf("qb: matrix %q has empty dimensions", name)
		}
		lower := carve.IVec3{int(pos[0]), int(pos[1]), int(pos[2])}
		upper := carve.IVec3{
			lower[0] + int(size[0]) - 1,
			lower[1] + int(size[1]) - 1,
			lower[2] + int(size[2]) - 1,
		}
		cell := begin(string(name), carve.NewRegion(lower, upper))

		if compressed == 0 {
			for z := 0; z < int(size[2]); z++ {
				for y := 0; y < int(size[1]); y++ {
					for x := 0; x < int(size[0]); x++ {
						raw, err := readU32(r)
						if err != nil {
							return fmt.Errorf("qb: truncated voxel data: %w", err)
						}
						if c, ok := decode(raw); ok {
							cell(lower[0]+x, lower[1]+y, lower[2]+z, c)
						}
					}
				}
			}
			continue
		}

		// RLE: per slice a stream of color words, with qbCodeFlag
		// introducing a count+color pair and qbNextSliceFlag ending
		// the slice.
		sliceCells := int(size[0]) * int(size[1])
		for z := 0; z < int(size[2]); z++ {
			index := 0
			for {
				data, err := readU32(r)
				if err != nil {
					return fmt.Errorf("qb: truncated slice: %w", err)
				}
				if data == qbNextSliceFlag {
					break
				}
				count := 1
				if data == qbCodeFlag {
					n, err := readU32(r)
					if err != nil {
						return err
					}
					if data, err = readU32(r); err != nil {
						return err
					}
					count = int(n)
				}
				if index+count > sliceCells {
					return fmt.Errorf("qb: run of %d cells overflows slice %d", count, z)
				}
				c, ok := decode(data)
				for i := 0; i < count; i++ {
					if ok {
						x := index % int(size[0])
						y := index / int(size[0])
						cell(lower[0]+x, lower[1]+y, lower[2]+z, c)
					}
					index++
				}
			}
		}
	}
	return nil
}

func (f *QBFormat) LoadPalette(r io.Reader) (int, *carve.Palette, error) {
	lookup := carve.NewPaletteLookup(nil)
	err := qbWalk(r, func(string, carve.Region) func(int, int, int, carve.Color) {
		return func(_, _, _ int, c carve.Color) {
			lookup.Lookup(c)
		}
	})
	if err != nil {
		return 0, nil, err
	}
	pal := lookup.Palette()
	return pal.ColorCount(), pal, nil
}

func (f *QBFormat) Load(r io.Reader) (*carve.Graph, error) {
	g := carve.NewGraph()
	lookup := carve.NewPaletteLookup(nil)
	var nodes []*carve.Node
	err := qbWalk(r, func(name string, region carve.Region) func(int, int, int, carve.Color) {
		n := carve.NewModelNode(name)
		v := carve.NewVolume(region)
		n.SetVolume(v)
		nodes = append(nodes, n)
		return func(x, y, z int, c carve.Color) {
			v.Set(x, y, z, carve.NewVoxel(carve.VoxelGeneric, lookup.Lookup(c)))
		}
	})
	if err != nil {
		return nil, err
	}
	pal := lookup.Palette()
	for _, n := range nodes {
		n.SetPalette(pal)
		if _, err := g.Emplace(n, carve.RootNodeID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (f *QBFormat) Save(g *carve.Graph, w io.Writer) error {
	var models []*carve.Node
	g.ForEachModel(func(n *carve.Node) {
		if n.Volume() != nil {
			models = append(models, n)
		}
	})

	for _, v := range []uint32{qbVersion, qbColorRGBA, 0, 0, 0, uint32(len(models))} {
		if err := writeU32(w, v); err != nil {
			return fmt.Errorf("qb: could not write header: %w", err)
		}
	}

	for _, n := range models {
		pal := g.PaletteFor(n)
		vol := n.Volume()
		region := vol.Region()
		name := n.Name
		if len(name) > 255 {
			name = name[:255]
		}
		if err := writeU8(w, uint8(len(name))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, name); err != nil {
			return err
		}
		dims := region.Dimensions()
		for i := 0; i < 3; i++ {
			if err := writeU32(w, uint32(dims[i])); err != nil {
				return err
			}
		}
		lower := region.Lower()
		for i := 0; i < 3; i++ {
			if err := writeI32(w, int32(lower[i])); err != nil {
				return err
			}
		}
		var werr error
		carve.VisitAll(vol, func(_, _, _ int, vox carve.Voxel) {
			if werr != nil {
				return
			}
			var raw uint32
			if !vox.IsAir() {
				c := pal.Color(int(vox.Index))
				raw = uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | 0xff000000
			}
			werr = writeU32(w, raw)
		})
		if werr != nil {
			return fmt.Errorf("qb: could not write matrix %q: %w", name, werr)
		}
	}
	return nil
}
