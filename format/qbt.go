package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/voxelstack/carve"
)

// QBTFormat reads and writes Qubicle Binary Tree files. The format is
// indexed: a colormap up front, then one zlib-compressed cell grid per
// model. Cells are uint16 values, zero for air and index+1 otherwise,
// so the full 256-entry palette range stays addressable. The colormap
// keeps alpha verbatim.
type QBTFormat struct{}

const qbtMagic = "QBT1"

func (*QBTFormat) Desc() Desc {
	return Desc{Name: "Qubicle Binary Tree", Exts: []string{"qbt"}, Indexed: true}
}

func qbtReadColormap(r io.Reader) (*carve.Palette, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("qbt: could not read magic: %w", err)
	}
	if string(magic[:]) != qbtMagic {
		return nil, fmt.Errorf("qbt: bad magic %q", magic)
	}
	count, err := readU16(r)
	if err != nil {
		return nil, err
	}
	if int(count) > carve.MaxPaletteColors {
		return nil, fmt.Errorf("qbt: colormap holds %d entries, at most %d allowed", count, carve.MaxPaletteColors)
	}
	raw := make([]byte, int(count)*4)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("qbt: truncated colormap: %w", err)
	}
	pal := carve.NewPalette()
	for i := 0; i < int(count); i++ {
		pal.Add(carve.Color{R: raw[i*4], G: raw[i*4+1], B: raw[i*4+2], A: raw[i*4+3]})
	}
	return pal, nil
}

func (f *QBTFormat) LoadPalette(r io.Reader) (int, *carve.Palette, error) {
	pal, err := qbtReadColormap(r)
	if err != nil {
		return 0, nil, err
	}
	return pal.ColorCount(), pal, nil
}

func (f *QBTFormat) Load(r io.Reader) (*carve.Graph, error) {
	pal, err := qbtReadColormap(r)
	if err != nil {
		return nil, err
	}
	modelCount, err := readU32(r)
	if err != nil {
		return nil, err
	}

	g := carve.NewGraph()
	for m := uint32(0); m < modelCount; m++ {
		nameLen, err := readU8(r)
		if err != nil {
			return nil, fmt.Errorf("qbt: truncated model header: %w", err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}
		var lower carve.IVec3
		for i := range lower {
			v, err := readI32(r)
			if err != nil {
				return nil, err
			}
			lower[i] = int(v)
		}
		var size carve.IVec3
		for i := range size {
			v, err := readU32(r)
			if err != nil {
				return nil, err
			}
			size[i] = int(v)
		}
		if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
			return nil, fmt.Errorf("qbt: model %q has empty dimensions", name)
		}
		payloadLen, err := readU32(r)
		if err != nil {
			return nil, err
		}
		lr := io.LimitReader(r, int64(payloadLen))
		zr, err := zlib.NewReader(lr)
		if err != nil {
			return nil, fmt.Errorf("qbt: model %q payload: %w", name, err)
		}
		cells := make([]byte, size[0]*size[1]*size[2]*2)
		if _, err := io.ReadFull(zr, cells); err != nil {
			zr.Close()
			return nil, fmt.Errorf("qbt: model %q payload: %w", name, err)
		}
		zr.Close()
		// The decompressor may stop short of the declared payload
		// length; drain it so the next model header lines up.
		if _, err := io.Copy(io.Discard, lr); err != nil {
			return nil, err
		}

		region := carve.NewRegion(lower, carve.AddIVec3(lower, carve.IVec3{size[0] - 1, size[1] - 1, size[2] - 1}))
		vol := carve.NewVolume(region)
		off := 0
		for z := lower[2]; z < lower[2]+size[2]; z++ {
			for y := lower[1]; y < lower[1]+size[1]; y++ {
				for x := lower[0]; x < lower[0]+size[0]; x++ {
					cell := uint16(cells[off]) | uint16(cells[off+1])<<8
					off += 2
					if cell == 0 {
						continue
					}
					if int(cell)-1 >= pal.ColorCount() {
						return nil, fmt.Errorf("qbt: model %q references color %d outside the colormap", name, cell-1)
					}
					vol.Set(x, y, z, carve.NewVoxel(carve.VoxelGeneric, uint8(cell-1)))
				}
			}
		}
		n := carve.NewModelNode(string(name))
		n.SetVolume(vol)
		n.SetPalette(pal)
		if _, err := g.Emplace(n, carve.RootNodeID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (f *QBTFormat) Save(g *carve.Graph, w io.Writer) error {
	var models []*carve.Node
	g.ForEachModel(func(n *carve.Node) {
		if n.Volume() != nil {
			models = append(models, n)
		}
	})

	pal := g.FirstPalette()
	if pal == nil {
		pal = carve.NewPalette()
	}

	if _, err := io.WriteString(w, qbtMagic); err != nil {
		return fmt.Errorf("qbt: could not write magic: %w", err)
	}
	if err := writeU16(w, uint16(pal.ColorCount())); err != nil {
		return err
	}
	for _, c := range pal.Colors() {
		if _, err := w.Write([]byte{c.R, c.G, c.B, c.A}); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(models))); err != nil {
		return err
	}

	for _, n := range models {
		vol := n.Volume()
		nodePal := g.PaletteFor(n)
		remap := nodePal != pal && !nodePal.Equal(pal)

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
		region := vol.Region()
		for _, v := range region.Lower() {
			if err := writeI32(w, int32(v)); err != nil {
				return err
			}
		}
		for _, v := range region.Dimensions() {
			if err := writeU32(w, uint32(v)); err != nil {
				return err
			}
		}

		var payload bytes.Buffer
		zw := zlib.NewWriter(&payload)
		var cell [2]byte
		var werr error
		carve.VisitAll(vol, func(_, _, _ int, vox carve.Voxel) {
			if werr != nil {
				return
			}
			var v uint16
			if !vox.IsAir() {
				idx := int(vox.Index)
				// Palette.Equal compares the overlapping range only,
				// so a node palette extending pal still slips through
				// the remap guard; indices past the colormap end must
				// degrade regardless.
				if remap || idx >= pal.ColorCount() {
					idx = pal.Closest(nodePal.Color(idx))
				}
				v = uint16(idx) + 1
			}
			cell[0], cell[1] = byte(v), byte(v>>8)
			_, werr = zw.Write(cell[:])
		})
		if werr == nil {
			werr = zw.Close()
		}
		if werr != nil {
			return fmt.Errorf("qbt: could not compress model %q: %w", name, werr)
		}
		if err := writeU32(w, uint32(payload.Len())); err != nil {
			return err
		}
		if _, err := w.Write(payload.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
