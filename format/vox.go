package format

import (
	"fmt"
	"io"

	"github.com/voxelstack/carve"
)

// VoxFormat reads and writes MagicaVoxel-style chunked files. The
// format is indexed: every voxel carries a one-based color index into
// a 256-entry RGBA table, and index zero marks an empty cell. Trailing
// all-zero table entries are not part of the palette, so a file saved
// from a 17-color palette loads back as a 17-color palette.
type VoxFormat struct{}

const (
	voxMagic        = "VOX "
	voxVersion      = 150
	voxTableEntries = 256
	// ci is index+1 and must fit a byte, so at most 255 palette
	// entries survive a save.
	voxMaxColors = voxTableEntries - 1
)

func (*VoxFormat) Desc() Desc {
	return Desc{Name: "MagicaVoxel", Exts: []string{"vox"}, Indexed: true}
}

type voxChunk struct {
	id           string
	contentSize  uint32
	childrenSize uint32
}

func voxReadChunk(r io.Reader) (voxChunk, error) {
	var id [4]byte
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return voxChunk{}, err
	}
	content, err := readU32(r)
	if err != nil {
		return voxChunk{}, err
	}
	children, err := readU32(r)
	if err != nil {
		return voxChunk{}, err
	}
	return voxChunk{id: string(id[:]), contentSize: content, childrenSize: children}, nil
}

func voxReadHeader(r io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("vox: could not read magic: %w", err)
	}
	if string(magic[:]) != voxMagic {
		return fmt.Errorf("vox: bad magic %q", magic)
	}
	version, err := readU32(r)
	if err != nil {
		return err
	}
	if version > voxVersion {
		carve.Logf("vox: file version %d is newer than %d, loading anyway", version, voxVersion)
	}
	main, err := voxReadChunk(r)
	if err != nil {
		return err
	}
	if main.id != "MAIN" {
		return fmt.Errorf("vox: expected MAIN chunk, got %q", main.id)
	}
	return skip(r, int64(main.contentSize))
}

// voxReadTable turns a raw 256-entry RGBA table into a palette,
// trimming the trailing all-zero entries that pad the table.
func voxReadTable(raw []byte) *carve.Palette {
	count := voxTableEntries
	for count > 0 {
		off := (count - 1) * 4
		if raw[off] != 0 || raw[off+1] != 0 || raw[off+2] != 0 || raw[off+3] != 0 {
			break
		}
		count--
	}
	pal := carve.NewPalette()
	for i := 0; i < count; i++ {
		pal.Add(carve.Color{R: raw[i*4], G: raw[i*4+1], B: raw[i*4+2], A: raw[i*4+3]})
	}
	return pal
}

func (f *VoxFormat) LoadPalette(r io.Reader) (int, *carve.Palette, error) {
	if err := voxReadHeader(r); err != nil {
		return 0, nil, err
	}
	for {
		c, err := voxReadChunk(r)
		if err == io.EOF {
			return 0, nil, fmt.Errorf("vox: no RGBA chunk in file")
		}
		if err != nil {
			return 0, nil, err
		}
		if c.id != "RGBA" {
			// Geometry payloads are skipped wholesale; the palette
			// never needs them.
			if err := skip(r, int64(c.contentSize)+int64(c.childrenSize)); err != nil {
				return 0, nil, err
			}
			continue
		}
		if c.contentSize < voxTableEntries*4 {
			return 0, nil, fmt.Errorf("vox: short RGBA chunk (%d bytes)", c.contentSize)
		}
		raw := make([]byte, voxTableEntries*4)
		if _, err := io.ReadFull(r, raw); err != nil {
			return 0, nil, err
		}
		pal := voxReadTable(raw)
		return pal.ColorCount(), pal, nil
	}
}

func (f *VoxFormat) Load(r io.Reader) (*carve.Graph, error) {
	if err := voxReadHeader(r); err != nil {
		return nil, err
	}

	type voxModel struct {
		size   carve.IVec3
		voxels []byte // x, y, z, ci quads
	}
	var (
		models  []voxModel
		pending *voxModel
		pal     *carve.Palette
	)
	for {
		c, err := voxReadChunk(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch c.id {
		case "SIZE":
			if c.contentSize < 12 {
				return nil, fmt.Errorf("vox: short SIZE chunk")
			}
			var size carve.IVec3
			for i := range size {
				v, err := readU32(r)
				if err != nil {
					return nil, err
				}
				size[i] = int(v)
			}
			if err := skip(r, int64(c.contentSize)-12); err != nil {
				return nil, err
			}
			models = append(models, voxModel{size: size})
			pending = &models[len(models)-1]
		case "XYZI":
			if pending == nil {
				return nil, fmt.Errorf("vox: XYZI chunk without preceding SIZE")
			}
			n, err := readU32(r)
			if err != nil {
				return nil, err
			}
			if 4+int64(n)*4 > int64(c.contentSize) {
				return nil, fmt.Errorf("vox: XYZI declares %d voxels but holds %d bytes", n, c.contentSize)
			}
			pending.voxels = make([]byte, n*4)
			if _, err := io.ReadFull(r, pending.voxels); err != nil {
				return nil, err
			}
			if err := skip(r, int64(c.contentSize)-4-int64(n)*4); err != nil {
				return nil, err
			}
			pending = nil
		case "RGBA":
			if c.contentSize < voxTableEntries*4 {
				return nil, fmt.Errorf("vox: short RGBA chunk (%d bytes)", c.contentSize)
			}
			raw := make([]byte, voxTableEntries*4)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, err
			}
			if err := skip(r, int64(c.contentSize)-voxTableEntries*4); err != nil {
				return nil, err
			}
			pal = voxReadTable(raw)
		default:
			if err := skip(r, int64(c.contentSize)+int64(c.childrenSize)); err != nil {
				return nil, err
			}
		}
	}
	if pal == nil {
		return nil, fmt.Errorf("vox: no RGBA chunk in file")
	}

	g := carve.NewGraph()
	for i, m := range models {
		if m.size[0] <= 0 || m.size[1] <= 0 || m.size[2] <= 0 {
			return nil, fmt.Errorf("vox: model %d has empty dimensions", i)
		}
		region := carve.NewRegion(carve.IVec3{}, carve.IVec3{m.size[0] - 1, m.size[1] - 1, m.size[2] - 1})
		vol := carve.NewVolume(region)
		for off := 0; off+4 <= len(m.voxels); off += 4 {
			ci := m.voxels[off+3]
			if ci == 0 {
				continue
			}
			vol.Set(int(m.voxels[off]), int(m.voxels[off+1]), int(m.voxels[off+2]),
				carve.NewVoxel(carve.VoxelGeneric, ci-1))
		}
		n := carve.NewModelNode(fmt.Sprintf("model %d", i))
		n.SetVolume(vol)
		n.SetPalette(pal)
		if _, err := g.Emplace(n, carve.RootNodeID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (f *VoxFormat) Save(g *carve.Graph, w io.Writer) error {
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
	if pal.ColorCount() > voxMaxColors {
		carve.Logf("vox: palette has %d colors, entries past %d are remapped to their closest match",
			pal.ColorCount(), voxMaxColors)
	}

	// Remap voxels into the output palette. Nodes already on that
	// palette keep their indices; anything bigger than the table
	// degrades to the closest storable color.
	index := func(n *carve.Node, vox carve.Voxel) uint8 {
		nodePal := g.PaletteFor(n)
		idx := int(vox.Index)
		// Palette.Equal compares the overlapping range only, so a
		// node palette extending pal passes it; indices past the
		// table end must degrade regardless.
		if (nodePal != pal && !nodePal.Equal(pal)) || idx >= pal.ColorCount() {
			idx = pal.Closest(nodePal.Color(idx))
		}
		if idx >= voxMaxColors {
			idx = voxMaxColors - 1
		}
		return uint8(idx)
	}

	// Body chunks are buffered so MAIN can carry their total size.
	type modelChunk struct {
		size  carve.IVec3
		quads []byte
	}
	chunks := make([]modelChunk, 0, len(models))
	for _, n := range models {
		vol := n.Volume()
		lower := vol.Region().Lower()
		dims := vol.Region().Dimensions()
		if dims[0] > 256 || dims[1] > 256 || dims[2] > 256 {
			return fmt.Errorf("vox: model %q is %s, larger than 256 per axis", n.Name, vol.Region())
		}
		mc := modelChunk{size: dims}
		carve.Visit(vol, func(x, y, z int, vox carve.Voxel) {
			mc.quads = append(mc.quads,
				byte(x-lower[0]), byte(y-lower[1]), byte(z-lower[2]), index(n, vox)+1)
		})
		chunks = append(chunks, mc)
	}

	childrenSize := 12 + voxTableEntries*4 // RGBA chunk
	for _, mc := range chunks {
		childrenSize += 12 + 12                // SIZE chunk
		childrenSize += 12 + 4 + len(mc.quads) // XYZI chunk
	}

	if _, err := io.WriteString(w, voxMagic); err != nil {
		return fmt.Errorf("vox: could not write header: %w", err)
	}
	if err := writeU32(w, voxVersion); err != nil {
		return err
	}
	writeChunk := func(id string, content, children int) error {
		if _, err := io.WriteString(w, id); err != nil {
			return err
		}
		if err := writeU32(w, uint32(content)); err != nil {
			return err
		}
		return writeU32(w, uint32(children))
	}
	if err := writeChunk("MAIN", 0, childrenSize); err != nil {
		return err
	}
	for _, mc := range chunks {
		if err := writeChunk("SIZE", 12, 0); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if err := writeU32(w, uint32(mc.size[i])); err != nil {
				return err
			}
		}
		if err := writeChunk("XYZI", 4+len(mc.quads), 0); err != nil {
			return err
		}
		if err := writeU32(w, uint32(len(mc.quads)/4)); err != nil {
			return err
		}
		if _, err := w.Write(mc.quads); err != nil {
			return err
		}
	}
	if err := writeChunk("RGBA", voxTableEntries*4, 0); err != nil {
		return err
	}
	table := make([]byte, voxTableEntries*4)
	count := pal.ColorCount()
	if count > voxMaxColors {
		count = voxMaxColors
	}
	for i := 0; i < count; i++ {
		c := pal.Color(i)
		table[i*4], table[i*4+1], table[i*4+2], table[i*4+3] = c.R, c.G, c.B, c.A
	}
	if _, err := w.Write(table); err != nil {
		return fmt.Errorf("vox: could not write palette: %w", err)
	}
	return nil
}
