package carve

// PaletteLookup maps arriving colors onto a palette, growing it as new
// colors show up. It is the bridge between RGB-per-voxel formats and
// indexed formats:
//
//   - an exact match returns the existing index, so indexed sources
//     keep their positions;
//   - an unseen color is appended while capacity remains, so an RGB
//     source with at most 256 distinct colors converts losslessly, in
//     first-encountered order;
//   - once the palette is full, unseen colors degrade to the nearest
//     existing entry. This is silent and deterministic for a given
//     color-arrival order, not an error.
//
// A lookup caches every answer, so repeated colors cost one map probe.
type PaletteLookup struct {
	palette *Palette
	cache   map[Color]uint8
}

// NewPaletteLookup returns a lookup writing into p. A nil p starts a
// fresh empty palette.
func NewPaletteLookup(p *Palette) *PaletteLookup {
	if p == nil {
		p = NewPalette()
	}
	return &PaletteLookup{
		palette: p,
		cache:   make(map[Color]uint8),
	}
}

// Palette returns the palette the lookup resolves against.
func (l *PaletteLookup) Palette() *Palette { return l.palette }

// Lookup returns the palette index for c, appending c as a new entry
// when it is unseen and the palette still has room.
func (l *PaletteLookup) Lookup(c Color) uint8 {
	if idx, ok := l.cache[c]; ok {
		return idx
	}
	var idx int
	if idx = l.palette.IndexOf(c); idx < 0 {
		var err error
		if idx, err = l.palette.Add(c); err != nil {
			// Palette full: lossy nearest match from here on.
			idx = l.palette.Closest(c)
		}
	}
	l.cache[c] = uint8(idx)
	return uint8(idx)
}
