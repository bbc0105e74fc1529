package carve

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxPaletteColors is the hard upper bound on palette size shared by
// every indexed voxel format carve speaks.
const MaxPaletteColors = 256

// Color is one RGBA palette entry. Formats that store a raw color per
// voxel always produce fully opaque entries; indexed formats may carry
// translucency, which is preserved verbatim.
type Color struct {
	R, G, B, A uint8
}

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool { return c.A == 255 }

// String returns the color as #RRGGBBAA.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// colorDistance is the metric used for nearest-palette matching:
// Euclidean RGB distance (via go-colorful) plus the normalized alpha
// delta. Ties are broken by the caller in favor of the lowest index,
// so matching is deterministic for a given insertion order.
func colorDistance(a, b Color) float64 {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	da := (float64(a.A) - float64(b.A)) / 255
	return ca.DistanceRgb(cb) + da*da
}

// Palette is an ordered list of up to 256 colors addressed by index.
// Insertion order is the index: palettes are append-only during a load
// and read-only during a save, which is what makes palette positions
// stable across a round trip.
type Palette struct {
	colors []Color
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{}
}

// ColorCount returns the number of entries.
func (p *Palette) ColorCount() int { return len(p.colors) }

// Color returns the entry at index i. It panics when i is out of
// range; voxel indices must never escape their palette.
func (p *Palette) Color(i int) Color {
	if i < 0 || i >= len(p.colors) {
		panic(fmt.Sprintf("carve: palette index %d out of range (%d colors)", i, len(p.colors)))
	}
	return p.colors[i]
}

// Colors returns the backing entry slice. The returned slice MUST NOT
// be mutated by the caller.
func (p *Palette) Colors() []Color { return p.colors }

// Add appends c and returns its index. Adding to a full palette fails;
// use [PaletteLookup] when lossy nearest-matching is acceptable.
func (p *Palette) Add(c Color) (int, error) {
	if len(p.colors) >= MaxPaletteColors {
		return -1, fmt.Errorf("carve: palette is full (%d colors)", MaxPaletteColors)
	}
	p.colors = append(p.colors, c)
	return len(p.colors) - 1, nil
}

// IndexOf returns the index of the first entry equal to c, or -1.
func (p *Palette) IndexOf(c Color) int {
	for i, e := range p.colors {
		if e == c {
			return i
		}
	}
	return -1
}

// Has reports whether c appears anywhere in the palette, regardless of
// position.
func (p *Palette) Has(c Color) bool { return p.IndexOf(c) >= 0 }

// Closest returns the index whose color minimizes the distance to c,
// or -1 for an empty palette. The first-inserted entry wins ties.
func (p *Palette) Closest(c Color) int {
	best := -1
	bestDist := 0.0
	for i, e := range p.colors {
		d := colorDistance(e, c)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best
}

// Equal reports index-wise color equality over the overlapping range
// of the two palettes. It is not a set comparison: the same colors in
// a different order are not equal.
func (p *Palette) Equal(o *Palette) bool {
	n := min(len(p.colors), len(o.colors))
	for i := 0; i < n; i++ {
		if p.colors[i] != o.colors[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the palette.
func (p *Palette) Clone() *Palette {
	out := &Palette{colors: make([]Color, len(p.colors))}
	copy(out.colors, p.colors)
	return out
}

// --- Built-in palettes ---

// BuiltInPalettes lists the names accepted by [BuiltInPalette].
var BuiltInPalettes = []string{"default", "grayscale"}

// BuiltInPalette returns a fresh copy of a named built-in palette, or
// an error for an unknown name.
func BuiltInPalette(name string) (*Palette, error) {
	switch name {
	case "default":
		return DefaultPalette(), nil
	case "grayscale":
		p := NewPalette()
		for i := 0; i < MaxPaletteColors; i++ {
			v := uint8(i)
			p.colors = append(p.colors, Color{v, v, v, 255})
		}
		return p, nil
	}
	return nil, fmt.Errorf("carve: unknown built-in palette %q", name)
}

// DefaultPalette returns the process-wide default: a deterministic
// 6x8x5 color cube followed by a 16-step gray ramp, 256 entries, all
// opaque. Nodes without an own palette resolve against their graph's
// default, which is this unless substituted via [WithDefaultPalette].
func DefaultPalette() *Palette {
	p := &Palette{colors: make([]Color, 0, MaxPaletteColors)}
	for r := 0; r < 6; r++ {
		for g := 0; g < 8; g++ {
			for b := 0; b < 5; b++ {
				p.colors = append(p.colors, Color{
					R: uint8(r * 255 / 5),
					G: uint8(g * 255 / 7),
					B: uint8(b * 255 / 4),
					A: 255,
				})
			}
		}
	}
	for i := 0; i < MaxPaletteColors-6*8*5; i++ {
		v := uint8(i * 255 / 15)
		p.colors = append(p.colors, Color{v, v, v, 255})
	}
	return p
}
