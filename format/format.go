// Package format holds the voxel file codecs and the registry that
// routes files to them by extension.
//
// Every codec is a thin encoder/decoder over the carve core: it reads
// bytes into a [carve.Graph] and writes a graph back to bytes. The
// on-disk byte layout is each codec's private concern; what the
// registry relies on is the shared palette/volume contract:
//
//   - LoadPalette extracts the distinct colors a file needs without a
//     full geometry decode for indexed formats (RGB-per-voxel formats
//     have no choice but to scan geometry);
//   - Load populates model nodes with volumes and palettes;
//   - Save writes a self-consistent palette+geometry pair. RGB targets
//     include only colors used by at least one voxel; indexed targets
//     keep the supplied palette's full color order.
//
// The codec set is closed: formats are registered here, not injected.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/voxelstack/carve"
)

// Desc names a codec and the file extensions it answers to.
type Desc struct {
	Name string
	Exts []string
	// Indexed reports whether the format stores a palette plus
	// per-voxel indices. RGB-per-voxel formats store a color per
	// voxel and reconstruct a palette on load.
	Indexed bool
}

// Format is the contract every codec implements.
type Format interface {
	Desc() Desc

	// LoadPalette returns the number of distinct colors and the
	// palette itself. The reader is consumed; callers reopen before
	// calling Load.
	LoadPalette(r io.Reader) (int, *carve.Palette, error)

	// Load decodes a whole scene. The stream position is undefined on
	// return.
	Load(r io.Reader) (*carve.Graph, error)

	// Save encodes the graph's model nodes.
	Save(g *carve.Graph, w io.Writer) error
}

// registry is the closed set of supported codecs.
var registry = []Format{
	&QBFormat{},
	&VoxFormat{},
	&QBTFormat{},
	&SproxelFormat{},
}

// Formats returns the registered codecs.
func Formats() []Format { return registry }

// ByExtension returns the codec responsible for the given path.
func ByExtension(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range registry {
		for _, e := range f.Desc().Exts {
			if e == ext {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("format: no codec for %q", path)
}

// Load routes to the codec for path and decodes r.
func Load(path string, r io.Reader) (*carve.Graph, error) {
	f, err := ByExtension(path)
	if err != nil {
		return nil, err
	}
	return f.Load(r)
}

// Save routes to the codec for path and encodes g.
func Save(g *carve.Graph, path string, w io.Writer) error {
	f, err := ByExtension(path)
	if err != nil {
		return err
	}
	return f.Save(g, w)
}

// LoadPalette routes to the codec for path and extracts its palette.
func LoadPalette(path string, r io.Reader) (int, *carve.Palette, error) {
	f, err := ByExtension(path)
	if err != nil {
		return 0, nil, err
	}
	return f.LoadPalette(r)
}
