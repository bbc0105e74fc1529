// Command carve converts voxel model files between formats and applies
// volume operations on the way through.
//
//	carve -i knight.qb -o knight.vox --crop
//	carve -i a.qb -i b.qb -o merged.qbt --merge
//	carve -i scene.vox -o tiles.qb --split 16:16:16
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/voxelstack/carve"
	"github.com/voxelstack/carve/format"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var inputs stringList
	flag.Var(&inputs, "i", "input file (repeatable)")
	output := flag.String("o", "", "output file")
	force := flag.Bool("force", false, "overwrite the output file if it exists")
	merge := flag.Bool("merge", false, "merge all models into one volume")
	crop := flag.Bool("crop", false, "shrink every model to its occupied bounds")
	scale := flag.Bool("scale", false, "halve every model's dimensions")
	split := flag.String("split", "", "split models into x:y:z sized tiles")
	resize := flag.String("resize", "", "resize every model to x:y:z voxels")
	translate := flag.String("translate", "", "shift every model by x:y:z voxels")
	rotate := flag.String("rotate", "", "rotate every model about an axis: axis[:degrees]")
	mirror := flag.String("mirror", "", "mirror every model about an axis: x, y or z")
	filter := flag.String("filter", "", "keep only the listed model positions, e.g. 1-4,6")
	exportLayers := flag.Bool("export-layers", false, "save every model into its own output file")
	exportPalette := flag.String("export-palette", "", "write the merged palette as a PNG")
	dump := flag.Bool("dump", false, "log the scene graph tree")
	flag.Parse()

	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(127)
	}
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			log.Printf("input %s: %v", in, err)
			os.Exit(127)
		}
	}

	g := carve.NewGraph()
	loaded := 0
	for _, in := range inputs {
		if err := loadInto(g, in, len(inputs) > 1); err != nil {
			log.Printf("could not load %s: %v", in, err)
			continue
		}
		loaded++
	}
	if loaded == 0 {
		log.Printf("no input could be loaded")
		os.Exit(1)
	}

	if *filter != "" {
		if err := filterModels(g, *filter); err != nil {
			log.Printf("filter: %v", err)
			os.Exit(1)
		}
	}
	if *merge {
		if err := mergeModels(g); err != nil {
			log.Printf("merge: %v", err)
			os.Exit(1)
		}
	}
	if *split != "" {
		size, err := parseIVec3(*split)
		if err != nil {
			log.Printf("split: %v", err)
			os.Exit(1)
		}
		if err := carve.SplitGraph(g, size); err != nil {
			log.Printf("split: %v", err)
			os.Exit(1)
		}
	}
	if *scale {
		apply(g, func(n *carve.Node, v *carve.Volume) *carve.Volume {
			return carve.Rescale(v, g.PaletteFor(n))
		})
	}
	if *crop {
		apply(g, func(_ *carve.Node, v *carve.Volume) *carve.Volume {
			return carve.Crop(v)
		})
	}
	if *resize != "" {
		size, err := parseIVec3(*resize)
		if err != nil {
			log.Printf("resize: %v", err)
			os.Exit(1)
		}
		apply(g, func(_ *carve.Node, v *carve.Volume) *carve.Volume {
			return carve.Resize(v, size)
		})
	}
	if *translate != "" {
		offset, err := parseIVec3(*translate)
		if err != nil {
			log.Printf("translate: %v", err)
			os.Exit(1)
		}
		apply(g, func(_ *carve.Node, v *carve.Volume) *carve.Volume {
			v.Translate(offset)
			return v
		})
	}
	if *rotate != "" {
		axis, degrees, err := parseRotation(*rotate)
		if err != nil {
			log.Printf("rotate: %v", err)
			os.Exit(1)
		}
		apply(g, func(_ *carve.Node, v *carve.Volume) *carve.Volume {
			return carve.Rotate(v, axis, degrees)
		})
	}
	if *mirror != "" {
		axis := carve.ParseAxis(*mirror)
		if axis == carve.AxisNone {
			log.Printf("mirror: unknown axis %q", *mirror)
			os.Exit(1)
		}
		apply(g, func(_ *carve.Node, v *carve.Volume) *carve.Volume {
			return carve.Mirror(v, axis)
		})
	}

	if *dump {
		dumpTree(g, g.Root(), 0)
	}
	if *exportPalette != "" {
		if err := writePalettePNG(g, *exportPalette, *force); err != nil {
			log.Printf("export-palette: %v", err)
			os.Exit(1)
		}
		log.Printf("wrote %s", *exportPalette)
	}

	if *output == "" {
		if !*dump && *exportPalette == "" {
			log.Printf("no output given, nothing to do")
		}
		return
	}
	if *exportLayers {
		if err := saveLayers(g, *output, *force); err != nil {
			log.Printf("could not save: %v", err)
			os.Exit(1)
		}
		return
	}
	if err := save(g, *output, *force); err != nil {
		log.Printf("could not save %s: %v", *output, err)
		os.Exit(1)
	}
	log.Printf("wrote %s (%d models)", *output, g.Size())
}

// loadInto decodes one file into g. With grouped set, the file's
// models land under a group node named after the file, so a batch
// keeps its per-file structure.
func loadInto(g *carve.Graph, path string, grouped bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	in, err := format.Load(path, f)
	if err != nil {
		return err
	}
	parent := carve.RootNodeID
	if grouped {
		group := carve.NewGroupNode(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if parent, err = g.Emplace(group, carve.RootNodeID); err != nil {
			return err
		}
	}
	var moveErr error
	in.ForEachModel(func(n *carve.Node) {
		if moveErr != nil {
			return
		}
		m := carve.NewModelNode(n.Name)
		m.SetVolume(n.TakeVolume())
		m.SetPalette(n.OwnPalette())
		for k, v := range n.Properties() {
			m.SetProperty(k, v)
		}
		_, moveErr = g.Emplace(m, parent)
	})
	return moveErr
}

// apply replaces every model volume with fn's result. A nil result
// leaves the node volumeless rather than keeping stale content.
func apply(g *carve.Graph, fn func(*carve.Node, *carve.Volume) *carve.Volume) {
	g.ForEachModel(func(n *carve.Node) {
		v := n.TakeVolume()
		if v == nil {
			return
		}
		n.SetVolume(fn(n, v))
	})
}

func mergeModels(g *carve.Graph) error {
	vol, pal, err := g.Merge()
	if err != nil {
		return err
	}
	g.Clear()
	n := carve.NewModelNode("merged")
	n.SetVolume(vol)
	n.SetPalette(pal)
	_, err = g.Emplace(n, carve.RootNodeID)
	return err
}

// filterModels keeps only the models at the listed one-based
// positions, in graph iteration order.
func filterModels(g *carve.Graph, expr string) error {
	keep := map[int]bool{}
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		lo, hi, ok := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return fmt.Errorf("bad position %q", part)
		}
		to := from
		if ok {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return fmt.Errorf("bad range %q", part)
			}
		}
		if from < 1 || to < from {
			return fmt.Errorf("bad range %q", part)
		}
		for i := from; i <= to; i++ {
			keep[i] = true
		}
	}

	var doomed []int
	pos := 0
	g.ForEachModel(func(n *carve.Node) {
		pos++
		if !keep[pos] {
			doomed = append(doomed, n.ID())
		}
	})
	for _, id := range doomed {
		g.Remove(id)
	}
	if g.Size() == 0 {
		return fmt.Errorf("no model matches %q", expr)
	}
	return nil
}

func dumpTree(g *carve.Graph, n *carve.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch {
	case n.Volume() != nil:
		log.Printf("%s%s %q region %s voxels %d", indent, n.Type, n.Name,
			n.Region(), carve.Visit(n.Volume(), nil))
	default:
		log.Printf("%s%s %q", indent, n.Type, n.Name)
	}
	for _, id := range n.Children() {
		dumpTree(g, g.Node(id), depth+1)
	}
}

func create(path string, force bool) (*os.File, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s exists, use --force to overwrite", path)
		}
	}
	return os.Create(path)
}

func save(g *carve.Graph, path string, force bool) error {
	f, err := create(path, force)
	if err != nil {
		return err
	}
	if err := format.Save(g, path, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// saveLayers writes every model into its own file, suffixing the
// output name with the model position and name.
func saveLayers(g *carve.Graph, path string, force bool) error {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	pos := 0
	var firstErr error
	g.ForEachModel(func(n *carve.Node) {
		pos++
		if n.Volume() == nil {
			return
		}
		layer := carve.NewGraph(carve.WithDefaultPalette(g.PaletteFor(n)))
		m := carve.NewModelNode(n.Name)
		m.SetVolume(n.Volume().Clone())
		m.SetPalette(n.OwnPalette())
		if _, err := layer.Emplace(m, carve.RootNodeID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		name := fmt.Sprintf("%s-%d-%s%s", base, pos, sanitize(n.Name), ext)
		if err := save(layer, name, force); err != nil {
			log.Printf("could not save layer %s: %v", name, err)
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		log.Printf("wrote %s", name)
	})
	return firstErr
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
}

// parseIVec3 parses an "x:y:z" triple.
func parseIVec3(s string) (carve.IVec3, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return carve.IVec3{}, fmt.Errorf("want x:y:z, got %q", s)
	}
	var out carve.IVec3
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return carve.IVec3{}, fmt.Errorf("bad component %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// parseRotation parses "axis" or "axis:degrees"; the angle defaults to
// a quarter turn.
func parseRotation(s string) (carve.Axis, float64, error) {
	name, deg, ok := strings.Cut(s, ":")
	axis := carve.ParseAxis(strings.TrimSpace(name))
	if axis == carve.AxisNone {
		return axis, 0, fmt.Errorf("unknown axis %q", name)
	}
	degrees := 90.0
	if ok {
		var err error
		if degrees, err = strconv.ParseFloat(strings.TrimSpace(deg), 64); err != nil {
			return axis, 0, fmt.Errorf("bad angle %q", deg)
		}
	}
	return axis, degrees, nil
}

// writePalettePNG renders the merged palette as a 16x16 swatch image.
func writePalettePNG(g *carve.Graph, path string, force bool) error {
	pal := g.FirstPalette()
	if pal == nil || pal.ColorCount() == 0 {
		return fmt.Errorf("no palette to export")
	}
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < pal.ColorCount(); i++ {
		c := pal.Color(i)
		img.Set(i%16, i/16, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}
	f, err := create(path, force)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
