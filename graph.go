package carve

import (
	"fmt"
	"sort"
)

// RootNodeID is the fixed id of every graph's root node.
const RootNodeID = 0

// Graph is a tree of [Node] values keyed by id, rooted at a single
// root node with id [RootNodeID]. Every non-root node has exactly one
// parent already present in the graph; ids are unique and stable for
// the graph's lifetime.
//
// [Graph.Emplace] is the sole insertion path. Nodes without an own
// palette resolve colors against the graph's default palette, which is
// injectable for tests via [WithDefaultPalette].
type Graph struct {
	nodes          map[int]*Node
	nextID         int
	defaultPalette *Palette
}

// GraphOption configures a new graph.
type GraphOption func(*Graph)

// WithDefaultPalette substitutes the palette nodes fall back to when
// they carry none of their own.
func WithDefaultPalette(p *Palette) GraphOption {
	return func(g *Graph) { g.defaultPalette = p }
}

// NewGraph creates a graph holding only its root node.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:  make(map[int]*Node),
		nextID: RootNodeID + 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.defaultPalette == nil {
		g.defaultPalette = DefaultPalette()
	}
	root := newNode(NodeTypeRoot, "root")
	root.id = RootNodeID
	g.nodes[RootNodeID] = root
	return g
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.nodes[RootNodeID] }

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id int) *Node { return g.nodes[id] }

// DefaultPalette returns the palette nodes without an own palette
// resolve against.
func (g *Graph) DefaultPalette() *Palette { return g.defaultPalette }

// PaletteFor returns the node's effective palette: its own if set,
// else the graph default.
func (g *Graph) PaletteFor(n *Node) *Palette {
	if n != nil && n.palette != nil {
		return n.palette
	}
	return g.defaultPalette
}

// Emplace inserts n under the given parent id, assigns n's id, and
// returns it. It panics on a nil node (programmer error) and fails
// when n is already part of a graph, is a second root, or the parent
// is not present.
func (g *Graph) Emplace(n *Node, parent int) (int, error) {
	if n == nil {
		panic("carve: cannot emplace a nil node")
	}
	if n.id != -1 {
		return -1, fmt.Errorf("carve: node %q is already part of a graph (id %d)", n.Name, n.id)
	}
	if n.Type == NodeTypeRoot {
		return -1, fmt.Errorf("carve: graph already has a root")
	}
	p, ok := g.nodes[parent]
	if !ok {
		return -1, fmt.Errorf("carve: parent node %d not in graph", parent)
	}
	n.id = g.nextID
	g.nextID++
	n.parent = parent
	g.nodes[n.id] = n
	p.children = append(p.children, n.id)
	return n.id, nil
}

// Remove detaches the node with the given id and destroys it together
// with all of its descendants, releasing their owned volumes. Removing
// the root or an unknown id reports false.
func (g *Graph) Remove(id int) bool {
	n, ok := g.nodes[id]
	if !ok || id == RootNodeID {
		return false
	}
	if p := g.nodes[n.parent]; p != nil {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	g.removeSubtree(n)
	return true
}

func (g *Graph) removeSubtree(n *Node) {
	for _, c := range n.children {
		if child := g.nodes[c]; child != nil {
			g.removeSubtree(child)
		}
	}
	n.release()
	n.children = nil
	delete(g.nodes, n.id)
}

// Clear releases every node and resets the graph to a fresh root. Ids
// restart; a cleared graph behaves like a new one.
func (g *Graph) Clear() {
	for _, n := range g.nodes {
		n.release()
	}
	g.nodes = make(map[int]*Node)
	g.nextID = RootNodeID + 1
	root := newNode(NodeTypeRoot, "root")
	root.id = RootNodeID
	g.nodes[RootNodeID] = root
}

// Size returns the number of model nodes.
func (g *Graph) Size() int {
	count := 0
	for _, n := range g.nodes {
		if n.Type == NodeTypeModel {
			count++
		}
	}
	return count
}

// Empty reports whether the graph has no model nodes.
func (g *Graph) Empty() bool { return g.Size() == 0 }

// ForEachModel calls fn for every model node in ascending id order,
// which is insertion order. Merge and save results depend on this
// order being stable.
func (g *Graph) ForEachModel(fn func(*Node)) {
	ids := make([]int, 0, len(g.nodes))
	for id, n := range g.nodes {
		if n.Type == NodeTypeModel {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn(g.nodes[id])
	}
}

// ForEach calls fn for every node (the root included) in ascending id
// order.
func (g *Graph) ForEach(fn func(*Node)) {
	ids := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn(g.nodes[id])
	}
}

// FindByName returns the first node (ascending id order) with the
// given name, or nil.
func (g *Graph) FindByName(name string) *Node {
	var found *Node
	g.ForEach(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

// FirstPalette returns the effective palette of the first model node,
// or the graph default when there is none.
func (g *Graph) FirstPalette() *Palette {
	var first *Node
	g.ForEachModel(func(n *Node) {
		if first == nil {
			first = n
		}
	})
	return g.PaletteFor(first)
}
