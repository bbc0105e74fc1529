package carve

import "fmt"

// NodeType tags what a scene node represents.
type NodeType uint8

const (
	// NodeTypeRoot is the graph's fixed root. Exactly one per graph,
	// created by [NewGraph]; it never carries a volume.
	NodeTypeRoot NodeType = iota
	// NodeTypeGroup is a structural grouping node.
	NodeTypeGroup
	// NodeTypeModel carries a voxel volume. Only model nodes do.
	NodeTypeModel
	// NodeTypeCamera is a data-only camera description. Its view
	// parameters live in the node properties.
	NodeTypeCamera
	// NodeTypeUnknown is anything a codec read but could not classify.
	NodeTypeUnknown
)

// String returns the node type's name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeRoot:
		return "Root"
	case NodeTypeGroup:
		return "Group"
	case NodeTypeModel:
		return "Model"
	case NodeTypeCamera:
		return "Camera"
	}
	return "Unknown"
}

// Camera property keys used by codecs that carry camera nodes.
const (
	PropFieldOfView  = "fieldofview"
	PropNearPlane    = "nearplane"
	PropFarPlane     = "farplane"
	PropOrthographic = "orthographic"
)

// Node is one entity in a scene graph: a typed, named tree node that
// may own a [Volume] (model nodes only), may carry its own [Palette]
// (otherwise it resolves against the graph default), and holds
// transform keyframes plus free-form key/value properties.
//
// A node is created detached via a typed constructor and becomes part
// of a graph through [Graph.Emplace], which assigns its id and records
// parentage. Ids are unique and stable for the graph's lifetime.
type Node struct {
	id     int
	parent int
	Type   NodeType
	Name   string

	volume  *Volume
	palette *Palette

	children   []int
	keyFrames  []KeyFrame
	properties map[string]string
}

func newNode(t NodeType, name string) *Node {
	return &Node{id: -1, parent: -1, Type: t, Name: name}
}

// NewGroupNode creates a detached group node.
func NewGroupNode(name string) *Node { return newNode(NodeTypeGroup, name) }

// NewModelNode creates a detached model node. Give it a volume with
// [Node.SetVolume] before emplacing it.
func NewModelNode(name string) *Node { return newNode(NodeTypeModel, name) }

// NewCameraNode creates a detached camera node.
func NewCameraNode(name string) *Node { return newNode(NodeTypeCamera, name) }

// ID returns the graph-assigned id, or -1 for a detached node.
func (n *Node) ID() int { return n.id }

// Parent returns the parent node id, or -1 for the root and for
// detached nodes.
func (n *Node) Parent() int { return n.parent }

// Children returns the ordered child id list. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Children() []int { return n.children }

// --- Volume ownership ---

// SetVolume gives the node ownership of v, releasing any volume it
// held before. Only model nodes may carry a volume; v moves — the
// caller must not keep using it. A nil v just releases.
func (n *Node) SetVolume(v *Volume) {
	if v != nil && n.Type != NodeTypeModel {
		panic(fmt.Sprintf("carve: %s node %q cannot carry a volume", n.Type, n.Name))
	}
	n.volume = v
}

// Volume returns the owned volume, or nil.
func (n *Node) Volume() *Volume { return n.volume }

// TakeVolume moves the owned volume out of the node and returns it.
// The node is left without a volume.
func (n *Node) TakeVolume() *Volume {
	v := n.volume
	n.volume = nil
	return v
}

// Region returns the owned volume's region, or [InvalidRegion].
func (n *Node) Region() Region {
	if n.volume == nil {
		return InvalidRegion
	}
	return n.volume.Region()
}

// --- Palette ---

// SetPalette gives the node its own palette. A nil palette makes the
// node resolve against the graph default again.
func (n *Node) SetPalette(p *Palette) { n.palette = p }

// OwnPalette returns the node's own palette, or nil when the node
// resolves against the graph default. Use [Graph.PaletteFor] to get
// the effective palette.
func (n *Node) OwnPalette() *Palette { return n.palette }

// --- Properties ---

// SetProperty stores a free-form key/value property on the node.
func (n *Node) SetProperty(key, value string) {
	if n.properties == nil {
		n.properties = make(map[string]string)
	}
	n.properties[key] = value
}

// Property returns the value stored for key, or "".
func (n *Node) Property(key string) string { return n.properties[key] }

// Properties returns the property map (nil when the node has none).
// The returned map MUST NOT be mutated by the caller.
func (n *Node) Properties() map[string]string { return n.properties }

// release drops the node's owned volume. Called by the graph when the
// node is removed.
func (n *Node) release() {
	n.volume = nil
}
