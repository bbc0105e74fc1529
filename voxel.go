package carve

// VoxelType tags what a cell holds. Comparisons between voxels are by
// tag and palette index, never by resolved color.
type VoxelType uint8

const (
	// VoxelAir is an empty cell. Its palette index is meaningless.
	VoxelAir VoxelType = iota
	// VoxelGeneric is a solid cell colored by its palette index.
	VoxelGeneric
)

// Voxel is one cell value: a type tag plus, for non-air cells, a
// palette index. The zero value is air.
type Voxel struct {
	Kind  VoxelType
	Index uint8
}

// AirVoxel is the empty cell value.
var AirVoxel = Voxel{}

// NewVoxel returns a voxel with the given tag and palette index.
func NewVoxel(kind VoxelType, index uint8) Voxel {
	return Voxel{Kind: kind, Index: index}
}

// IsAir reports whether the voxel is an empty cell.
func (v Voxel) IsAir() bool { return v.Kind == VoxelAir }
