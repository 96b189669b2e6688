// Package model implements the runtime Model representation (§3): four
// render-unit variants tagged by mesh kind, a flattened skeleton, and
// animations isomorphic to their Scene counterparts — the form produced
// by internal/scenepass's scene→model conversion and serialized by
// internal/dmd.
package model

import "github.com/sausagetaste/daltools-go/internal/mathutil"

// AABB3 is an axis-aligned bounding box.
type AABB3 struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

// MeshStraight is flat vertex/uv/normal arrays with no index buffer.
// vertices.len == 3·len(UV)/2 == len(Normals), and vertices.len % 3 == 0.
type MeshStraight struct {
	Vertices []float32 // 3N
	UV       []float32 // 2N
	Normals  []float32 // 3N
}

// MeshStraightJoint is MeshStraight plus 4-influence joint weights/indices.
type MeshStraightJoint struct {
	MeshStraight
	JointWeights []float32 // 4N
	JointIndices []int32   // 4N, -1 = no joint
}

// InterleavedVertex is the 32-byte per-vertex layout MeshIndexed uses.
type InterleavedVertex struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	UV       [2]float32
}

// MeshIndexed is an interleaved vertex buffer plus an index buffer.
type MeshIndexed struct {
	Vertices []InterleavedVertex
	Indices  []int32
}

// InterleavedJointVertex is the 64-byte per-vertex layout
// MeshIndexedJoint uses: interleaved geometry plus exactly 4 joint
// influences (index -1 marks an unused slot).
type InterleavedJointVertex struct {
	InterleavedVertex
	JointWeights [4]float32
	JointIndices [4]int32
}

// MeshIndexedJoint is an interleaved+jointed vertex buffer plus indices.
type MeshIndexedJoint struct {
	Vertices []InterleavedJointVertex
	Indices  []int32
}

// Material mirrors scene.Material's fields in the runtime representation.
type Material struct {
	Roughness    float32
	Metallic     float32
	Transparency bool
	AlbedoMap    string
	RoughnessMap string
	MetallicMap  string
	NormalMap    string
}

// PhysicallyEqual reports whether two materials carry the same PBR
// scalars, transparency flag, and texture paths (name-independent),
// matching scene.Material.PhysicallyEqual.
func (m Material) PhysicallyEqual(o Material) bool {
	return m == o
}

// RenderUnit binds a unit name and its full material to exactly one mesh
// variant.
type RenderUnit[T any] struct {
	Name     string
	Material Material
	Mesh     T
}

// JointType mirrors scene.JointType for the flattened runtime skeleton.
type JointType int32

const (
	JointBasic JointType = iota
	JointHairRoot
	JointSkirtRoot
)

// Joint is one bone in the runtime Skeleton: ParentIndex == -1 means root.
type Joint struct {
	Name        string
	ParentIndex int32
	Type        JointType
	Offset      mathutil.Mat4
}

// Skeleton is a root matrix plus a flattened, parent-indexed joint list.
type Skeleton struct {
	Root   mathutil.Mat4
	Joints []Joint
}

// Keyframe3 is a (time, vec3) sample stored contiguously.
type Keyframe3 struct {
	Time  float32
	Value mathutil.Vec3
}

// KeyframeQuat is a (time, quat) sample stored contiguously.
type KeyframeQuat struct {
	Time  float32
	Value mathutil.Quat
}

// KeyframeFloat is a (time, scalar) sample stored contiguously.
type KeyframeFloat struct {
	Time  float32
	Value float32
}

// AnimJoint holds one joint's three keyframe sequences.
type AnimJoint struct {
	Name         string
	Translations []Keyframe3
	Rotations    []KeyframeQuat
	Scales       []KeyframeFloat
}

// Animation is a named clip with a pre-baked duration.
type Animation struct {
	Name           string
	DurationTicks  float32
	TicksPerSecond float32
	Joints         []AnimJoint
}

// Model is the full runtime payload: every render unit kind, animations,
// the (optional, at most one) skeleton, and the scene's bounding box.
type Model struct {
	AABB               AABB3
	StraightUnits      []RenderUnit[MeshStraight]
	StraightJointUnits []RenderUnit[MeshStraightJoint]
	IndexedUnits       []RenderUnit[MeshIndexed]
	IndexedJointUnits  []RenderUnit[MeshIndexedJoint]
	Animations         []Animation
	Skeleton           *Skeleton
}
