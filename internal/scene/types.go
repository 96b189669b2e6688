// Package scene implements the authoring-facing scene graph (§3): the
// representation produced once by an external JSON/binary importer (out
// of scope here — treated as an opaque producer), mutated in place by the
// optimisation pipeline in internal/scenepass, and finally converted to
// the runtime internal/model representation.
package scene

import "github.com/sausagetaste/daltools-go/internal/mathutil"

// Transform is a translation + rotation (unit quaternion) + scale triple.
type Transform struct {
	Translation mathutil.Vec3
	Rotation    mathutil.Quat
	Scale       mathutil.Vec3
}

// ToMat4 composes translation ∘ rotation ∘ scale into a single 4×4 affine
// matrix, the form every scenepass bake step operates in.
func (t Transform) ToMat4() mathutil.Mat4 {
	rot := mathutil.QuatToMat3(t.Rotation)
	scaled := mathutil.Mat3Mul(rot, mathutil.Mat3Diag(t.Scale[0], t.Scale[1], t.Scale[2]))
	return mathutil.FromMat3Translation(scaled, t.Translation)
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{
		Translation: mathutil.Vec3{0, 0, 0},
		Rotation:    mathutil.Quat{0, 0, 0, 1},
		Scale:       mathutil.Vec3{1, 1, 1},
	}
}

// JointWeight is one (joint, influence-weight) pair in a vertex's ordered
// joint-influence sequence.
type JointWeight struct {
	JointID int32
	Weight  float32
}

// Vertex is one authoring-mesh vertex. Two vertices are value-equal iff
// every field, including the Joints sequence, is bit-equal (§3).
type Vertex struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	UV       [2]float32
	Joints   []JointWeight
}

// Equal reports bit-exact equality, matching the §3 Vertex equality rule.
func (v Vertex) Equal(o Vertex) bool {
	if v.Position != o.Position || v.Normal != o.Normal || v.UV != o.UV {
		return false
	}
	if len(v.Joints) != len(o.Joints) {
		return false
	}
	for i := range v.Joints {
		if v.Joints[i] != o.Joints[i] {
			return false
		}
	}
	return true
}

// Mesh is one authoring sub-mesh. SkeletonName == "" marks a static mesh.
type Mesh struct {
	Name         string
	SkeletonName string
	Vertices     []Vertex
	Indices      []int32
}

// Material holds PBR scalars, a transparency flag, and four texture paths.
type Material struct {
	Name         string
	Roughness    float32
	Metallic     float32
	Transparency bool
	AlbedoMap    string
	RoughnessMap string
	MetallicMap  string
	NormalMap    string
}

// Equal requires every field, including Name, to match.
func (m Material) Equal(o Material) bool {
	return m == o
}

// PhysicallyEqual ignores Name (§3).
func (m Material) PhysicallyEqual(o Material) bool {
	m.Name, o.Name = "", ""
	return m == o
}

// JointType classifies a skeleton joint's role in the hierarchy (§3, §4.4).
type JointType int32

const (
	JointBasic JointType = iota
	JointHairRoot
	JointSkirtRoot
)

// Joint is one bone in a Skeleton.
type Joint struct {
	Name       string
	ParentName string // "" ⇒ root
	Type       JointType
	Offset     mathutil.Mat4
}

// Skeleton is an ordered joint hierarchy plus its own root transform.
type Skeleton struct {
	Name          string
	RootTransform Transform
	Joints        []Joint
}

// Keyframe3 is a (time, vec3) sample, used for translation keyframes.
type Keyframe3 struct {
	Time  float32
	Value mathutil.Vec3
}

// KeyframeQuat is a (time, quat) sample, used for rotation keyframes.
type KeyframeQuat struct {
	Time  float32
	Value mathutil.Quat
}

// KeyframeFloat is a (time, scalar) sample, used for scale keyframes.
type KeyframeFloat struct {
	Time  float32
	Value float32
}

// AnimJoint holds one joint's three independent keyframe sequences.
type AnimJoint struct {
	Name         string
	Translations []Keyframe3
	Rotations    []KeyframeQuat
	Scales       []KeyframeFloat
}

// Animation is a named clip over a set of joints.
type Animation struct {
	Name           string
	TicksPerSecond float32
	Joints         []AnimJoint
}

// Duration returns the max time-point across all joints, or 1 if the
// animation has no keyframes at all (§3).
func (a Animation) Duration() float32 {
	var max float32
	found := false
	upd := func(t float32) {
		found = true
		if t > max {
			max = t
		}
	}
	for _, j := range a.Joints {
		for _, k := range j.Translations {
			upd(k.Time)
		}
		for _, k := range j.Rotations {
			upd(k.Time)
		}
		for _, k := range j.Scales {
			upd(k.Time)
		}
	}
	if !found {
		return 1
	}
	return max
}

// ActorBase carries the fields every actor kind shares.
type ActorBase struct {
	Name        string
	ParentName  string
	Collections []string
	Transform   Transform
	Hidden      bool
}

// RenderPair binds one mesh to one material for a single draw.
type RenderPair struct {
	MeshName     string
	MaterialName string
}

// MeshActor draws a list of (mesh, material) pairs.
type MeshActor struct {
	ActorBase
	RenderPairs []RenderPair
}

// DirLightActor is a directional light.
type DirLightActor struct {
	ActorBase
}

// PointLightActor is a point light with a falloff distance.
type PointLightActor struct {
	ActorBase
	MaxDistance float32
}

// SpotlightActor is a point light narrowed to a cone.
type SpotlightActor struct {
	ActorBase
	Degree float32
	Blend  float32
}

// Scene is the full authoring graph produced by the (external) importer.
type Scene struct {
	RootTransform Transform
	Materials     []Material
	Meshes        []Mesh
	Skeletons     []Skeleton
	Animations    []Animation
	MeshActors    []MeshActor
	DirLights     []DirLightActor
	PointLights   []PointLightActor
	Spotlights    []SpotlightActor
}
