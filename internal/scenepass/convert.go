package scenepass

import (
	"github.com/sausagetaste/daltools-go/internal/mathutil"
	"github.com/sausagetaste/daltools-go/internal/model"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

// ToModel converts an optimized Scene into a runtime Model (§4.5). The
// scene is expected to have already gone through Optimize; ToModel does
// not re-run any of the seven passes.
func ToModel(s *scene.Scene) (*model.Model, error) {
	skeletonName, err := soleSkeletonName(s)
	if err != nil {
		return nil, err
	}

	m := &model.Model{}

	actorByName := make(map[string]*scene.MeshActor, len(s.MeshActors))
	for i := range s.MeshActors {
		actorByName[s.MeshActors[i].Name] = &s.MeshActors[i]
	}
	skeletonByName := make(map[string]*scene.Skeleton, len(s.Skeletons))
	for i := range s.Skeletons {
		skeletonByName[s.Skeletons[i].Name] = &s.Skeletons[i]
	}
	meshByName := make(map[string]*scene.Mesh, len(s.Meshes))
	for i := range s.Meshes {
		meshByName[s.Meshes[i].Name] = &s.Meshes[i]
	}
	materialByName := make(map[string]scene.Material, len(s.Materials))
	for _, mat := range s.Materials {
		materialByName[mat.Name] = mat
	}

	var minPt, maxPt mathutil.Vec3
	haveBounds := false
	growBounds := func(p mathutil.Vec3) {
		if !haveBounds {
			minPt, maxPt = p, p
			haveBounds = true
			return
		}
		for i := range p {
			if p[i] < minPt[i] {
				minPt[i] = p[i]
			}
			if p[i] > maxPt[i] {
				maxPt[i] = p[i]
			}
		}
	}

	for ai := range s.MeshActors {
		actor := &s.MeshActors[ai]
		world, err := makeHierarchyTransform(actor, actorByName, skeletonByName)
		if err != nil {
			return nil, err
		}
		worldUpper := world.Upper3x3()

		for _, pair := range actor.RenderPairs {
			mesh, ok := meshByName[pair.MeshName]
			if !ok {
				return nil, ErrNameNotFound
			}
			mat, ok := materialByName[pair.MaterialName]
			if !ok {
				return nil, ErrNameNotFound
			}

			if mesh.SkeletonName == "" {
				unit := findOrCreateIndexedUnit(m, mat)
				base := int32(len(unit.Mesh.Vertices))
				for _, v := range mesh.Vertices {
					pos := world.MulPoint(v.Position)
					nrm := worldUpper.MulVec3(v.Normal).Normalize()
					growBounds(pos)
					unit.Mesh.Vertices = append(unit.Mesh.Vertices, model.InterleavedVertex{
						Position: pos,
						Normal:   nrm,
						UV:       v.UV,
					})
				}
				for _, idx := range mesh.Indices {
					unit.Mesh.Indices = append(unit.Mesh.Indices, base+idx)
				}
			} else {
				unit := findOrCreateIndexedJointUnit(m, mat)
				base := int32(len(unit.Mesh.Vertices))
				for _, v := range mesh.Vertices {
					pos := world.MulPoint(v.Position)
					nrm := worldUpper.MulVec3(v.Normal).Normalize()
					growBounds(pos)

					var weights [4]float32
					indices := [4]int32{-1, -1, -1, -1}
					for i := 0; i < 4 && i < len(v.Joints); i++ {
						weights[i] = v.Joints[i].Weight
						indices[i] = v.Joints[i].JointID
					}

					unit.Mesh.Vertices = append(unit.Mesh.Vertices, model.InterleavedJointVertex{
						InterleavedVertex: model.InterleavedVertex{
							Position: pos,
							Normal:   nrm,
							UV:       v.UV,
						},
						JointWeights: weights,
						JointIndices: indices,
					})
				}
				for _, idx := range mesh.Indices {
					unit.Mesh.Indices = append(unit.Mesh.Indices, base+idx)
				}
			}
		}
	}

	if haveBounds {
		m.AABB = model.AABB3{Min: minPt, Max: maxPt}
	}

	if skeletonName != "" {
		sk := skeletonByName[skeletonName]
		m.Skeleton = toModelSkeleton(sk)
	}

	for _, a := range s.Animations {
		m.Animations = append(m.Animations, toModelAnimation(a))
	}

	return m, nil
}

// soleSkeletonName returns the single skeleton name referenced by any
// mesh in the scene, "" if none is referenced, or ErrMultipleSkeletons
// if more than one distinct name is found.
func soleSkeletonName(s *scene.Scene) (string, error) {
	name := ""
	for _, mesh := range s.Meshes {
		if mesh.SkeletonName == "" {
			continue
		}
		if name == "" {
			name = mesh.SkeletonName
		} else if name != mesh.SkeletonName {
			return "", ErrMultipleSkeletons
		}
	}
	return name, nil
}

// makeHierarchyTransform chains an actor's own transform up through its
// named parents, stopping at a root actor or at a name that resolves to
// a skeleton instead of an actor (§4.5, §9 REDESIGN FLAG).
func makeHierarchyTransform(
	actor *scene.MeshActor,
	actorByName map[string]*scene.MeshActor,
	skeletonByName map[string]*scene.Skeleton,
) (mathutil.Mat4, error) {
	chain := make([]mathutil.Mat4, 0, 4)
	chain = append(chain, actor.Transform.ToMat4())

	parentName := actor.ParentName
	for depth := 0; ; depth++ {
		if parentName == "" {
			break
		}
		if _, isSkeleton := skeletonByName[parentName]; isSkeleton {
			break
		}
		parent, ok := actorByName[parentName]
		if !ok {
			break
		}
		if depth >= maxHierarchyDepth {
			return mathutil.Mat4{}, ErrInvariantViolation
		}
		chain = append(chain, parent.Transform.ToMat4())
		parentName = parent.ParentName
	}

	world := mathutil.Mat4Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		world = mathutil.Mat4Mul(world, chain[i])
	}
	return world, nil
}

func toModelMaterial(mat scene.Material) model.Material {
	return model.Material{
		Roughness:    mat.Roughness,
		Metallic:     mat.Metallic,
		Transparency: mat.Transparency,
		AlbedoMap:    mat.AlbedoMap,
		RoughnessMap: mat.RoughnessMap,
		MetallicMap:  mat.MetallicMap,
		NormalMap:    mat.NormalMap,
	}
}

// findOrCreateIndexedUnit returns the first existing unit whose material
// is physically-equal to mat, creating a new one named after mat
// otherwise (§4.5).
func findOrCreateIndexedUnit(m *model.Model, mat scene.Material) *model.RenderUnit[model.MeshIndexed] {
	mm := toModelMaterial(mat)
	for i := range m.IndexedUnits {
		if m.IndexedUnits[i].Material.PhysicallyEqual(mm) {
			return &m.IndexedUnits[i]
		}
	}
	m.IndexedUnits = append(m.IndexedUnits, model.RenderUnit[model.MeshIndexed]{Name: mat.Name, Material: mm})
	return &m.IndexedUnits[len(m.IndexedUnits)-1]
}

func findOrCreateIndexedJointUnit(m *model.Model, mat scene.Material) *model.RenderUnit[model.MeshIndexedJoint] {
	mm := toModelMaterial(mat)
	for i := range m.IndexedJointUnits {
		if m.IndexedJointUnits[i].Material.PhysicallyEqual(mm) {
			return &m.IndexedJointUnits[i]
		}
	}
	m.IndexedJointUnits = append(m.IndexedJointUnits, model.RenderUnit[model.MeshIndexedJoint]{Name: mat.Name, Material: mm})
	return &m.IndexedJointUnits[len(m.IndexedJointUnits)-1]
}

func toModelSkeleton(sk *scene.Skeleton) *model.Skeleton {
	indexOf := make(map[string]int32, len(sk.Joints))
	for i, j := range sk.Joints {
		indexOf[j.Name] = int32(i)
	}

	out := &model.Skeleton{Root: sk.RootTransform.ToMat4()}
	for _, j := range sk.Joints {
		parentIdx := int32(-1)
		if j.ParentName != "" {
			if idx, ok := indexOf[j.ParentName]; ok {
				parentIdx = idx
			}
		}
		out.Joints = append(out.Joints, model.Joint{
			Name:        j.Name,
			ParentIndex: parentIdx,
			Type:        model.JointType(j.Type),
			Offset:      j.Offset,
		})
	}
	return out
}

func toModelAnimation(a scene.Animation) model.Animation {
	out := model.Animation{
		Name:           a.Name,
		DurationTicks:  a.Duration(),
		TicksPerSecond: a.TicksPerSecond,
	}
	for _, j := range a.Joints {
		mj := model.AnimJoint{Name: j.Name}
		for _, k := range j.Translations {
			mj.Translations = append(mj.Translations, model.Keyframe3{Time: k.Time, Value: k.Value})
		}
		for _, k := range j.Rotations {
			mj.Rotations = append(mj.Rotations, model.KeyframeQuat{Time: k.Time, Value: k.Value})
		}
		for _, k := range j.Scales {
			mj.Scales = append(mj.Scales, model.KeyframeFloat{Time: k.Time, Value: k.Value})
		}
		out.Joints = append(out.Joints, mj)
	}
	return out
}
