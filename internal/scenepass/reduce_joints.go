package scenepass

import (
	"math"

	"github.com/sausagetaste/daltools-go/internal/mathutil"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

const jointEpsilon = 0.01

// reduceJoints computes, per skeleton with any keyframed animation, a
// survivor set of joints (keyframed-with-motion joints, plus every
// "vital" joint: roots, hair-root/skirt-root super-parents, and all of
// their descendants), drops the rest while reparenting their children
// onto the nearest surviving ancestor, and rewrites every affected
// vertex's joint-indices through an old→new map (§4.4 step 6).
func reduceJoints(s *scene.Scene) error {
	motionByJointName := jointMotionByName(s.Animations)

	for si := range s.Skeletons {
		sk := &s.Skeletons[si]

		// A skeleton is "keyframed" when at least one of its own joints
		// has a matching animated joint with motion; an un-keyframed
		// skeleton is left untouched.
		hasAnimation := false
		for _, j := range sk.Joints {
			if motionByJointName[j.Name] {
				hasAnimation = true
				break
			}
		}
		if !hasAnimation {
			continue
		}

		survivors := computeSurvivors(sk.Joints, motionByJointName)

		oldIndexOf := make(map[string]int32, len(sk.Joints))
		for i, j := range sk.Joints {
			oldIndexOf[j.Name] = int32(i)
		}

		newJoints := make([]scene.Joint, 0, len(survivors))
		newIndexOf := make(map[string]int32, len(survivors))
		for _, j := range sk.Joints {
			if !survivors[j.Name] {
				continue
			}
			nj := j
			nj.ParentName = nearestSurvivingAncestor(sk.Joints, survivors, j.ParentName)
			newIndexOf[j.Name] = int32(len(newJoints))
			newJoints = append(newJoints, nj)
		}

		oldToNew := make(map[int32]int32, len(sk.Joints))
		for _, j := range sk.Joints {
			oldI := oldIndexOf[j.Name]
			if newI, ok := newIndexOf[j.Name]; ok {
				oldToNew[oldI] = newI
			}
		}
		sk.Joints = newJoints

		remapMeshJoints(s.Meshes, sk.Name, oldToNew)
	}

	return nil
}

func jointHasMotion(j scene.AnimJoint) bool {
	for _, k := range j.Translations {
		if k.Value.Len() > jointEpsilon {
			return true
		}
	}
	for _, k := range j.Rotations {
		if rotationHasMotion(k.Value) {
			return true
		}
	}
	for _, k := range j.Scales {
		if absF32(k.Value-1) > jointEpsilon {
			return true
		}
	}
	return false
}

func absF32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// rotationHasMotion reports whether q differs from the identity
// rotation by more than jointEpsilon in any component (w, x, y, or z
// checked independently), matching the reference's per-component
// near-identity test rather than an aggregate distance.
func rotationHasMotion(q mathutil.Quat) bool {
	return math.Abs(q[3]-1) > jointEpsilon ||
		math.Abs(q[0]) > jointEpsilon ||
		math.Abs(q[1]) > jointEpsilon ||
		math.Abs(q[2]) > jointEpsilon
}

// jointMotionByName unions, across every animation, the set of joint
// names that have non-identity keyframes.
func jointMotionByName(anims []scene.Animation) map[string]bool {
	out := make(map[string]bool)
	for _, a := range anims {
		for _, j := range a.Joints {
			if jointHasMotion(j) {
				out[j.Name] = true
			}
		}
	}
	return out
}

// computeSurvivors returns the joint-name survivor set: keyframed-with-
// motion joints, plus every vital joint (roots, hair/skirt-root
// super-parents, and their descendants).
func computeSurvivors(joints []scene.Joint, motion map[string]bool) map[string]bool {
	survivors := make(map[string]bool, len(joints))
	for _, j := range joints {
		if motion[j.Name] {
			survivors[j.Name] = true
		}
		if j.ParentName == "" {
			survivors[j.Name] = true
		}
		if j.Type == scene.JointHairRoot || j.Type == scene.JointSkirtRoot {
			survivors[j.Name] = true
			markDescendants(joints, j.Name, survivors)
		}
	}
	return survivors
}

func markDescendants(joints []scene.Joint, rootName string, survivors map[string]bool) {
	children := make(map[string][]string, len(joints))
	for _, j := range joints {
		children[j.ParentName] = append(children[j.ParentName], j.Name)
	}

	var walk func(name string, depth int)
	walk = func(name string, depth int) {
		if depth > maxHierarchyDepth {
			return
		}
		for _, childName := range children[name] {
			survivors[childName] = true
			walk(childName, depth+1)
		}
	}
	walk(rootName, 0)
}

// nearestSurvivingAncestor walks up the parent chain starting at
// parentName until it finds a surviving joint (or the root), which
// becomes the new parent for a joint whose original parent was removed.
func nearestSurvivingAncestor(joints []scene.Joint, survivors map[string]bool, parentName string) string {
	byName := make(map[string]scene.Joint, len(joints))
	for _, j := range joints {
		byName[j.Name] = j
	}

	name := parentName
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if name == "" {
			return ""
		}
		if survivors[name] {
			return name
		}
		parent, ok := byName[name]
		if !ok {
			return ""
		}
		name = parent.ParentName
	}
	return ""
}

// remapMeshJoints rewrites every vertex's joint-indices in meshes bound
// to skeletonName through oldToNew, preserving -1 ("no joint") entries.
func remapMeshJoints(meshes []scene.Mesh, skeletonName string, oldToNew map[int32]int32) {
	for mi := range meshes {
		m := &meshes[mi]
		if m.SkeletonName != skeletonName {
			continue
		}
		for vi := range m.Vertices {
			jw := m.Vertices[vi].Joints
			for ji := range jw {
				if jw[ji].JointID < 0 {
					continue
				}
				if newID, ok := oldToNew[jw[ji].JointID]; ok {
					jw[ji].JointID = newID
				} else {
					jw[ji].JointID = -1
				}
			}
		}
	}
}
