package scenepass

import (
	"github.com/sausagetaste/daltools-go/internal/mathutil"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

// applyRootTransform bakes scene.RootTransform into every mesh vertex,
// every skeleton joint offset, every animation keyframe, and every
// actor's own transform, then resets the root transform to identity
// (§4.4 step 7).
func applyRootTransform(s *scene.Scene) error {
	m := s.RootTransform.ToMat4()
	upper := m.Upper3x3()
	mInv := m.Inverse()

	for mi := range s.Meshes {
		verts := s.Meshes[mi].Vertices
		for vi := range verts {
			verts[vi].Position = m.MulPoint(verts[vi].Position)
			n := upper.MulVec3(verts[vi].Normal)
			verts[vi].Normal = n.Normalize()
		}
	}

	for si := range s.Skeletons {
		joints := s.Skeletons[si].Joints
		for ji := range joints {
			joints[ji].Offset = mathutil.Mat4Mul(mathutil.Mat4Mul(m, joints[ji].Offset), mInv)
		}
	}

	for ai := range s.Animations {
		joints := s.Animations[ai].Joints
		for ji := range joints {
			tr := joints[ji].Translations
			for ti := range tr {
				tr[ti].Value = m.MulPoint(tr[ti].Value)
			}
			rot := joints[ji].Rotations
			for ri := range rot {
				rm := mathutil.QuatToMat3(rot[ri].Value)
				rot[ri].Value = mathutil.Mat3ToQuat(mathutil.Mat3Mul(upper, rm))
			}
		}
	}

	bakeActorTransform := func(base *scene.ActorBase) {
		base.Transform.Translation = m.MulPoint(base.Transform.Translation)
		rm := mathutil.QuatToMat3(base.Transform.Rotation)
		base.Transform.Rotation = mathutil.Mat3ToQuat(mathutil.Mat3Mul(upper, rm))
		base.Transform.Scale = signPreservingScale(upper, base.Transform.Scale)
	}

	for i := range s.MeshActors {
		bakeActorTransform(&s.MeshActors[i].ActorBase)
	}
	for i := range s.DirLights {
		bakeActorTransform(&s.DirLights[i].ActorBase)
	}
	for i := range s.PointLights {
		bakeActorTransform(&s.PointLights[i].ActorBase)
	}
	for i := range s.Spotlights {
		bakeActorTransform(&s.Spotlights[i].ActorBase)
	}

	s.RootTransform = scene.IdentityTransform()
	return nil
}

// signPreservingScale applies the upper 3×3 block to a diagonal scale,
// keeping only the magnitude change and preserving each axis's sign —
// a reflection baked into the root transform flips handedness via the
// rotation/normal path, not by negating scale twice.
func signPreservingScale(upper mathutil.Mat3, scale mathutil.Vec3) mathutil.Vec3 {
	scaled := upper.MulVec3(scale)
	out := mathutil.Vec3{}
	for i := range scale {
		mag := scaled[i]
		if mag < 0 {
			mag = -mag
		}
		sign := 1.0
		if scale[i] < 0 {
			sign = -1.0
		}
		out[i] = mag * sign
	}
	return out
}
