package dmd

import (
	"fmt"

	"github.com/sausagetaste/daltools-go/internal/codec"
	"github.com/sausagetaste/daltools-go/internal/mathutil"
	"github.com/sausagetaste/daltools-go/internal/model"
)

// writePayload encodes m into the DMD binary payload: AABB, skeleton,
// animations, then the four render-unit lists in fixed order (§4.6).
func writePayload(m *model.Model) []byte {
	w := codec.NewWriter()

	for _, f := range m.AABB.Min.ToFloat32() {
		w.WriteF32(f)
	}
	for _, f := range m.AABB.Max.ToFloat32() {
		w.WriteF32(f)
	}

	writeSkeleton(w, m.Skeleton)
	writeAnimations(w, m.Animations)

	writeStraightUnits(w, m.StraightUnits)
	writeStraightJointUnits(w, m.StraightJointUnits)
	writeIndexedUnits(w, m.IndexedUnits)
	writeIndexedJointUnits(w, m.IndexedJointUnits)

	return w.Bytes()
}

func writeSkeleton(w *codec.Writer, sk *model.Skeleton) {
	if sk == nil {
		w.WriteMat4(mathutil.Mat4Identity())
		w.WriteI32(0)
		return
	}
	w.WriteMat4(sk.Root)
	w.WriteI32(int32(len(sk.Joints)))
	for _, j := range sk.Joints {
		w.WriteNTString(j.Name)
		w.WriteI32(j.ParentIndex)
		w.WriteI32(int32(j.Type))
		w.WriteMat4(j.Offset)
	}
}

func writeAnimations(w *codec.Writer, anims []model.Animation) {
	w.WriteI32(int32(len(anims)))
	for _, a := range anims {
		w.WriteNTString(a.Name)
		w.WriteF32(a.DurationTicks)
		w.WriteF32(a.TicksPerSecond)
		w.WriteI32(int32(len(a.Joints)))
		for _, j := range a.Joints {
			w.WriteNTString(j.Name)
			w.WriteMat4(mathutil.Mat4Identity()) // reserved

			w.WriteI32(int32(len(j.Translations)))
			for _, k := range j.Translations {
				w.WriteF32(k.Time)
				f := k.Value.ToFloat32()
				w.WriteF32(f[0])
				w.WriteF32(f[1])
				w.WriteF32(f[2])
			}

			w.WriteI32(int32(len(j.Rotations)))
			for _, k := range j.Rotations {
				w.WriteF32(k.Time)
				w.WriteF32(float32(k.Value[3])) // w
				w.WriteF32(float32(k.Value[0])) // x
				w.WriteF32(float32(k.Value[1])) // y
				w.WriteF32(float32(k.Value[2])) // z
			}

			w.WriteI32(int32(len(j.Scales)))
			for _, k := range j.Scales {
				w.WriteF32(k.Time)
				w.WriteF32(k.Value)
			}
		}
	}
}

func writeUnitHeader(w *codec.Writer, name string, mat model.Material) {
	w.WriteNTString(name)
	w.WriteF32(mat.Roughness)
	w.WriteF32(mat.Metallic)
	w.WriteBool8(mat.Transparency)
	w.WriteNTString(mat.AlbedoMap)
	w.WriteNTString(mat.RoughnessMap)
	w.WriteNTString(mat.MetallicMap)
	w.WriteNTString(mat.NormalMap)
}

func writeStraightUnits(w *codec.Writer, units []model.RenderUnit[model.MeshStraight]) {
	w.WriteI64(int64(len(units)))
	for _, u := range units {
		writeUnitHeader(w, u.Name, u.Material)
		vCount := int64(len(u.Mesh.Vertices) / 3)
		w.WriteI64(vCount)
		w.WriteF32Arr(u.Mesh.Vertices)
		w.WriteF32Arr(u.Mesh.UV)
		w.WriteF32Arr(u.Mesh.Normals)
	}
}

func writeStraightJointUnits(w *codec.Writer, units []model.RenderUnit[model.MeshStraightJoint]) {
	w.WriteI64(int64(len(units)))
	for _, u := range units {
		writeUnitHeader(w, u.Name, u.Material)
		vCount := int64(len(u.Mesh.Vertices) / 3)
		w.WriteI64(vCount)
		w.WriteF32Arr(u.Mesh.Vertices)
		w.WriteF32Arr(u.Mesh.UV)
		w.WriteF32Arr(u.Mesh.Normals)
		w.WriteF32Arr(u.Mesh.JointWeights)
		w.WriteI32Arr(u.Mesh.JointIndices)
	}
}

func writeIndexedUnits(w *codec.Writer, units []model.RenderUnit[model.MeshIndexed]) {
	w.WriteI64(int64(len(units)))
	for _, u := range units {
		writeUnitHeader(w, u.Name, u.Material)
		w.WriteI64(int64(len(u.Mesh.Vertices)))
		for _, v := range u.Mesh.Vertices {
			writeInterleaved(w, v)
		}
		w.WriteI64(int64(len(u.Mesh.Indices)))
		w.WriteI32Arr(u.Mesh.Indices)
	}
}

func writeIndexedJointUnits(w *codec.Writer, units []model.RenderUnit[model.MeshIndexedJoint]) {
	w.WriteI64(int64(len(units)))
	for _, u := range units {
		writeUnitHeader(w, u.Name, u.Material)
		w.WriteI64(int64(len(u.Mesh.Vertices)))
		for _, v := range u.Mesh.Vertices {
			writeInterleaved(w, v.InterleavedVertex)
			w.WriteF32Arr(v.JointWeights[:])
			w.WriteI32Arr(v.JointIndices[:])
		}
		w.WriteI64(int64(len(u.Mesh.Indices)))
		w.WriteI32Arr(u.Mesh.Indices)
	}
}

func writeInterleaved(w *codec.Writer, v model.InterleavedVertex) {
	pos := v.Position.ToFloat32()
	nrm := v.Normal.ToFloat32()
	w.WriteF32(pos[0])
	w.WriteF32(pos[1])
	w.WriteF32(pos[2])
	w.WriteF32(nrm[0])
	w.WriteF32(nrm[1])
	w.WriteF32(nrm[2])
	w.WriteF32(v.UV[0])
	w.WriteF32(v.UV[1])
}

// readPayload decodes a DMD binary payload back into a Model, rejecting
// any parse error (including trailing bytes) as ErrCorrupted.
func readPayload(data []byte) (*model.Model, error) {
	r := codec.NewReader(data)
	m := &model.Model{}

	minF, err := r.ReadF32Arr(3)
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	maxF, err := r.ReadF32Arr(3)
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	m.AABB = model.AABB3{
		Min: mathutil.Vec3FromFloat32([3]float32(minF)),
		Max: mathutil.Vec3FromFloat32([3]float32(maxF)),
	}

	sk, err := readSkeleton(r)
	if err != nil {
		return nil, err
	}
	m.Skeleton = sk

	anims, err := readAnimations(r)
	if err != nil {
		return nil, err
	}
	m.Animations = anims

	if m.StraightUnits, err = readStraightUnits(r); err != nil {
		return nil, err
	}
	if m.StraightJointUnits, err = readStraightJointUnits(r); err != nil {
		return nil, err
	}
	if m.IndexedUnits, err = readIndexedUnits(r); err != nil {
		return nil, err
	}
	if m.IndexedJointUnits, err = readIndexedJointUnits(r); err != nil {
		return nil, err
	}

	if !r.IsEOF() {
		return nil, ErrCorrupted
	}

	return m, nil
}

func wrapCorrupted(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupted, err)
}

func readSkeleton(r *codec.Reader) (*model.Skeleton, error) {
	root, err := r.ReadMat4()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	count, err := r.ReadI32()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	if count == 0 {
		return nil, nil
	}

	sk := &model.Skeleton{Root: root}
	for i := int32(0); i < count; i++ {
		name, err := r.ReadNTString()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		parentIdx, err := r.ReadI32()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		jointType, err := r.ReadI32()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		offset, err := r.ReadMat4()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		sk.Joints = append(sk.Joints, model.Joint{
			Name:        name,
			ParentIndex: parentIdx,
			Type:        model.JointType(jointType),
			Offset:      offset,
		})
	}
	return sk, nil
}

func readAnimations(r *codec.Reader) ([]model.Animation, error) {
	count, err := r.ReadI32()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	anims := make([]model.Animation, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := r.ReadNTString()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		duration, err := r.ReadF32()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		tps, err := r.ReadF32()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		jointCount, err := r.ReadI32()
		if err != nil {
			return nil, wrapCorrupted(err)
		}

		a := model.Animation{Name: name, DurationTicks: duration, TicksPerSecond: tps}
		for j := int32(0); j < jointCount; j++ {
			jName, err := r.ReadNTString()
			if err != nil {
				return nil, wrapCorrupted(err)
			}
			if _, err := r.ReadMat4(); err != nil { // reserved
				return nil, wrapCorrupted(err)
			}

			aj := model.AnimJoint{Name: jName}

			tCount, err := r.ReadI32()
			if err != nil {
				return nil, wrapCorrupted(err)
			}
			for k := int32(0); k < tCount; k++ {
				t, err := r.ReadF32()
				if err != nil {
					return nil, wrapCorrupted(err)
				}
				xyz, err := r.ReadF32Arr(3)
				if err != nil {
					return nil, wrapCorrupted(err)
				}
				aj.Translations = append(aj.Translations, model.Keyframe3{
					Time: t, Value: mathutil.Vec3FromFloat32([3]float32(xyz)),
				})
			}

			rCount, err := r.ReadI32()
			if err != nil {
				return nil, wrapCorrupted(err)
			}
			for k := int32(0); k < rCount; k++ {
				t, err := r.ReadF32()
				if err != nil {
					return nil, wrapCorrupted(err)
				}
				wxyz, err := r.ReadF32Arr(4)
				if err != nil {
					return nil, wrapCorrupted(err)
				}
				aj.Rotations = append(aj.Rotations, model.KeyframeQuat{
					Time:  t,
					Value: mathutil.Quat{float64(wxyz[1]), float64(wxyz[2]), float64(wxyz[3]), float64(wxyz[0])},
				})
			}

			sCount, err := r.ReadI32()
			if err != nil {
				return nil, wrapCorrupted(err)
			}
			for k := int32(0); k < sCount; k++ {
				t, err := r.ReadF32()
				if err != nil {
					return nil, wrapCorrupted(err)
				}
				v, err := r.ReadF32()
				if err != nil {
					return nil, wrapCorrupted(err)
				}
				aj.Scales = append(aj.Scales, model.KeyframeFloat{Time: t, Value: v})
			}

			a.Joints = append(a.Joints, aj)
		}
		anims = append(anims, a)
	}
	return anims, nil
}

func readUnitHeader(r *codec.Reader) (string, model.Material, error) {
	name, err := r.ReadNTString()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	roughness, err := r.ReadF32()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	metallic, err := r.ReadF32()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	transparency, err := r.ReadBool8()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	albedo, err := r.ReadNTString()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	roughMap, err := r.ReadNTString()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	metalMap, err := r.ReadNTString()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	normalMap, err := r.ReadNTString()
	if err != nil {
		return "", model.Material{}, wrapCorrupted(err)
	}
	mat := model.Material{
		Roughness:    roughness,
		Metallic:     metallic,
		Transparency: transparency,
		AlbedoMap:    albedo,
		RoughnessMap: roughMap,
		MetallicMap:  metalMap,
		NormalMap:    normalMap,
	}
	return name, mat, nil
}

func readStraightUnits(r *codec.Reader) ([]model.RenderUnit[model.MeshStraight], error) {
	count, err := r.ReadI64()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	units := make([]model.RenderUnit[model.MeshStraight], 0, count)
	for i := int64(0); i < count; i++ {
		name, mat, err := readUnitHeader(r)
		if err != nil {
			return nil, err
		}
		vCount, err := r.ReadI64()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		verts, err := r.ReadF32Arr(int(vCount) * 3)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		uv, err := r.ReadF32Arr(int(vCount) * 2)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		normals, err := r.ReadF32Arr(int(vCount) * 3)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		units = append(units, model.RenderUnit[model.MeshStraight]{
			Name:     name,
			Material: mat,
			Mesh:     model.MeshStraight{Vertices: verts, UV: uv, Normals: normals},
		})
	}
	return units, nil
}

func readStraightJointUnits(r *codec.Reader) ([]model.RenderUnit[model.MeshStraightJoint], error) {
	count, err := r.ReadI64()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	units := make([]model.RenderUnit[model.MeshStraightJoint], 0, count)
	for i := int64(0); i < count; i++ {
		name, mat, err := readUnitHeader(r)
		if err != nil {
			return nil, err
		}
		vCount, err := r.ReadI64()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		verts, err := r.ReadF32Arr(int(vCount) * 3)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		uv, err := r.ReadF32Arr(int(vCount) * 2)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		normals, err := r.ReadF32Arr(int(vCount) * 3)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		weights, err := r.ReadF32Arr(int(vCount) * 4)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		indices, err := r.ReadI32Arr(int(vCount) * 4)
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		units = append(units, model.RenderUnit[model.MeshStraightJoint]{
			Name:     name,
			Material: mat,
			Mesh: model.MeshStraightJoint{
				MeshStraight: model.MeshStraight{Vertices: verts, UV: uv, Normals: normals},
				JointWeights: weights,
				JointIndices: indices,
			},
		})
	}
	return units, nil
}

func readIndexedUnits(r *codec.Reader) ([]model.RenderUnit[model.MeshIndexed], error) {
	count, err := r.ReadI64()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	units := make([]model.RenderUnit[model.MeshIndexed], 0, count)
	for i := int64(0); i < count; i++ {
		name, mat, err := readUnitHeader(r)
		if err != nil {
			return nil, err
		}
		vCount, err := r.ReadI64()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		verts := make([]model.InterleavedVertex, vCount)
		for vi := range verts {
			v, err := readInterleaved(r)
			if err != nil {
				return nil, err
			}
			verts[vi] = v
		}
		iCount, err := r.ReadI64()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		indices, err := r.ReadI32Arr(int(iCount))
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		units = append(units, model.RenderUnit[model.MeshIndexed]{
			Name:     name,
			Material: mat,
			Mesh:     model.MeshIndexed{Vertices: verts, Indices: indices},
		})
	}
	return units, nil
}

func readIndexedJointUnits(r *codec.Reader) ([]model.RenderUnit[model.MeshIndexedJoint], error) {
	count, err := r.ReadI64()
	if err != nil {
		return nil, wrapCorrupted(err)
	}
	units := make([]model.RenderUnit[model.MeshIndexedJoint], 0, count)
	for i := int64(0); i < count; i++ {
		name, mat, err := readUnitHeader(r)
		if err != nil {
			return nil, err
		}
		vCount, err := r.ReadI64()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		verts := make([]model.InterleavedJointVertex, vCount)
		for vi := range verts {
			base, err := readInterleaved(r)
			if err != nil {
				return nil, err
			}
			weights, err := r.ReadF32Arr(4)
			if err != nil {
				return nil, wrapCorrupted(err)
			}
			indices, err := r.ReadI32Arr(4)
			if err != nil {
				return nil, wrapCorrupted(err)
			}
			verts[vi] = model.InterleavedJointVertex{
				InterleavedVertex: base,
				JointWeights: [4]float32(weights),
				JointIndices: [4]int32(indices),
			}
		}
		iCount, err := r.ReadI64()
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		indices, err := r.ReadI32Arr(int(iCount))
		if err != nil {
			return nil, wrapCorrupted(err)
		}
		units = append(units, model.RenderUnit[model.MeshIndexedJoint]{
			Name:     name,
			Material: mat,
			Mesh:     model.MeshIndexedJoint{Vertices: verts, Indices: indices},
		})
	}
	return units, nil
}

func readInterleaved(r *codec.Reader) (model.InterleavedVertex, error) {
	pos, err := r.ReadF32Arr(3)
	if err != nil {
		return model.InterleavedVertex{}, wrapCorrupted(err)
	}
	nrm, err := r.ReadF32Arr(3)
	if err != nil {
		return model.InterleavedVertex{}, wrapCorrupted(err)
	}
	uv, err := r.ReadF32Arr(2)
	if err != nil {
		return model.InterleavedVertex{}, wrapCorrupted(err)
	}
	return model.InterleavedVertex{
		Position: mathutil.Vec3FromFloat32([3]float32(pos)),
		Normal:   mathutil.Vec3FromFloat32([3]float32(nrm)),
		UV:       [2]float32(uv),
	}, nil
}
