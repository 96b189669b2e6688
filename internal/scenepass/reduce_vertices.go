package scenepass

import (
	"encoding/binary"
	"math"

	"github.com/sausagetaste/daltools-go/internal/scene"
)

// reduceIndexedVertices rebuilds each mesh's (vertices, indices) pair by
// walking the existing indices and re-emitting the pointed-to vertex
// through a dedup-then-emit table, so byte-equal vertices end up sharing
// one index (§4.4 step 1).
func reduceIndexedVertices(s *scene.Scene) error {
	for mi := range s.Meshes {
		m := &s.Meshes[mi]

		newVerts := make([]scene.Vertex, 0, len(m.Vertices))
		newIndices := make([]int32, 0, len(m.Indices))
		seen := make(map[string]int32, len(m.Vertices))

		for _, idx := range m.Indices {
			if idx < 0 || int(idx) >= len(m.Vertices) {
				return ErrInvariantViolation
			}
			v := m.Vertices[idx]
			key := vertexKey(v)
			newIdx, ok := seen[key]
			if !ok {
				newIdx = int32(len(newVerts))
				newVerts = append(newVerts, v)
				seen[key] = newIdx
			}
			newIndices = append(newIndices, newIdx)
		}

		m.Vertices = newVerts
		m.Indices = newIndices
	}
	return nil
}

// vertexKey renders a Vertex into a byte-exact map key, so only vertices
// that are bit-equal per scene.Vertex.Equal collide.
func vertexKey(v scene.Vertex) string {
	buf := make([]byte, 0, 40+8*len(v.Joints))
	var tmp [8]byte

	putF64 := func(f float64) {
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(f))
		buf = append(buf, tmp[:]...)
	}
	putF32 := func(f float32) {
		binary.LittleEndian.PutUint32(tmp[:4], math.Float32bits(f))
		buf = append(buf, tmp[:4]...)
	}
	putI32 := func(i int32) {
		binary.LittleEndian.PutUint32(tmp[:4], uint32(i))
		buf = append(buf, tmp[:4]...)
	}

	for _, f := range v.Position {
		putF64(f)
	}
	for _, f := range v.Normal {
		putF64(f)
	}
	putF32(v.UV[0])
	putF32(v.UV[1])
	putI32(int32(len(v.Joints)))
	for _, jw := range v.Joints {
		putI32(jw.JointID)
		putF32(jw.Weight)
	}
	return string(buf)
}
