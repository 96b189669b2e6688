package dmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sausagetaste/daltools-go/internal/keys"
	"github.com/sausagetaste/daltools-go/internal/mathutil"
	"github.com/sausagetaste/daltools-go/internal/model"
)

func sampleModel() *model.Model {
	mat := model.Material{
		Roughness:    0.5,
		Metallic:     0.1,
		Transparency: false,
		AlbedoMap:    "a.png",
	}
	return &model.Model{
		AABB: model.AABB3{
			Min: mathutil.Vec3{-1, -1, -1},
			Max: mathutil.Vec3{1, 1, 1},
		},
		StraightUnits: []model.RenderUnit[model.MeshStraight]{
			{
				Name:     "unit0",
				Material: mat,
				Mesh: model.MeshStraight{
					Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0},
					UV:       []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
					Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
				},
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := sampleModel()

	for _, method := range []Method{MethodNone, MethodDeflate, MethodBrotli} {
		encoded, err := Encode(m, method)
		require.NoError(t, err)

		assert.Equal(t, Magic[:], encoded[:8])
		assert.Equal(t, int32(method), i32FromLE(encoded[8:12]))

		decoded, err := Decode(encoded)
		require.NoError(t, err)

		require.Len(t, decoded.StraightUnits, 1)
		assert.Equal(t, "unit0", decoded.StraightUnits[0].Name)
		assert.Equal(t, m.StraightUnits[0].Material, decoded.StraightUnits[0].Material)
		assert.Equal(t, m.StraightUnits[0].Mesh.Vertices, decoded.StraightUnits[0].Mesh.Vertices)
		assert.Equal(t, m.AABB, decoded.AABB)

		reencoded, err := Encode(decoded, method)
		require.NoError(t, err)
		assert.Equal(t, encoded, reencoded)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := make([]byte, 20)
	copy(data, "NOTDALMD")
	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrMagicMismatch)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeCorruptedPayload(t *testing.T) {
	m := sampleModel()
	encoded, err := Encode(m, MethodNone)
	require.NoError(t, err)

	truncated := encoded[:len(encoded)-4]
	_, err = Decode(truncated)
	assert.Error(t, err)
}

func TestSignVerifyPayload(t *testing.T) {
	pub, sec, err := keys.GenDataKeypair()
	require.NoError(t, err)

	m := sampleModel()
	encoded, err := Encode(m, MethodBrotli)
	require.NoError(t, err)

	sig := SignPayload(sec, encoded)
	assert.True(t, VerifyPayload(pub, encoded, sig))

	tampered := append([]byte(nil), encoded...)
	tampered[len(tampered)-1] ^= 0xFF
	assert.False(t, VerifyPayload(pub, tampered, sig))
}
