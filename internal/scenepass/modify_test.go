package scenepass

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sausagetaste/daltools-go/internal/scene"
)

func TestFlipUVVertically(t *testing.T) {
	s := &scene.Scene{
		Meshes: []scene.Mesh{{
			Name: "m",
			Vertices: []scene.Vertex{
				{UV: [2]float32{0.25, 0.1}},
				{UV: [2]float32{0.75, 1}},
			},
		}},
	}
	FlipUVVertically(s)
	assert.InDelta(t, 0.9, s.Meshes[0].Vertices[0].UV[1], 1e-6)
	assert.InDelta(t, 0, s.Meshes[0].Vertices[1].UV[1], 1e-6)
}

func TestClearCollectionInfo(t *testing.T) {
	s := &scene.Scene{
		MeshActors: []scene.MeshActor{{ActorBase: scene.ActorBase{Collections: []string{"a", "b"}}}},
		DirLights:  []scene.DirLightActor{{ActorBase: scene.ActorBase{Collections: []string{"c"}}}},
	}
	ClearCollectionInfo(s)
	assert.Nil(t, s.MeshActors[0].Collections)
	assert.Nil(t, s.DirLights[0].Collections)
}
