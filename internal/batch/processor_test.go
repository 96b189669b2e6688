package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

func writeSceneJSON(t *testing.T, dir, name string) string {
	t.Helper()

	s := &scene.Scene{
		RootTransform: scene.IdentityTransform(),
		Materials:     []scene.Material{{Name: "mat"}},
		Meshes: []scene.Mesh{{
			Name: "mesh",
			Vertices: []scene.Vertex{
				{Position: [3]float64{0, 0, 0}, UV: [2]float32{0, 0}},
				{Position: [3]float64{1, 0, 0}, UV: [2]float32{1, 0}},
				{Position: [3]float64{0, 1, 0}, UV: [2]float32{0, 1}},
			},
			Indices: []int32{0, 1, 2},
		}},
		MeshActors: []scene.MeshActor{{
			ActorBase:   scene.ActorBase{Name: "actor", Transform: scene.IdentityTransform()},
			RenderPairs: []scene.RenderPair{{MeshName: "mesh", MaterialName: "mat"}},
		}},
	}

	data, err := scene.SaveJSON(s)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunCompilesSceneToModel(t *testing.T) {
	dir := t.TempDir()
	input := writeSceneJSON(t, dir, "actor.json")

	cfg := Config{AssetDir: dir, Compression: dmd.MethodNone, Workers: 2}
	results := Run(cfg, []string{input})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success, results[0].Error)
	assert.FileExists(t, results[0].OutputPath)

	encoded, err := os.ReadFile(results[0].OutputPath)
	require.NoError(t, err)
	mdl, err := dmd.Decode(encoded)
	require.NoError(t, err)
	assert.Len(t, mdl.IndexedUnits, 1)
}

func TestRunReportsReadError(t *testing.T) {
	cfg := Config{Workers: 1}
	results := Run(cfg, []string{"/does/not/exist.json"})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
}
