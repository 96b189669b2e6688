package scenepass

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sausagetaste/daltools-go/internal/mathutil"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

func TestReduceIndexedVertices(t *testing.T) {
	v := scene.Vertex{Position: mathutil.Vec3{0, 0, 0}, Normal: mathutil.Vec3{0, 1, 0}, UV: [2]float32{0, 0}}
	mesh := scene.Mesh{
		Name:     "m",
		Vertices: []scene.Vertex{v, v, v},
		Indices:  []int32{0, 1, 2},
	}
	s := &scene.Scene{Meshes: []scene.Mesh{mesh}}

	require.NoError(t, reduceIndexedVertices(s))
	require.Len(t, s.Meshes[0].Vertices, 1)
	require.Equal(t, []int32{0, 0, 0}, s.Meshes[0].Indices)
}

func TestRemoveDuplicateMaterials(t *testing.T) {
	a := scene.Material{Name: "a", Roughness: 0.5, AlbedoMap: "x.png"}
	b := a
	b.Name = "b"
	s := &scene.Scene{
		Materials: []scene.Material{a, b},
		MeshActors: []scene.MeshActor{
			{RenderPairs: []scene.RenderPair{{MeshName: "m", MaterialName: "b"}}},
		},
	}

	require.NoError(t, removeDuplicateMaterials(s))
	require.Len(t, s.Materials, 1)
	require.Equal(t, "a", s.Materials[0].Name)
	require.Equal(t, "a", s.MeshActors[0].RenderPairs[0].MaterialName)
}

func TestMergeRedundantMeshActors(t *testing.T) {
	base := scene.ActorBase{Name: "actor0", Transform: scene.IdentityTransform()}
	a0 := scene.MeshActor{ActorBase: base, RenderPairs: []scene.RenderPair{{MeshName: "m0", MaterialName: "mat"}}}
	base1 := base
	base1.Name = "actor1"
	a1 := scene.MeshActor{ActorBase: base1, RenderPairs: []scene.RenderPair{{MeshName: "m1", MaterialName: "mat"}}}

	s := &scene.Scene{MeshActors: []scene.MeshActor{a0, a1}}
	require.NoError(t, mergeRedundantMeshActors(s))

	require.Len(t, s.MeshActors[0].RenderPairs, 2)
	require.Empty(t, s.MeshActors[1].RenderPairs)
}

func TestReduceJointsIdempotent(t *testing.T) {
	sk := scene.Skeleton{
		Name: "sk",
		Joints: []scene.Joint{
			{Name: "j0", ParentName: ""},
			{Name: "j1", ParentName: "j0"},
			{Name: "j2", ParentName: "j1"},
			{Name: "j3", ParentName: "j2"},
			{Name: "j4", ParentName: "j3"},
		},
	}
	anim := scene.Animation{
		Name: "a",
		Joints: []scene.AnimJoint{
			{Name: "j0", Translations: []scene.Keyframe3{{Time: 0, Value: mathutil.Vec3{0, 0, 0}}}},
			{Name: "j2", Translations: []scene.Keyframe3{{Time: 0, Value: mathutil.Vec3{1, 0, 0}}}},
		},
	}
	s := &scene.Scene{Skeletons: []scene.Skeleton{sk}, Animations: []scene.Animation{anim}}

	require.NoError(t, reduceJoints(s))
	firstCount := len(s.Skeletons[0].Joints)
	require.Greater(t, firstCount, 0)

	require.NoError(t, reduceJoints(s))
	require.Equal(t, firstCount, len(s.Skeletons[0].Joints))
}

func writeTestPNG(t *testing.T, path string, w, h int, leftAlpha, rightAlpha uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := leftAlpha
			if x >= w/2 {
				a = rightAlpha
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: a})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestSplitByTransparency(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "albedo.png"), 4, 4, 255, 100)

	vOpaque := func(u, v float32) scene.Vertex {
		return scene.Vertex{Position: mathutil.Vec3{float64(u), float64(v), 0}, Normal: mathutil.Vec3{0, 0, 1}, UV: [2]float32{u, v}}
	}
	mesh := scene.Mesh{
		Name: "tri",
		Vertices: []scene.Vertex{
			vOpaque(0.05, 0.05), vOpaque(0.2, 0.05), vOpaque(0.05, 0.2), // left half, opaque
			vOpaque(0.8, 0.8), vOpaque(0.95, 0.8), vOpaque(0.8, 0.95), // right half, transparent
		},
		Indices: []int32{0, 1, 2, 3, 4, 5},
	}
	mat := scene.Material{Name: "mat", AlbedoMap: "albedo.png"}
	actor := scene.MeshActor{
		ActorBase:   scene.ActorBase{Name: "actor0", Transform: scene.IdentityTransform()},
		RenderPairs: []scene.RenderPair{{MeshName: "tri", MaterialName: "mat"}},
	}
	s := &scene.Scene{Materials: []scene.Material{mat}, Meshes: []scene.Mesh{mesh}, MeshActors: []scene.MeshActor{actor}}

	require.NoError(t, splitByTransparency(s, dir))

	require.Len(t, s.MeshActors[0].RenderPairs, 2)
	var sawOpaque, sawTransp bool
	for _, p := range s.MeshActors[0].RenderPairs {
		if p.MaterialName == "mat" {
			sawOpaque = true
		}
		if p.MaterialName == "mat#transp" {
			sawTransp = true
		}
	}
	require.True(t, sawOpaque)
	require.True(t, sawTransp)
}

func TestApplyRootTransformResetsRoot(t *testing.T) {
	s := &scene.Scene{
		RootTransform: scene.Transform{
			Translation: mathutil.Vec3{1, 2, 3},
			Rotation:    mathutil.Quat{0, 0, 0, 1},
			Scale:       mathutil.Vec3{2, 2, 2},
		},
		Meshes: []scene.Mesh{
			{
				Name: "m",
				Vertices: []scene.Vertex{
					{Position: mathutil.Vec3{1, 0, 0}, Normal: mathutil.Vec3{1, 0, 0}, UV: [2]float32{0, 0}},
				},
				Indices: []int32{0},
			},
		},
	}

	require.NoError(t, applyRootTransform(s))
	require.Equal(t, scene.IdentityTransform(), s.RootTransform)
	require.InDelta(t, 1.0, s.Meshes[0].Vertices[0].Normal.Len(), 1e-5)
	require.Equal(t, mathutil.Vec3{3, 2, 3}, s.Meshes[0].Vertices[0].Position)
}
