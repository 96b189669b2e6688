package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sausagetaste/daltools-go/internal/bundle"
	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

func TestMain(m *testing.M) {
	log = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

func TestKeygenAndKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "mykey")

	keygen := newKeygenCmd()
	keygen.SetArgs([]string{"-o", prefix, "--owner", "alice", "--email", "a@example.com"})
	require.NoError(t, keygen.Execute())

	secPath := prefix + "-data_sec.dky"
	pubPath := prefix + "-data_pub.dky"
	assert.FileExists(t, secPath)
	assert.FileExists(t, pubPath)

	keyCmd := newKeyCmd()
	keyCmd.SetArgs([]string{secPath, pubPath})
	require.NoError(t, keyCmd.Execute())
}

func TestBundleBundleViewExtractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.txt"), []byte("world"), 0o644))

	archivePath := filepath.Join(dir, "out.dal-bundle")
	bundleCmd := newBundleCmd()
	bundleCmd.SetArgs([]string{"-o", archivePath, filepath.Join(dir, "a.txt"), sub})
	require.NoError(t, bundleCmd.Execute())
	assert.FileExists(t, archivePath)

	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	repo, err := bundle.Open(data)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())

	viewCmd := newBundleViewCmd()
	viewCmd.SetArgs([]string{archivePath})
	require.NoError(t, viewCmd.Execute())

	extractCmd := newExtractCmd()
	extractCmd.SetArgs([]string{archivePath})
	require.NoError(t, extractCmd.Execute())

	extractedDir := filepath.Join(dir, "out")
	assert.FileExists(t, filepath.Join(extractedDir, "a.txt"))
	assert.FileExists(t, filepath.Join(extractedDir, "b.txt"))
}

func TestBundleDuplicateBasenameFails(t *testing.T) {
	dir := t.TempDir()
	sub1 := filepath.Join(dir, "s1")
	sub2 := filepath.Join(dir, "s2")
	require.NoError(t, os.Mkdir(sub1, 0o755))
	require.NoError(t, os.Mkdir(sub2, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub1, "a.txt"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub2, "a.txt"), []byte("2"), 0o644))

	bundleCmd := newBundleCmd()
	bundleCmd.SetArgs([]string{"-o", filepath.Join(dir, "out.dal-bundle"), sub1, sub2})
	err := bundleCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, exitDuplicateName, exitCodeFor(err))
}

func TestCompileAndSign(t *testing.T) {
	dir := t.TempDir()

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
	inputPath := filepath.Join(dir, "actor.json")
	require.NoError(t, os.WriteFile(inputPath, data, 0o644))

	prefix := filepath.Join(dir, "sign-key")
	keygen := newKeygenCmd()
	keygen.SetArgs([]string{"-o", prefix})
	require.NoError(t, keygen.Execute())

	compileCmd := newCompileCmd()
	compileCmd.SetArgs([]string{"-c", "none", "--sign", prefix + "-data_sec.dky", inputPath})
	require.NoError(t, compileCmd.Execute())

	outputPath := filepath.Join(dir, "actor.dmd")
	assert.FileExists(t, outputPath)
	assert.FileExists(t, outputPath+".sig")

	encoded, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	_, err = dmd.Decode(encoded)
	require.NoError(t, err)
}

func TestExitCodeForMagicMismatch(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.dal-bundle")
	require.NoError(t, os.WriteFile(badPath, make([]byte, 104), 0o644))

	viewCmd := newBundleViewCmd()
	viewCmd.SetArgs([]string{badPath})
	err := viewCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, exitMagicMismatch, exitCodeFor(err))
}
