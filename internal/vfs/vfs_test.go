package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sausagetaste/daltools-go/internal/bundle"
)

func mustWriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestIsFileAndListFiles(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	mustWriteFile(t, filepath.Join(root, "sub", "b.txt"), []byte("b"))

	fsys := New()
	fsys.AddMount("/assets", root)

	assert.True(t, fsys.IsFile("/assets/a.txt"))
	assert.False(t, fsys.IsFile("/assets/missing.txt"))

	files := fsys.ListFiles("/assets")
	assert.Equal(t, []string{"/assets/a.txt"}, files)

	folders := fsys.ListFolders("/assets")
	assert.Equal(t, []string{"/assets/sub"}, folders)
}

func TestReadFilePlain(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), []byte("hello"))

	fsys := New()
	fsys.AddMount("/assets", root)

	data, err := fsys.ReadFile("/assets/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = fsys.ReadFile("/assets/missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadFileFromBundle(t *testing.T) {
	root := t.TempDir()

	archive, err := bundle.Build([]bundle.Item{
		{Name: "inner.txt", Data: []byte("packed")},
	})
	require.NoError(t, err)
	mustWriteFile(t, filepath.Join(root, "pack.bundle"), archive)

	fsys := New()
	fsys.AddMount("/assets", root)

	data, err := fsys.ReadFile("/assets/pack.bundle/inner.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("packed"), data)
}

func TestMountPriorityFirstWins(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	mustWriteFile(t, filepath.Join(rootA, "x.txt"), []byte("from A"))
	mustWriteFile(t, filepath.Join(rootB, "x.txt"), []byte("from B"))

	fsys := New()
	fsys.AddMount("/assets", rootA)
	fsys.AddMount("/assets", rootB)

	data, err := fsys.ReadFile("/assets/x.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("from A"), data)
}

type recordingWalker struct {
	folders []string
	files   []string
	bundles []string
}

func (w *recordingWalker) OnFolder(p string, depth int) bool {
	w.folders = append(w.folders, p)
	return true
}
func (w *recordingWalker) OnFile(p string, depth int) { w.files = append(w.files, p) }
func (w *recordingWalker) OnBundle(p string, depth int) { w.bundles = append(w.bundles, p) }

func TestWalk(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	mustWriteFile(t, filepath.Join(root, "sub", "b.txt"), []byte("b"))

	fsys := New()
	fsys.AddMount("/assets", root)

	w := &recordingWalker{}
	fsys.Walk("/assets", w)

	assert.Contains(t, w.folders, "/assets")
	assert.Contains(t, w.folders, "/assets/sub")
	assert.Contains(t, w.files, "/assets/a.txt")
	assert.Contains(t, w.files, "/assets/sub/b.txt")
}

func TestWalkEntersBundleViaItemList(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), []byte("a"))

	archive, err := bundle.Build([]bundle.Item{
		{Name: "x.txt", Data: []byte("1")},
		{Name: "y.txt", Data: []byte("2")},
	})
	require.NoError(t, err)
	mustWriteFile(t, filepath.Join(root, "pack.bundle"), archive)

	fsys := New()
	fsys.AddMount("/assets", root)

	w := &recordingWalker{}
	fsys.Walk("/assets", w)

	assert.Contains(t, w.files, "/assets/a.txt")
	assert.Contains(t, w.bundles, "/assets/pack.bundle")
	assert.NotContains(t, w.files, "/assets/pack.bundle")
	assert.Contains(t, w.files, "/assets/pack.bundle/x.txt")
	assert.Contains(t, w.files, "/assets/pack.bundle/y.txt")
}
