package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/model"
	"github.com/sausagetaste/daltools-go/internal/vfs"
)

func TestRequestImageLifecycle(t *testing.T) {
	root := t.TempDir()
	fsys := vfs.New()
	fsys.AddMount("/assets", root)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.png"), buf.Bytes(), 0o644))

	mgr := New(fsys)
	assert.Equal(t, StateLoading, mgr.Request("/assets/a.png"))
	assert.Equal(t, StateReady, mgr.Request("/assets/a.png"))
	assert.Equal(t, StateReady, mgr.Request("/assets/a.png"))

	got, ok := mgr.GetImage("/assets/a.png")
	require.True(t, ok)
	w, h := got.Dimensions()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestRequestModelLifecycle(t *testing.T) {
	root := t.TempDir()
	fsys := vfs.New()
	fsys.AddMount("/assets", root)

	encoded, err := dmd.Encode(&model.Model{}, dmd.MethodNone)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "m.dmd"), encoded, 0o644))

	mgr := New(fsys)
	assert.Equal(t, StateLoading, mgr.Request("/assets/m.dmd"))
	assert.Equal(t, StateReady, mgr.Request("/assets/m.dmd"))

	got, ok := mgr.GetModel("/assets/m.dmd")
	require.True(t, ok)
	assert.NotNil(t, got)
}

func TestRequestUnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	fsys := vfs.New()
	fsys.AddMount("/assets", root)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hi"), 0o644))

	mgr := New(fsys)
	assert.Equal(t, StateLoading, mgr.Request("/assets/a.txt"))
	assert.Equal(t, StateNotSupported, mgr.Request("/assets/a.txt"))
}

func TestRequestMissingFile(t *testing.T) {
	root := t.TempDir()
	fsys := vfs.New()
	fsys.AddMount("/assets", root)

	mgr := New(fsys)
	assert.Equal(t, StateError, mgr.Request("/assets/missing.png"))
}
