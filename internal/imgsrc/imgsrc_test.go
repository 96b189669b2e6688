package imgsrc

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, fill color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	data := encodePNG(t, 2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img, err := Decode("albedo.png", data)
	require.NoError(t, err)

	w, h := img.Dimensions()
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)
	require.False(t, img.NeedsTranscode())
	require.Equal(t, [4]uint8{10, 20, 30, 255}, img.SampleRGBA8(0, 0))
}

func buildUncompressedKTX1(w, h int, pix []byte) []byte {
	buf := new(bytes.Buffer)
	buf.Write(ktxIdentifier[:])

	write := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}

	write(0x04030201) // endianness
	write(1)          // glType (nonzero == uncompressed)
	write(1)          // glTypeSize
	write(0x1908)     // glFormat == GL_RGBA
	write(0x8058)     // glInternalFormat == GL_RGBA8
	write(0x1908)     // glBaseInternalFormat
	write(uint32(w))
	write(uint32(h))
	write(0) // pixelDepth
	write(0) // arrayElements
	write(1) // faces
	write(1) // mip levels
	write(0) // key-value bytes

	write(uint32(len(pix)))
	buf.Write(pix)
	return buf.Bytes()
}

func TestDecodeKTX1Uncompressed(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	data := buildUncompressedKTX1(2, 1, pix)

	img, err := Decode("tex.ktx", data)
	require.NoError(t, err)
	require.False(t, img.NeedsTranscode())

	w, h := img.Dimensions()
	require.Equal(t, 2, w)
	require.Equal(t, 1, h)
	require.Equal(t, [4]uint8{1, 2, 3, 4}, img.SampleRGBA8(0, 0))
	require.Equal(t, [4]uint8{5, 6, 7, 8}, img.SampleRGBA8(1, 0))
}

func TestDecodeKTX1CompressedNeedsTranscode(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.Write(ktxIdentifier[:])
	write := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	write(0x04030201)
	write(0) // glType == 0 (compressed)
	write(0)
	write(0)
	write(0)
	write(0)
	write(4)
	write(4)
	write(0)
	write(0)
	write(1)
	write(1)
	write(0)
	write(8)
	buf.Write(make([]byte, 8))

	img, err := Decode("tex.ktx", buf.Bytes())
	require.NoError(t, err)
	require.True(t, img.NeedsTranscode())
	require.ErrorIs(t, img.TranscodeToRGBA8(), ErrKTXCompressed)
}
