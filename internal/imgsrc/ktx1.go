package imgsrc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ktxIdentifier = [12]byte{
	0xAB, 'K', 'T', 'X', ' ', '1', '1', 0xBB, '\r', '\n', 0x1A, '\n',
}

// ErrKTXCompressed is returned by TranscodeToRGBA8 for a KTX1 container
// whose glType is 0 (block-compressed / supercompacted). Transcoding a
// compressed KTX payload needs a full GPU-format transcoder (libktx's
// basisu path in the reference implementation); nothing in this module's
// dependency set provides one, so compressed KTX sources are reported as
// NeedsTranscode() == true and fail transcoding with this error rather
// than silently decoding garbage.
var ErrKTXCompressed = errors.New("imgsrc: compressed KTX payload has no transcoder in this build")

func looksLikeKTX(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return [12]byte(data[:12]) == ktxIdentifier
}

// ktx1Header is the fixed-size KTX version 1 header, little-endian per
// the identifier's own endianness field (big-endian files are rejected,
// matching the scope of the other formats in this module — the bundle
// compiler never emits them).
type ktx1Header struct {
	Endianness            uint32
	GLType                uint32
	GLTypeSize             uint32
	GLFormat              uint32
	GLInternalFormat      uint32
	GLBaseInternalFormat  uint32
	PixelWidth            uint32
	PixelHeight           uint32
	PixelDepth            uint32
	NumberOfArrayElements uint32
	NumberOfFaces         uint32
	NumberOfMipmapLevels  uint32
	BytesOfKeyValueData   uint32
}

const ktx1HeaderSize = 13 * 4

type ktx1Image struct {
	width, height int
	glType        uint32
	rgba          *image4
	raw           []byte
}

// image4 is a minimal RGBA8 pixel buffer, avoiding a dependency on
// image.NRGBA for a format the stdlib image package cannot decode.
type image4 struct {
	w, h int
	pix  []uint8
}

func decodeKTX1(data []byte) (Image, error) {
	if len(data) < 12+ktx1HeaderSize {
		return nil, fmt.Errorf("imgsrc: truncated ktx1 header")
	}

	var h ktx1Header
	off := 12
	readU32 := func() uint32 {
		v := binary.LittleEndian.Uint32(data[off : off+4])
		off += 4
		return v
	}
	h.Endianness = readU32()
	h.GLType = readU32()
	h.GLTypeSize = readU32()
	h.GLFormat = readU32()
	h.GLInternalFormat = readU32()
	h.GLBaseInternalFormat = readU32()
	h.PixelWidth = readU32()
	h.PixelHeight = readU32()
	h.PixelDepth = readU32()
	h.NumberOfArrayElements = readU32()
	h.NumberOfFaces = readU32()
	h.NumberOfMipmapLevels = readU32()
	h.BytesOfKeyValueData = readU32()

	if h.Endianness != 0x04030201 {
		return nil, fmt.Errorf("imgsrc: big-endian ktx1 not supported")
	}

	off += int(h.BytesOfKeyValueData)
	if off+4 > len(data) {
		return nil, fmt.Errorf("imgsrc: truncated ktx1 mip level")
	}

	img := &ktx1Image{
		width:  int(h.PixelWidth),
		height: int(h.PixelHeight),
		glType: h.GLType,
	}

	if h.GLType == 0 {
		// Compressed: stash the raw mip-0 payload for a future
		// transcoder and report NeedsTranscode() == true.
		imageSize := binary.LittleEndian.Uint32(data[off : off+4])
		off += 4
		end := off + int(imageSize)
		if end > len(data) {
			end = len(data)
		}
		img.raw = data[off:end]
		return img, nil
	}

	const glRGBA = 0x1908
	if h.GLFormat != glRGBA || h.GLTypeSize != 1 {
		return nil, fmt.Errorf("imgsrc: unsupported uncompressed ktx1 format 0x%x", h.GLFormat)
	}

	imageSize := binary.LittleEndian.Uint32(data[off : off+4])
	off += 4
	want := img.width * img.height * 4
	if int(imageSize) < want || off+want > len(data) {
		return nil, fmt.Errorf("imgsrc: truncated ktx1 rgba8 pixel data")
	}

	img.rgba = &image4{w: img.width, h: img.height, pix: append([]byte(nil), data[off:off+want]...)}
	return img, nil
}

func (k *ktx1Image) Dimensions() (int, int) { return k.width, k.height }

func (k *ktx1Image) SampleRGBA8(x, y int) [4]uint8 {
	if k.rgba == nil {
		return [4]uint8{}
	}
	i := (y*k.rgba.w + x) * 4
	return [4]uint8{k.rgba.pix[i], k.rgba.pix[i+1], k.rgba.pix[i+2], k.rgba.pix[i+3]}
}

func (k *ktx1Image) NeedsTranscode() bool { return k.rgba == nil }

func (k *ktx1Image) TranscodeToRGBA8() error {
	if k.rgba != nil {
		return nil
	}
	return ErrKTXCompressed
}
