// Package imgsrc implements the decoded-image capability contract used by
// the transparency-split scene pass to sample an albedo texture's alpha
// channel, and by the resource manager to load image files.
package imgsrc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when no decoder recognizes the data.
var ErrUnsupportedFormat = errors.New("imgsrc: unsupported image format")

// Image is the decoded-image capability contract every backend satisfies.
// A KTX1 source with a compressed internal format reports
// NeedsTranscode() == true, and its TranscodeToRGBA8 fails with
// ErrKTXCompressed; every other backend is already RGBA8-resident and
// reports false.
type Image interface {
	Dimensions() (width, height int)
	// SampleRGBA8 returns the RGBA8 texel at (x, y). Coordinates outside
	// Dimensions() are a programmer error and may panic.
	SampleRGBA8(x, y int) [4]uint8
	NeedsTranscode() bool
	TranscodeToRGBA8() error
}

// rgba8Image is the common backend for every format that golang's image
// package (plus the tga/bmp decoders) can already decode to an
// addressable pixel buffer.
type rgba8Image struct {
	img *image.NRGBA
}

func (r *rgba8Image) Dimensions() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *rgba8Image) SampleRGBA8(x, y int) [4]uint8 {
	b := r.img.Bounds()
	c := r.img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	return [4]uint8{c.R, c.G, c.B, c.A}
}

func (r *rgba8Image) NeedsTranscode() bool  { return false }
func (r *rgba8Image) TranscodeToRGBA8() error { return nil }

// Decode parses image bytes, choosing a backend by sniffing the data
// first and falling back to the path's extension (mirroring the OZJ/OZT
// container-then-extension dispatch the teacher uses in
// internal/texture/loader.go, generalized to the plain-container formats
// this spec names in §5).
func Decode(path string, data []byte) (Image, error) {
	if looksLikeKTX(data) {
		return decodeKTX1(data)
	}

	ext := ""
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = strings.ToLower(path[i+1:])
	}

	switch ext {
	case "tga":
		img, err := tga.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imgsrc: decode tga %s: %w", path, err)
		}
		return &rgba8Image{img: toNRGBA(img)}, nil
	case "bmp":
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imgsrc: decode bmp %s: %w", path, err)
		}
		return &rgba8Image{img: toNRGBA(img)}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}
	return &rgba8Image{img: toNRGBA(img)}, nil
}

// toNRGBA converts any decoded image to NRGBA, preserving alpha where the
// source has none by forcing it opaque.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.CMYK:
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := dst.PixOffset(x, y)
				dst.Pix[i+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
