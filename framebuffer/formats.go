package framebuffer

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// Color16 is a 5:5:5:1 RGBA color as used by the HiRes video mode.
type Color16 uint16

func (c Color16) RGBA() (r, g, b, a uint32) {
	r = uint32(c) & 0xf800
	g = uint32(c<<5) & 0xf800
	b = uint32(c<<10) & 0xf800
	a = uint32(c&1) * 0xffff
	return
}

var Color16Model color.Model = color.ModelFunc(func(c color.Color) color.Color {
	return toColor16(c)
})

// toColor16 truncates each channel to 5 bits. Alpha is either fully opaque or
// fully transparent.
func toColor16(c color.Color) Color16 {
	if c, ok := c.(Color16); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	return Color16(r&0xf800 | (g&0xf800)>>5 | (b&0xf800)>>10 | a>>15)
}

// RGBA16 is an in-memory image of Color16 pixels stored big endian.
type RGBA16 struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewRGBA16(r image.Rectangle) *RGBA16 {
	return &RGBA16{
		Pix:    make([]uint8, 2*r.Dx()*r.Dy()),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

func (p *RGBA16) ColorModel() color.Model { return Color16Model }
func (p *RGBA16) Bounds() image.Rectangle { return p.Rect }
func (p *RGBA16) At(x, y int) color.Color { return p.Color16At(x, y) }

// Color16At returns the transparent zero color outside the bounds.
func (p *RGBA16) Color16At(x, y int) Color16 {
	if !image.Pt(x, y).In(p.Rect) {
		return 0
	}
	return Color16(binary.BigEndian.Uint16(p.Pix[p.PixOffset(x, y):]))
}

func (p *RGBA16) Set(x, y int, c color.Color) {
	p.SetColor16(x, y, toColor16(c))
}

func (p *RGBA16) SetColor16(x, y int, c Color16) {
	if !image.Pt(x, y).In(p.Rect) {
		return
	}
	binary.BigEndian.PutUint16(p.Pix[p.PixOffset(x, y):], uint16(c))
}

func (p *RGBA16) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// Quantize reduces img to a palette of at most n colors using median cut.
// With dither set, the quantization error is diffused with Floyd-Steinberg.
func Quantize(img image.Image, n int, dither bool) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, n), img)

	dst := image.NewPaletted(img.Bounds(), p)
	var d draw.Drawer = draw.Src
	if dither {
		d = draw.FloydSteinberg
	}
	d.Draw(dst, dst.Bounds(), img, img.Bounds().Min)
	return dst
}
