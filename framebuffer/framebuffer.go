// Package framebuffer implements a double buffered framebuffer in main memory.
//
// Framebuffer implements the driver interface of
// github.com/embeddedgo/display/pix, so it can be used as the backend of a
// pix.Display. All rendering is done in software by the image/draw package.
package framebuffer

import (
	"image"
	"image/color"
	"image/draw"
)

// Format selects the pixel format of the framebuffer.
type Format uint8

const (
	FormatRGBA16   Format = iota // 5:5:5:1
	FormatRGBA32                 // 8:8:8:8
	FormatPaletted               // 8 bit color index
)

// Represents an image that is scanned out to the screen while the next frame
// is rendered into the second buffer. Implements draw.Image for the buffer
// currently rendered to.
type Framebuffer struct {
	bufs        [2]draw.Image
	read, write draw.Image
	fill        image.Uniform
	format      Format
}

// NewFramebuffer allocates both buffers. The palette is only used by the
// FormatPaletted format and may be nil for all others.
func NewFramebuffer(size image.Point, format Format, palette color.Palette) *Framebuffer {
	fb := &Framebuffer{format: format, fill: image.Uniform{C: color.Black}}

	r := image.Rectangle{Max: size}
	for i := range fb.bufs {
		switch format {
		case FormatRGBA16:
			fb.bufs[i] = NewRGBA16(r)
		case FormatPaletted:
			fb.bufs[i] = image.NewPaletted(r, palette)
		default:
			fb.bufs[i] = image.NewRGBA(r)
		}
	}

	fb.write = fb.bufs[0]
	fb.read = fb.bufs[1]
	return fb
}

// Swap presents the buffer that was rendered to and returns the buffer for
// the next frame. The returned buffer still holds the frame before last.
func (fb *Framebuffer) Swap() draw.Image {
	fb.read, fb.write = fb.write, fb.read
	return fb.write
}

func (fb *Framebuffer) Format() Format {
	return fb.format
}

func (fb *Framebuffer) Bounds() image.Rectangle {
	return fb.write.Bounds()
}

func (fb *Framebuffer) ColorModel() color.Model {
	return fb.write.ColorModel()
}

func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.write.At(x, y)
}

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.write.Set(x, y, c)
}

// Front returns the buffer presented by the last call to Swap.
func (fb *Framebuffer) Front() image.Image {
	return fb.read
}
