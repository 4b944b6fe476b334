// Package display provides the Screen that games draw to each frame.
package display

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/embeddedgo/display/pix"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/clktmr/n64demo/framebuffer"
)

// Screen represents the display surface that can be drawn to.
type Screen struct {
	mode    Mode
	palette color.Palette

	fb   *framebuffer.Framebuffer
	disp *pix.Display
	area *pix.Area
	face font.Face

	stats Stats
}

// NewScreen initializes a screen with the specified video mode.
func NewScreen(mode Mode) *Screen {
	s := &Screen{
		palette: DefaultPalette,
		face:    basicfont.Face7x13,
	}
	s.SetMode(mode)
	return s
}

// SetMode reallocates the framebuffer for a new video mode. Must not be
// called between BeginDrawing and EndDrawing.
func (s *Screen) SetMode(mode Mode) {
	s.mode = mode
	s.fb = framebuffer.NewFramebuffer(mode.Resolution(), mode.format(), s.palette)
	s.disp = pix.NewDisplay(s.fb)
	s.area = s.disp.NewArea(s.disp.Bounds())
}

// SetPalette sets the colors available in HiResPalette mode. Takes effect
// with the next call to SetMode.
func (s *Screen) SetPalette(p color.Palette) {
	s.palette = p
}

func (s *Screen) Mode() Mode {
	return s.mode
}

func (s *Screen) Bounds() image.Rectangle {
	return s.fb.Bounds()
}

// BeginDrawing prepares for a new frame.
func (s *Screen) BeginDrawing() {
	s.stats.begin()
}

// EndDrawing flushes the renderer and presents the frame.
func (s *Screen) EndDrawing() {
	s.area.Flush()
	s.fb.Swap()
	s.stats.end()
}

// Frame returns the last presented frame.
func (s *Screen) Frame() image.Image {
	return s.fb.Front()
}

// Stats returns the timing of the last frames.
func (s *Screen) Stats() *Stats {
	return &s.stats
}

// ClearBackground clears the screen with the specified color.
func (s *Screen) ClearBackground(c color.Color) {
	s.fb.Draw(s.fb.Bounds(), &image.Uniform{c}, image.Point{}, nil, image.Point{}, draw.Src)
}

// Fill blends a rectangle of color c over the screen.
func (s *Screen) Fill(r image.Rectangle, c color.Color) {
	s.area.SetColor(c)
	s.area.Fill(r)
}

// Outline draws a one pixel wide border on the inside of r.
func (s *Screen) Outline(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	s.area.SetColor(c)
	s.area.Fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1))
	s.area.Fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y))
	s.area.Fill(image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1))
	s.area.Fill(image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1))
}

// Text draws s with its top left corner at p. Lines are separated by '\n'.
func (s *Screen) Text(str string, p image.Point, c color.Color) {
	m := s.face.Metrics()
	d := font.Drawer{
		Dst:  s.fb,
		Src:  image.NewUniform(c),
		Face: s.face,
	}
	for i, line := range strings.Split(str, "\n") {
		d.Dot = fixed.P(p.X, p.Y+m.Ascent.Ceil()+i*m.Height.Ceil())
		d.DrawString(line)
	}
}

// MeasureText returns the size of the bounding box of str as drawn by Text.
func (s *Screen) MeasureText(str string) image.Point {
	lines := strings.Split(str, "\n")
	var size image.Point
	for _, line := range lines {
		size.X = max(size.X, font.MeasureString(s.face, line).Ceil())
	}
	size.Y = len(lines) * s.face.Metrics().Height.Ceil()
	return size
}

// LineHeight returns the distance between two lines of text.
func (s *Screen) LineHeight() int {
	return s.face.Metrics().Height.Ceil()
}
