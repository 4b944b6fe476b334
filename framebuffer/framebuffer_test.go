package framebuffer

import (
	"image"
	"image/color"
	"testing"

	"github.com/embeddedgo/display/pix"
	"golang.org/x/image/colornames"
)

func TestSwap(t *testing.T) {
	fb := NewFramebuffer(image.Pt(16, 8), FormatRGBA32, nil)
	first := fb.Swap()
	second := fb.Swap()
	if first == second {
		t.Fatal("expected different buffers")
	}
	if fb.Front() != first {
		t.Fatal("expected first buffer to be presented")
	}
}

func TestPixDriver(t *testing.T) {
	tests := map[string]struct {
		format  Format
		palette color.Palette
	}{
		"RGBA16":   {FormatRGBA16, nil},
		"RGBA32":   {FormatRGBA32, nil},
		"Paletted": {FormatPaletted, color.Palette{color.Black, colornames.Red}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fb := NewFramebuffer(image.Pt(32, 32), tc.format, tc.palette)
			disp := pix.NewDisplay(fb)
			a := disp.NewArea(disp.Bounds())
			a.SetColor(colornames.Red)
			a.Fill(image.Rect(4, 4, 8, 8))
			a.Flush()

			r, g, b, _ := fb.At(5, 5).RGBA()
			if r>>8 < 0xf0 || g>>8 != 0 || b>>8 != 0 {
				t.Fatalf("expected red, got %v", fb.At(5, 5))
			}
			r, _, _, _ = fb.At(3, 3).RGBA()
			if r != 0 {
				t.Fatalf("expected black, got %v", fb.At(3, 3))
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]struct {
		format Format
		model  color.Model
	}{
		"RGBA16": {FormatRGBA16, Color16Model},
		"RGBA32": {FormatRGBA32, color.RGBAModel},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fb := NewFramebuffer(image.Pt(8, 8), tc.format, nil)
			if fb.Format() != tc.format {
				t.Fatalf("expected format %v, got %v", tc.format, fb.Format())
			}
			if fb.ColorModel() != tc.model {
				t.Fatalf("expected model %v, got %v", tc.model, fb.ColorModel())
			}
		})
	}

	fb := NewFramebuffer(image.Pt(8, 8), FormatRGBA16, nil)
	if _, ok := fb.Swap().(*RGBA16); !ok {
		t.Fatalf("expected *RGBA16 buffer, got %T", fb.Swap())
	}
}

func TestRGBA16(t *testing.T) {
	img := NewRGBA16(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{0xff, 0x80, 0x00, 0xff})
	r, g, b, a := img.At(1, 2).RGBA()
	if r != 0xf800 || g != 0x8000 || b != 0 || a != 0xffff {
		t.Fatalf("unexpected color %x %x %x %x", r, g, b, a)
	}
	img.Set(10, 10, color.White) // ignored
	if _, _, _, a := img.At(10, 10).RGBA(); a != 0 {
		t.Fatal("expected transparent color outside bounds")
	}
}

func TestQuantize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), 0x40, 0xff})
		}
	}
	for _, dither := range []bool{false, true} {
		p := Quantize(img, 8, dither)
		if len(p.Palette) > 8 || len(p.Palette) == 0 {
			t.Fatalf("expected up to 8 colors, got %d", len(p.Palette))
		}
		if p.Bounds() != img.Bounds() {
			t.Fatalf("expected %v, got %v", img.Bounds(), p.Bounds())
		}
	}
}

func TestColor16(t *testing.T) {
	tests := map[string]struct {
		in       color.Color
		expected Color16
	}{
		"white":       {color.White, 0xffff},
		"transparent": {color.Transparent, 0},
		"red":         {color.RGBA{0xff, 0, 0, 0xff}, 0xf801},
		"halfAlpha":   {color.NRGBA{0, 0, 0xff, 0x7f}, 0x001e},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Color16Model.Convert(tc.in); got != tc.expected {
				t.Fatalf("expected %#04x, got %#04x", tc.expected, got)
			}
		})
	}
}
