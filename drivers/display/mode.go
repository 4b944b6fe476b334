package display

import (
	"image"
	"image/color"

	"github.com/clktmr/n64demo/framebuffer"
)

// Mode is a predefined video configuration.
type Mode int

const (
	// LowRes is 160x120 with 32 bit colors.
	LowRes Mode = iota
	// HiRes is 320x240 with 16 bit colors.
	HiRes
	// HiResPalette is 320x240 with up to 256 colors from a palette.
	HiResPalette
)

var modeNames = [...]string{"lores", "hires", "hires_palette"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the mode for a name as returned by Mode.String.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), true
		}
	}
	return 0, false
}

func (m Mode) Resolution() image.Point {
	if m == LowRes {
		return image.Point{X: 160, Y: 120}
	}
	return image.Point{X: 320, Y: 240}
}

func (m Mode) format() framebuffer.Format {
	switch m {
	case HiRes:
		return framebuffer.FormatRGBA16
	case HiResPalette:
		return framebuffer.FormatPaletted
	default:
		return framebuffer.FormatRGBA32
	}
}

// DefaultPalette is used in HiResPalette mode until SetPalette is called.
var DefaultPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0x7f, 0x7f, 0x7f, 0xff},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xff, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xff, 0xff},
}
