// Package screenmode cycles through all video modes.
package screenmode

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/display"
)

// SwitchInterval is the number of updates between mode switches.
const SwitchInterval = 50

var modes = [...]display.Mode{display.LowRes, display.HiRes, display.HiResPalette}

var background = color.RGBA{20, 30, 40, 0xff}

// Palette is used in HiResPalette mode.
var Palette = color.Palette{
	colornames.Black,
	background,
	colornames.White,
	color.RGBA{0xff, 0, 0, 0xff},
	color.RGBA{0, 0xff, 0, 0xff},
	color.RGBA{0, 0, 0xff, 0xff},
}

// Demo cycles through the video modes, drawing the same test pattern in each.
type Demo struct {
	con     *console.Console
	current int
	counter int
}

// New starts in LowRes mode with the test pattern palette.
func New(con *console.Console) *Demo {
	con.Screen.SetPalette(Palette)
	con.Screen.SetMode(modes[0])
	return &Demo{con: con}
}

func (d *Demo) Mode() display.Mode { return modes[d.current] }

func (d *Demo) Update() error {
	d.counter++
	if d.counter == SwitchInterval {
		d.current = (d.current + 1) % len(modes)
		d.con.Screen.SetMode(modes[d.current])
		d.counter = 0
	}
	return nil
}

func (d *Demo) Draw(screen *display.Screen) {
	screen.ClearBackground(background)

	screen.Fill(image.Rect(0, 0, 320, 14), colornames.White)
	screen.Text("Screen Mode", image.Pt(5, 2), colornames.Black)

	screen.Outline(image.Rect(0, 0, 160, 120), Palette[3])
	screen.Outline(image.Rect(0, 0, 320, 240), Palette[4])

	screen.Text(d.Mode().String(), image.Pt(10, 20), colornames.White)

	for i, c := range Palette[3:] {
		x := 10 + i*20
		screen.Fill(image.Rect(x, 40, x+20, 60), c)
	}
}
