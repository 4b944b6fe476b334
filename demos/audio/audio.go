// Package audio is a parameter panel for a single synthesizer channel.
package audio

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/colornames"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
	"github.com/clktmr/n64demo/synth"
	"github.com/clktmr/n64demo/ui"
)

// Item ids of the panel.
const (
	WaveNoise = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveSine

	Frequency
	Volume
	AttackTime
	DecayTime
	ReleaseTime
	SustainVol
)

var waveforms = [...]synth.Waveform{
	WaveNoise:    synth.Noise,
	WaveSquare:   synth.Square,
	WaveSaw:      synth.Saw,
	WaveTriangle: synth.Triangle,
	WaveSine:     synth.Sine,
}

const helpText = "    Attack/Release\n\n    Toggle Selected\n\nLEFT/RIGHT Small Step\n\n    + LEFT/RIGHT Big Step"

var (
	iconColor       = color.RGBA{0x50, 0x64, 0x78, 0xff}
	iconActiveColor = colornames.White
)

// Demo edits the parameters of a synthesizer channel with a UI panel.
type Demo struct {
	con  *console.Console
	tree *ui.Tree
	last time.Duration

	Channel synth.Channel
}

// New builds the parameter panel in the right half of the screen.
func New(con *console.Console) *Demo {
	d := &Demo{con: con, tree: ui.NewTree()}
	root := d.tree.Root()

	waves := root.AddChild(ui.Container, "", ui.NoID)
	waves.SetDirection(ui.Horizontal)
	waves.AddChild(ui.Checkbox, "Noise", WaveNoise)
	waves.AddChild(ui.Checkbox, "Square", WaveSquare)
	waves.AddChild(ui.Checkbox, "Saw", WaveSaw)
	waves.AddChild(ui.Checkbox, "Tri", WaveTriangle)
	waves.AddChild(ui.Checkbox, "Sine", WaveSine)

	root.AddChild(ui.Slider, "Frequency", Frequency).SetRange(10, 10000, 10, 660)
	root.AddChild(ui.Slider, "Volume", Volume).SetRange(0, 0xffff, 655, 0xffff)
	root.AddChild(ui.Slider, "Attack time", AttackTime).SetRange(1, 1000, 1, 2)
	root.AddChild(ui.Slider, "Decay time", DecayTime).SetRange(1, 1000, 1, 6)
	root.AddChild(ui.Slider, "Release time", ReleaseTime).SetRange(1, 1000, 1, 1)
	root.AddChild(ui.Slider, "Sustain vol", SustainVol).SetRange(0, 0xffff, 655, 0xffff)

	b := con.Screen.Bounds()
	root.SetDisplayRect(image.Rect(b.Dx()/2, 0, b.Dx(), b.Dy()))

	root.Walk(d.apply)
	d.last = con.Now()
	return d
}

func (d *Demo) Tree() *ui.Tree { return d.tree }

func (d *Demo) Update() error {
	in := &d.con.Inputs[0]
	d.tree.Update(ui.ControllerInput(in))
	d.tree.Root().Walk(d.apply)

	if in.Released()&controller.ButtonZ != 0 {
		if d.Channel.Phase() == synth.Off {
			d.Channel.TriggerAttack()
		} else {
			d.Channel.TriggerRelease()
		}
	}

	now := d.con.Now()
	d.Channel.Advance(now - d.last)
	d.last = now
	return nil
}

// apply copies the value of a leaf to its channel parameter.
func (d *Demo) apply(it *ui.Item) {
	if !it.Leaf() {
		return
	}
	ch, v := &d.Channel, it.Value()
	switch id := it.ID(); id {
	case WaveNoise, WaveSquare, WaveSaw, WaveTriangle, WaveSine:
		ch.SetWaveform(waveforms[id], v != 0)
	case Frequency:
		ch.Frequency = v
	case Volume:
		ch.Volume = uint16(v)
	case AttackTime:
		ch.AttackMS = v
	case DecayTime:
		ch.DecayMS = v
	case ReleaseTime:
		ch.ReleaseMS = v
	case SustainVol:
		ch.Sustain = uint16(v)
	}
}

func (d *Demo) Draw(screen *display.Screen) {
	screen.ClearBackground(colornames.Black)
	ui.Render(screen, d.tree.Root())

	screen.Text(helpText, image.Pt(8, 8), colornames.White)
	buttonIcon(screen, image.Pt(8, 7), controller.ButtonZ)
	buttonIcon(screen, image.Pt(8, 25), controller.ButtonA)
	buttonIcon(screen, image.Pt(8, 62), controller.ButtonA)
}

// buttonIcon draws the four face buttons with the given one highlighted. Z is
// drawn at the top, A right, B bottom and Start left.
func buttonIcon(screen *display.Screen, pos image.Point, active controller.ButtonMask) {
	icons := [...]struct {
		button controller.ButtonMask
		off    image.Point
	}{
		{controller.ButtonStart, image.Pt(0, 3)},
		{controller.ButtonA, image.Pt(6, 3)},
		{controller.ButtonZ, image.Pt(3, 0)},
		{controller.ButtonB, image.Pt(3, 6)},
	}
	for _, icon := range icons {
		var c color.Color = iconColor
		if icon.button == active {
			c = iconActiveColor
		}
		p := pos.Add(icon.off)
		screen.Fill(image.Rect(p.X, p.Y, p.X+2, p.Y+2), c)
	}
}
