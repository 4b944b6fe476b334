package audio

import (
	"image"
	"testing"
	"time"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
	"github.com/clktmr/n64demo/synth"
	"github.com/clktmr/n64demo/ui"
)

const (
	a     = controller.ButtonA
	z     = controller.ButtonZ
	down  = controller.ButtonDDown
	right = controller.ButtonDRight
)

func newDemo(frames ...controller.ButtonMask) (*console.Console, *Demo) {
	c := console.New(display.HiRes, controller.NewScript(frames...))
	var now time.Duration
	c.Clock = func() time.Duration {
		now += time.Millisecond
		return now
	}
	return c, New(c)
}

func TestInitialParams(t *testing.T) {
	_, d := newDemo()
	expected := synth.Channel{
		Frequency: 660,
		Volume:    0xffff,
		AttackMS:  2,
		DecayMS:   6,
		ReleaseMS: 1,
		Sustain:   0xffff,
	}
	if d.Channel != expected {
		t.Fatalf("expected %+v, got %+v", expected, d.Channel)
	}

	root := d.Tree().Root()
	if r := root.Rect(); r != image.Rect(160, 0, 320, 240) {
		t.Fatalf("expected right half, got %v", r)
	}
	if f := d.Tree().Focused(); f.ID() != WaveNoise {
		t.Fatalf("expected Noise focused, got %v", f.Text())
	}
}

func TestPanel(t *testing.T) {
	c, d := newDemo(
		a, 0, // toggle noise
		right, 0, a, 0, // toggle square
		down, 0, right, 0, // frequency +10
		down, 0, a, a|right, a, // volume stays at max
	)
	if err := c.Run(d, 15); err != nil {
		t.Fatal(err)
	}

	if d.Channel.Waveforms != synth.Noise|synth.Square {
		t.Fatalf("expected noise and square, got %b", d.Channel.Waveforms)
	}
	if d.Channel.Frequency != 670 {
		t.Fatalf("expected frequency 670, got %v", d.Channel.Frequency)
	}
	if f := d.Tree().Focused(); f.ID() != Volume {
		t.Fatalf("expected Volume focused, got %v", f.Text())
	}
	if d.Channel.Volume != 0xffff {
		t.Fatalf("expected volume at max, got %v", d.Channel.Volume)
	}
}

func TestTrigger(t *testing.T) {
	c, d := newDemo(z, 0, 0, 0, 0, 0, 0, 0, z, 0)
	d.Tree().Root().Walk(func(it *ui.Item) {
		if it.ID() == ReleaseTime {
			it.SetValue(10)
		}
	})

	steps := []synth.Phase{
		synth.Off, synth.Attack,
		synth.Decay, synth.Decay, synth.Decay, synth.Decay, synth.Decay, synth.Decay,
		synth.Sustain, synth.Release,
	}
	for i, expected := range steps {
		if err := c.Step(d); err != nil {
			t.Fatal(err)
		}
		if got := d.Channel.Phase(); got != expected {
			t.Fatalf("frame %d: expected %v, got %v", i, expected, got)
		}
	}
}
