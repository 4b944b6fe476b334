package console

import (
	"errors"
	"testing"

	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
)

type counter struct {
	c              *Console
	updates, draws int
	pressed        []controller.ButtonMask
	stopAfter      int
	err            error
}

func (g *counter) Update() error {
	g.updates++
	g.pressed = append(g.pressed, g.c.Inputs[0].Pressed())
	if g.stopAfter > 0 && g.updates == g.stopAfter {
		return g.err
	}
	return nil
}

func (g *counter) Draw(screen *display.Screen) {
	g.draws++
}

func TestRun(t *testing.T) {
	errFail := errors.New("fail")
	tests := map[string]struct {
		frames, stopAfter int
		stopErr           error
		updates, draws    int
		err               error
	}{
		"Frames":  {5, 0, nil, 5, 5, nil},
		"Quit":    {0, 3, ErrQuit, 3, 2, nil},
		"Error":   {10, 2, errFail, 2, 1, errFail},
		"Wrapped": {0, 4, errors.Join(ErrQuit), 4, 3, nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := New(display.LowRes, controller.NewScript(controller.ButtonA, 0, controller.ButtonB))
			g := &counter{c: c, stopAfter: tc.stopAfter, err: tc.stopErr}
			err := c.Run(g, tc.frames)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if g.updates != tc.updates || g.draws != tc.draws {
				t.Fatalf("expected %d/%d, got %d/%d", tc.updates, tc.draws, g.updates, g.draws)
			}
			if c.Frame() != uint64(tc.draws) {
				t.Fatalf("expected frame %d, got %d", tc.draws, c.Frame())
			}
			if g.pressed[0] != controller.ButtonA {
				t.Fatalf("expected A pressed, got %v", g.pressed[0])
			}
		})
	}
}

func TestNilPoller(t *testing.T) {
	c := New(display.HiRes, nil)
	g := &counter{c: c}
	if err := c.Run(g, 2); err != nil {
		t.Fatal(err)
	}
	if g.pressed[1] != 0 {
		t.Fatalf("expected no input, got %v", g.pressed[1])
	}
}
