// Package timing shows update, render and timer counts to verify the timing
// of the game loop.
package timing

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/colornames"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
	"github.com/clktmr/n64demo/timer"
)

// SlowDuration is the delay of a slow update or render.
const SlowDuration = 55 * time.Millisecond

var background = color.RGBA{20, 30, 40, 0xff}

// Snapshot holds the values displayed on screen.
type Snapshot struct {
	Now              time.Duration
	Updates, Renders int
	LastUpdate       time.Duration

	Timer100, Timer10, Timer1 int
}

// Demo shows timers of different periods and can slow down update or
// render on request.
type Demo struct {
	con   *console.Console
	sched timer.Scheduler
	t100  *timer.Timer
	t10   *timer.Timer
	t1    *timer.Timer

	// Sleep blocks for slow updates and renders.
	Sleep func(time.Duration)

	init       time.Duration
	current    Snapshot
	shown      Snapshot
	paused     bool
	slowRender bool
}

// New starts the timers unpaused.
func New(con *console.Console) *Demo {
	d := &Demo{con: con, Sleep: time.Sleep}
	nop := func(*timer.Timer) {}
	d.t100 = timer.New(nop, 100*time.Millisecond, timer.Forever)
	d.t10 = timer.New(nop, 10*time.Millisecond, timer.Forever)
	d.t1 = timer.New(nop, time.Millisecond, timer.Forever)
	d.sched.Add(d.t100, d.t10, d.t1)

	d.init = con.Now()
	d.t100.Start(d.init)
	d.t10.Start(d.init)
	d.t1.Start(d.init)
	return d
}

func (d *Demo) Paused() bool { return d.paused }

// Shown returns the values of the last drawn frame.
func (d *Demo) Shown() Snapshot { return d.shown }

func (d *Demo) Update() error {
	now := d.con.Now()
	d.sched.Advance(now)

	d.current.Updates++
	d.current.LastUpdate = now

	in := &d.con.Inputs[0]
	pressed := in.Pressed()
	if pressed&controller.ButtonStart != 0 {
		d.paused = !d.paused
	}
	if pressed&controller.ButtonA != 0 {
		d.Sleep(SlowDuration)
	}
	if pressed&controller.ButtonB != 0 {
		d.slowRender = true
	}
	return nil
}

func (d *Demo) Draw(screen *display.Screen) {
	d.current.Renders++
	d.current.Now = d.con.Now()
	d.current.Timer100 = d.t100.Count()
	d.current.Timer10 = d.t10.Count()
	d.current.Timer1 = d.t1.Count()
	if !d.paused {
		d.shown = d.current
	}

	screen.ClearBackground(background)
	white := colornames.White
	screen.Text("A: slow update B: slow render Start: pause", image.Pt(4, 4), white)

	s := &d.shown
	lines := []string{
		fmt.Sprintf("init       %10dms", d.init.Milliseconds()),
		fmt.Sprintf("now        %10dms", s.Now.Milliseconds()),
		fmt.Sprintf("from init  %10dms", (s.Now - d.init).Milliseconds()),
		fmt.Sprintf("update     %10d", s.Updates),
		fmt.Sprintf("render     %10d", s.Renders),
		fmt.Sprintf("update now %10dms", s.LastUpdate.Milliseconds()),
		fmt.Sprintf("timer 100  %10dms (%6d x 100)", s.Timer100*100, s.Timer100),
		fmt.Sprintf("timer 10   %10dms (%6d x 10)", s.Timer10*10, s.Timer10),
		fmt.Sprintf("timer 1    %10dms", s.Timer1),
	}
	y := 20
	for _, l := range lines {
		screen.Text(l, image.Pt(4, y), white)
		y += screen.LineHeight()
	}

	if d.slowRender {
		d.Sleep(SlowDuration)
		d.slowRender = false
	}
}
