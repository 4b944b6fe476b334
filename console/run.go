// Package console runs a game loop on top of a display.Screen and the
// controller inputs.
package console

import (
	"errors"
	"time"

	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
)

// ErrQuit can be returned by Update to end the game loop without an error.
var ErrQuit = errors.New("quit")

// Gamelooper represents a game instance that can be updated and drawn.
type Gamelooper interface {
	// Update is called every frame to update game logic.
	// Return an error to exit the game loop, nil to continue.
	Update() error

	// Draw is called every frame to render the game.
	// The screen is already initialized and ready for drawing.
	Draw(screen *display.Screen)
}

// Console holds the state shared between the game loop and the game.
type Console struct {
	Screen *display.Screen

	// Inputs holds the controller states of the current frame.
	Inputs [4]controller.Controller

	// Clock returns the time since the console was created. Defaults to the
	// wall clock.
	Clock func() time.Duration

	poller controller.Poller
	frame  uint64
}

// New creates a console with the given video mode. The poller is asked for new
// controller states at the beginning of every frame, it may be nil.
func New(mode display.Mode, poller controller.Poller) *Console {
	start := time.Now()
	return &Console{
		Screen: display.NewScreen(mode),
		Clock:  func() time.Duration { return time.Since(start) },
		poller: poller,
	}
}

// Now returns the time since the console was created.
func (c *Console) Now() time.Duration {
	return c.Clock()
}

// Frame returns the number of completed frames.
func (c *Console) Frame() uint64 {
	return c.frame
}

// Step runs a single frame: poll inputs, update and draw.
func (c *Console) Step(g Gamelooper) error {
	if c.poller != nil {
		c.poller.Poll(&c.Inputs)
	}

	if err := g.Update(); err != nil {
		return err
	}

	c.Screen.BeginDrawing()
	g.Draw(c.Screen)
	c.Screen.EndDrawing()

	c.frame++
	return nil
}

// Run starts the game loop. It returns after the given number of frames or
// runs until Update returns an error if frames is zero or less. ErrQuit is
// not reported as an error.
func (c *Console) Run(g Gamelooper, frames int) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		if err := c.Step(g); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Run creates a LowRes console without inputs and runs g until Update returns
// an error.
func Run(g Gamelooper) error {
	return New(display.LowRes, nil).Run(g, 0)
}
