package ui

import (
	"image"

	"github.com/clktmr/n64demo/drivers/controller"
)

// Input is the per-frame input snapshot consumed by Tree.Update.
type Input struct {
	// Directional buttons released this frame.
	Left, Right, Up, Down bool

	// Confirm was pressed this frame. Toggles checkboxes.
	Confirm bool

	// Fast is held down. Sliders move ten steps at once.
	Fast bool
}

// ControllerInput maps the D-pad to navigation and the A button to confirm and
// fast stepping.
func ControllerInput(c *controller.Controller) Input {
	released := c.Released()
	return Input{
		Left:    released&controller.ButtonDLeft != 0,
		Right:   released&controller.ButtonDRight != 0,
		Up:      released&controller.ButtonDUp != 0,
		Down:    released&controller.ButtonDDown != 0,
		Confirm: c.Pressed()&controller.ButtonA != 0,
		Fast:    c.Down()&controller.ButtonA != 0,
	}
}

// navigation returns the requested movement in {-1,0,1}². Left and up take
// precedence over right and down.
func (in Input) navigation() (nav image.Point) {
	if in.Left {
		nav.X = -1
	} else if in.Right {
		nav.X = 1
	}
	if in.Up {
		nav.Y = -1
	} else if in.Down {
		nav.Y = 1
	}
	return
}
