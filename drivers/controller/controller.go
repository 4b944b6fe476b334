// Package controller tracks the state of a game controller between frames and
// derives edge triggered button events from two consecutive snapshots.
package controller

type state struct {
	down  ButtonMask
	xAxis int8
	yAxis int8
}

type info struct {
	plugged bool
	pak     bool
}

type Controller struct {
	currentInfo, lastInfo info
	current, last         state
}

// Update stores a new snapshot of the controller state. The previous snapshot
// is kept to compute the edge triggered events. Call it once per frame.
func (c *Controller) Update(down ButtonMask, x, y int8) {
	c.last = c.current
	c.current = state{down, x, y}
}

// UpdateInfo stores a new snapshot of the accessory state, which is polled
// less frequently than the buttons.
func (c *Controller) UpdateInfo(plugged, pak bool) {
	c.lastInfo = c.currentInfo
	c.currentInfo = info{plugged, pak}
}

func (c *Controller) Down() ButtonMask {
	return c.current.down
}

func (c *Controller) Changed() ButtonMask {
	return c.current.down ^ c.last.down
}

func (c *Controller) Pressed() ButtonMask {
	return c.Changed() & c.current.down
}

func (c *Controller) Released() ButtonMask {
	return c.Changed() & c.last.down
}

func (c *Controller) X() int8 {
	return c.current.xAxis
}

func (c *Controller) Y() int8 {
	return c.current.yAxis
}

func (c *Controller) DX() int8 {
	return c.current.xAxis - c.last.xAxis
}

func (c *Controller) DY() int8 {
	return c.current.yAxis - c.last.yAxis
}

func (c *Controller) Plugged() bool {
	return c.currentInfo.plugged && !c.lastInfo.plugged
}

func (c *Controller) Unplugged() bool {
	return !c.currentInfo.plugged && c.lastInfo.plugged
}

func (c *Controller) PakInserted() bool {
	return c.currentInfo.pak && !c.lastInfo.pak
}

func (c *Controller) PakRemoved() bool {
	return !c.currentInfo.pak && c.lastInfo.pak
}
