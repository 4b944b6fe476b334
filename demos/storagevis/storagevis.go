// Package storagevis draws a map of the blocks used by installed games.
package storagevis

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/colornames"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
	"github.com/clktmr/n64demo/storage"
)

const (
	numCols    = 32
	numRows    = storage.SizeBlocks / numCols
	tileSize   = 8
	tileBorder = 1
	yOff       = 10
)

var (
	background = color.RGBA{20, 30, 40, 0xff}
	freeColor  = color.RGBA{100, 100, 100, 0xff}
	usedColor  = colornames.White
)

// Demo shows the flash as a grid of blocks with a movable cursor.
type Demo struct {
	con     *console.Console
	entries []storage.Entry
	cursor  int
	err     error
}

// New scans the flash for installed games. A read error is shown on screen.
func New(con *console.Console, flash io.ReaderAt) *Demo {
	d := &Demo{con: con}
	games, err := storage.Scan(flash, storage.SizeBlocks)
	if err != nil {
		d.err = err
	}
	d.entries = storage.BlockMap(games, storage.SizeBlocks)
	return d
}

func (d *Demo) Entries() []storage.Entry { return d.entries }

// Cursor returns the block under the cursor.
func (d *Demo) Cursor() int { return d.cursor }

func (d *Demo) Update() error {
	pressed := d.con.Inputs[0].Pressed()
	switch {
	case pressed&controller.ButtonDLeft != 0:
		d.cursor--
	case pressed&controller.ButtonDRight != 0:
		d.cursor++
	case pressed&controller.ButtonDUp != 0:
		d.cursor -= numCols
	case pressed&controller.ButtonDDown != 0:
		d.cursor += numCols
	}
	d.cursor = (d.cursor + storage.SizeBlocks) % storage.SizeBlocks
	return nil
}

// tile returns the screen rectangle of a block.
func tile(bounds image.Rectangle, block int) image.Rectangle {
	const size = tileSize + tileBorder
	xOff := (bounds.Dx() - numCols*size) / 2
	p := image.Pt(xOff+block%numCols*size, yOff+block/numCols*size)
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(tileSize, tileSize))}
}

func (d *Demo) Draw(screen *display.Screen) {
	screen.ClearBackground(background)
	bounds := screen.Bounds()

	entry := 0
	for block := range storage.SizeBlocks {
		if next := entry + 1; next < len(d.entries) && int(d.entries[next].Start) == block {
			entry = next
		}
		var c color.Color = freeColor
		if d.entries[entry].Used() {
			c = usedColor
		}
		screen.Fill(tile(bounds, block), c)
	}

	screen.Outline(tile(bounds, d.cursor).Inset(-1), colornames.Red)

	y := yOff + numRows*(tileSize+tileBorder) + 4
	if d.err != nil {
		screen.Text(d.err.Error(), image.Pt(4, y), colornames.Red)
		return
	}
	screen.Text(d.Describe(d.cursor), image.Pt(4, y), colornames.White)
}

// Describe returns a text about the entry that contains block.
func (d *Demo) Describe(block int) string {
	i := storage.Lookup(d.entries, block)
	if i < 0 {
		return ""
	}
	e := &d.entries[i]
	if !e.Used() {
		return fmt.Sprintf("free: %d blocks at %d", e.Blocks, e.Start)
	}
	if g := e.Game; g.Meta != nil {
		return fmt.Sprintf("%s %s\nby %s\n%d blocks at %d", g.Meta.Title, g.Meta.Version, g.Meta.Author, e.Blocks, e.Start)
	}
	return fmt.Sprintf("unknown game (%v)\n%d blocks at %d", e.Game.Err, e.Blocks, e.Start)
}
