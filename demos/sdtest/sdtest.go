// Package sdtest benchmarks reads from the SD card, one test per frame.
package sdtest

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/colornames"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/display"
	"github.com/clktmr/n64demo/sdcard"
)

var background = color.RGBA{20, 30, 40, 0xff}

// Demo runs an sdcard.Bench and shows its results.
type Demo struct {
	bench *sdcard.Bench
}

// New writes the test file to vol, filled with random data from src.
func New(con *console.Console, vol sdcard.Volume, src io.Reader) *Demo {
	return &Demo{bench: sdcard.NewBench(vol, con.Now, src)}
}

func (d *Demo) Bench() *sdcard.Bench { return d.bench }

func (d *Demo) Update() error {
	d.bench.Step()
	return nil
}

func (d *Demo) Draw(screen *display.Screen) {
	screen.ClearBackground(background)
	b := d.bench
	lh := screen.LineHeight()

	y := 0
	screen.Text(fmt.Sprintf("Wrote test data in %dus", b.WriteTime.Microseconds()), image.Pt(0, y), colornames.White)
	y += lh
	screen.Text(fmt.Sprintf("Card has %d files at root...", b.NumFiles), image.Pt(0, y), colornames.White)
	y += lh + 5

	for i := range b.Results {
		screen.Text(b.Result(i), image.Pt(0, y), colornames.White)
		y += lh
	}

	if b.Err != nil {
		screen.Text(ErrorText(b.Err), image.Pt(0, y+5), colornames.Red)
	}
}

// ErrorText returns the message shown for a failed benchmark.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, sdcard.ErrShortWrite):
		return "Failed to create test data"
	case errors.Is(err, sdcard.ErrShortRead):
		return "Read failed!"
	case errors.Is(err, sdcard.ErrMismatch):
		return "Data mismatch!"
	}
	return err.Error()
}
