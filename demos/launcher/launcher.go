// Package launcher lists games in a directory tree and starts the selected
// one.
package launcher

import (
	"image"
	"image/color"
	"io/fs"
	"strings"

	"github.com/buildkite/shellwords"
	"golang.org/x/image/colornames"

	"github.com/clktmr/n64demo/browser"
	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
)

var DefaultExtensions = []string{".z64", ".n64"}

var (
	background     = color.RGBA{20, 30, 40, 0xff}
	highlightColor = color.NRGBA{0xff, 0xff, 0xff, 90}
	dirColor       = color.RGBA{0x80, 0xc0, 0xff, 0xff}
)

// Demo lists the games in a directory tree and launches the selected one.
type Demo struct {
	con     *console.Console
	browser *browser.Browser
	command []string

	// Launch is called with the quoted command line when a game is selected.
	// If it returns an error, the game loop ends.
	Launch func(cmdline string) error

	status string
}

// New creates a launcher for the files in fsys. The path of the selected game
// is appended to command, which is split into words like a shell does.
func New(con *console.Console, fsys fs.FS, command string, exts ...string) (*Demo, error) {
	words, err := shellwords.SplitPosix(command)
	if err != nil {
		return nil, err
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	b, err := browser.New(fsys, exts...)
	if err != nil {
		return nil, err
	}
	return &Demo{con: con, browser: b, command: words}, nil
}

func (d *Demo) Browser() *browser.Browser { return d.browser }

// CommandLine returns the command line that launches file.
func (d *Demo) CommandLine(file string) string {
	args := append(d.command[:len(d.command):len(d.command)], file)
	for i, a := range args {
		args[i] = shellwords.QuotePosix(a)
	}
	return strings.Join(args, " ")
}

func (d *Demo) Update() error {
	pressed := d.con.Inputs[0].Pressed()
	switch {
	case pressed&controller.ButtonDUp != 0:
		d.browser.Move(-1)
	case pressed&controller.ButtonDDown != 0:
		d.browser.Move(1)
	case pressed&controller.ButtonB != 0:
		if err := d.browser.Up(); err != nil {
			d.status = err.Error()
		}
	case pressed&controller.ButtonA != 0:
		file, err := d.browser.Enter()
		if err != nil {
			d.status = err.Error()
			break
		}
		if file == "" {
			d.status = ""
			break
		}
		cmdline := d.CommandLine(file)
		d.status = "launch " + cmdline
		if d.Launch != nil {
			return d.Launch(cmdline)
		}
	}
	return nil
}

func (d *Demo) Draw(screen *display.Screen) {
	screen.ClearBackground(background)
	bounds := screen.Bounds()
	lh := screen.LineHeight()

	screen.Fill(image.Rect(0, 0, bounds.Dx(), lh+2), colornames.White)
	screen.Text("/"+strings.TrimPrefix(d.browser.Dir(), "."), image.Pt(4, 1), colornames.Black)

	top := lh + 4
	rows := max((bounds.Dy()-top-lh)/lh, 1)
	entries := d.browser.Entries()
	cursor := d.browser.Cursor()
	first := max(0, min(cursor-rows/2, len(entries)-rows))

	if len(entries) == 0 {
		screen.Text("No games found", image.Pt(4, top), colornames.Gray)
	}
	for i := first; i < len(entries) && i < first+rows; i++ {
		y := top + (i-first)*lh
		if i == cursor {
			screen.Fill(image.Rect(0, y, bounds.Dx(), y+lh), highlightColor)
		}
		e := entries[i]
		if e.Dir {
			screen.Text(e.Name+"/", image.Pt(4, y), dirColor)
		} else {
			screen.Text(e.Name, image.Pt(4, y), colornames.White)
		}
	}

	if d.status != "" {
		screen.Text(d.status, image.Pt(4, bounds.Dy()-lh), colornames.Yellow)
	}
}
