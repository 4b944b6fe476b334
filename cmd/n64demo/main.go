package main

import (
	crand "crypto/rand"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/buildkite/shellwords"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/demos/audio"
	"github.com/clktmr/n64demo/demos/launcher"
	"github.com/clktmr/n64demo/demos/screenmode"
	"github.com/clktmr/n64demo/demos/sdtest"
	"github.com/clktmr/n64demo/demos/storagevis"
	"github.com/clktmr/n64demo/demos/timing"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
	"github.com/clktmr/n64demo/framebuffer"
	"github.com/clktmr/n64demo/sdcard"
	"github.com/clktmr/n64demo/storage"
)

const usageString = `n64demo runs a demo without a display and saves the last frame.

Usage: %s [flags] <demo>

The demos are:

	audio       parameter panel of a synthesizer channel
	screenmode  cycles through all video modes
	launcher    browses -dir for games
	sdtest      benchmarks reads from the -sd card image
	storagevis  shows the blocks used in the -flash image
	timing      shows update, render and timer counts

`

type options struct {
	frames  int
	input   string
	output  string
	palette int
	dither  bool
	mode    string
	sd      string
	flash   string
	dir     string
	command string
}

func newFlagSet(opts *options) *flag.FlagSet {
	flags := flag.NewFlagSet("n64demo", flag.ContinueOnError)
	flags.IntVar(&opts.frames, "frames", 60, "number of frames to run")
	flags.StringVar(&opts.input, "input", "", "buttons held in each frame, e.g. \"A - Down+B\"")
	flags.StringVar(&opts.output, "o", "", "output PNG file (default <demo>.png)")
	flags.IntVar(&opts.palette, "palette", 0, "reduce the output to this many colors")
	flags.BoolVar(&opts.dither, "dither", false, "enable Floyd-Steinberg error diffusion with -palette")
	flags.StringVar(&opts.mode, "mode", "hires", "initial video mode: lores, hires or hires_palette")
	flags.StringVar(&opts.sd, "sd", "", "FAT32 SD card image, created if it doesn't exist")
	flags.StringVar(&opts.flash, "flash", "", "flash image (default generated)")
	flags.StringVar(&opts.dir, "dir", ".", "game directory of the launcher")
	flags.StringVar(&opts.command, "cmd", "n64emu", "command that the launcher runs a game with")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), usageString, "n64demo")
		flags.PrintDefaults()
	}
	return flags
}

func main() {
	log.Default().SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalln(err)
	}
}

func run(args []string) error {
	var opts options
	flags := newFlagSet(&opts)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("expected exactly one demo")
	}
	name := flags.Arg(0)
	if opts.output == "" {
		opts.output = name + ".png"
	}

	mode, ok := display.ParseMode(opts.mode)
	if !ok {
		return fmt.Errorf("unknown mode: %s", opts.mode)
	}
	words, err := shellwords.SplitPosix(opts.input)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	script, err := controller.ParseScript(words)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	con := console.New(mode, script)
	con.Clock = func() time.Duration {
		return time.Duration(con.Frame()) * time.Second / 60
	}

	game, cleanup, err := newDemo(name, con, &opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := con.Run(game, opts.frames); err != nil {
		return err
	}
	return writeFrame(opts.output, con.Screen.Frame(), opts.palette, opts.dither)
}

func newDemo(name string, con *console.Console, opts *options) (g console.Gamelooper, cleanup func(), err error) {
	cleanup = func() {}
	switch name {
	case "audio":
		g = audio.New(con)
	case "screenmode":
		g = screenmode.New(con)
	case "timing":
		g = timing.New(con)
	case "launcher":
		var l *launcher.Demo
		l, err = launcher.New(con, os.DirFS(opts.dir), opts.command)
		if err != nil {
			return
		}
		l.Launch = func(cmdline string) error {
			log.Println(cmdline)
			return console.ErrQuit
		}
		g = l
	case "sdtest":
		var vol sdcard.Volume = sdcard.NewMemVolume()
		if opts.sd != "" {
			var img *sdcard.Image
			img, err = openCard(opts.sd)
			if err != nil {
				return
			}
			vol, cleanup = img, func() { img.Close() }
		}
		g = sdtest.New(con, vol, crand.Reader)
	case "storagevis":
		var flash io.ReaderAt
		flash, err = openFlash(opts.flash)
		if err != nil {
			return
		}
		g = storagevis.New(con, flash)
	default:
		err = fmt.Errorf("unknown demo: %s", name)
	}
	return
}

func openCard(path string) (*sdcard.Image, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return sdcard.CreateImage(path, sdcard.DefaultImageSize)
	}
	return sdcard.OpenImage(path)
}

// openFlash reads a flash image. Without a path, a flash with some sample
// games is generated.
func openFlash(path string) (io.ReaderAt, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return storage.Image(data), nil
	}

	img := storage.NewImage(storage.SizeBlocks)
	games := []struct {
		block uint16
		size  int
		meta  storage.Metadata
	}{
		{0, 300 * 1024, storage.Metadata{Title: "Launcher", Version: "v1.0", Author: "n64demo"}},
		{12, 2 * 1024 * 1024, storage.Metadata{Title: "Rocket Race", Version: "v0.3", Author: "homebrew"}},
		{60, 64 * 1024, storage.Metadata{Title: "Tiny Tetris", Version: "v2", Author: "homebrew"}},
	}
	for _, g := range games {
		if _, err := storage.Install(img, g.block, make([]byte, g.size), &g.meta); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func writeFrame(path string, frame image.Image, colors int, dither bool) error {
	if colors > 0 {
		frame = framebuffer.Quantize(frame, colors, dither)
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(w, frame); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
