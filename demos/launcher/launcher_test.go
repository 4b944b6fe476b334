package launcher

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/buildkite/shellwords"

	"github.com/clktmr/n64demo/console"
	"github.com/clktmr/n64demo/drivers/controller"
	"github.com/clktmr/n64demo/drivers/display"
)

var testFS = fstest.MapFS{
	"roms/Mario Kart.z64": {},
	"roms/notes.txt":      {},
	"homebrew.n64":        {},
	"flappy.z64":          {},
}

const (
	a    = controller.ButtonA
	b    = controller.ButtonB
	down = controller.ButtonDDown
)

func TestLaunch(t *testing.T) {
	tests := map[string]struct {
		script   []controller.ButtonMask
		expected string
	}{
		"root":      {[]controller.ButtonMask{down, 0, a}, "flappy.z64"},
		"subdir":    {[]controller.ButtonMask{a, 0, a}, "roms/Mario Kart.z64"},
		"back":      {[]controller.ButtonMask{a, 0, b, 0, down, 0, down, 0, a}, "homebrew.n64"},
		"clampDown": {[]controller.ButtonMask{down, 0, down, 0, down, 0, down, 0, a}, "homebrew.n64"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := console.New(display.HiRes, controller.NewScript(tc.script...))
			d, err := New(c, testFS, "emu --fullscreen")
			if err != nil {
				t.Fatal(err)
			}
			var launched []string
			d.Launch = func(cmdline string) error {
				launched, err = shellwords.SplitPosix(cmdline)
				if err != nil {
					t.Fatal(err)
				}
				return console.ErrQuit
			}

			if err := c.Run(d, len(tc.script)+1); err != nil {
				t.Fatal(err)
			}
			expected := []string{"emu", "--fullscreen", tc.expected}
			if !slices.Equal(launched, expected) {
				t.Fatalf("expected %q, got %q", expected, launched)
			}
		})
	}
}

func TestNoGames(t *testing.T) {
	c := console.New(display.HiRes, controller.NewScript(a, 0, a))
	d, err := New(c, fstest.MapFS{"readme.txt": {}}, "emu")
	if err != nil {
		t.Fatal(err)
	}
	d.Launch = func(string) error {
		t.Fatal("unexpected launch")
		return nil
	}
	if err := c.Run(d, 4); err != nil {
		t.Fatal(err)
	}
	if len(d.Browser().Entries()) != 0 {
		t.Fatalf("expected no entries, got %v", d.Browser().Entries())
	}
}

func TestBadCommand(t *testing.T) {
	c := console.New(display.HiRes, nil)
	if _, err := New(c, testFS, `emu "unterminated`); err == nil {
		t.Fatal("expected error")
	}
}
