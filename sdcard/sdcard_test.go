package sdcard

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Duration {
	var now time.Duration
	return func() time.Duration {
		now += step
		return now
	}
}

func randomSource() io.Reader {
	return rand.NewChaCha8([32]byte{})
}

func TestBench(t *testing.T) {
	vol := NewMemVolume()
	b := NewBench(vol, fakeClock(time.Millisecond), randomSource())
	if b.Err != nil {
		t.Fatal(b.Err)
	}
	if b.WriteTime != time.Millisecond {
		t.Fatalf("expected write time %v, got %v", time.Millisecond, b.WriteTime)
	}
	if b.NumFiles != 1 {
		t.Fatalf("expected 1 file, got %v", b.NumFiles)
	}

	for i := 0; !b.Done(); i++ {
		if i > NumTests {
			t.Fatal("bench didn't finish")
		}
		b.Step()
	}
	if b.Err != nil {
		t.Fatal(b.Err)
	}
	if len(b.Results) != NumTests {
		t.Fatalf("expected %v results, got %v", NumTests, len(b.Results))
	}

	expected := "read     1 bytes x65536 in  1000us 65.536MB/s"
	if got := b.Result(0); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

type failingVolume struct {
	*MemVolume
	corrupt, shortWrite bool
}

type failingFile struct {
	File
	vol *failingVolume
}

func (v *failingVolume) OpenFile(name string, flag int) (File, error) {
	f, err := v.MemVolume.OpenFile(name, flag)
	if err != nil {
		return nil, err
	}
	return &failingFile{f, v}, nil
}

func (f *failingFile) Write(p []byte) (int, error) {
	if f.vol.shortWrite {
		p = p[:len(p)/2]
	}
	return f.File.Write(p)
}

func (f *failingFile) Read(p []byte) (int, error) {
	n, err := f.File.Read(p)
	if f.vol.corrupt && n > 0 {
		p[0] ^= 0xff
	}
	return n, err
}

func TestBenchErrors(t *testing.T) {
	tests := map[string]struct {
		vol      *failingVolume
		expected error
	}{
		"shortWrite": {&failingVolume{NewMemVolume(), false, true}, ErrShortWrite},
		"mismatch":   {&failingVolume{NewMemVolume(), true, false}, ErrMismatch},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBench(tc.vol, fakeClock(time.Millisecond), randomSource())
			for !b.Done() {
				b.Step()
			}
			if !errors.Is(b.Err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, b.Err)
			}
		})
	}
}

func TestBenchShortRead(t *testing.T) {
	vol := NewMemVolume()
	b := NewBench(vol, fakeClock(time.Millisecond), randomSource())
	f, err := vol.OpenFile("/"+TestFile, os.O_RDWR|os.O_TRUNC)
	if err != nil {
		t.Fatal(err)
	}
	f.Write(make([]byte, 100))

	b.Step()
	if !errors.Is(b.Err, ErrShortRead) {
		t.Fatalf("expected %v, got %v", ErrShortRead, b.Err)
	}
	if len(b.Results) != 1 {
		t.Fatalf("expected failed test to be recorded, got %v results", len(b.Results))
	}
}

func TestSpeed(t *testing.T) {
	tests := map[time.Duration]struct {
		speed float64
		unit  string
	}{
		10 * time.Minute: {109.22666666666667, "B"},
		2 * time.Minute:  {546.1333333333333, "B"},
		time.Minute:      {1.0922666666666667, "kB"},
		time.Second:      {65.536, "kB"},
		time.Millisecond: {65.536, "MB"},
	}
	for d, expected := range tests {
		speed, unit := Speed(d)
		if math.Abs(speed-expected.speed) > 1e-9 || unit != expected.unit {
			t.Errorf("%v: expected %v%v, got %v%v", d, expected.speed, expected.unit, speed, unit)
		}
	}
}

func TestImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sd.img")
	img, err := CreateImage(path, DefaultImageSize)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBench(img, fakeClock(time.Millisecond), randomSource())
	if err := img.Close(); err != nil {
		t.Fatal(err)
	}
	if b.Err != nil {
		t.Fatal(b.Err)
	}

	img, err = OpenImage(path)
	if err != nil {
		t.Fatal(err)
	}
	defer img.Close()

	f, err := img.OpenFile("/"+TestFile, os.O_RDONLY)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	expected := make([]byte, TestSize)
	io.ReadFull(randomSource(), expected)
	if !bytes.Equal(data, expected) {
		t.Fatal("expected test data to survive reopening")
	}
}
