// Package sdcard measures the read throughput of files on an SD card.
package sdcard

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

const (
	TestSize = 0x10000
	NumTests = 17
	TestFile = "sdtest.dat"
)

var (
	ErrShortWrite = errors.New("failed to create test data")
	ErrShortRead  = errors.New("read failed")
	ErrMismatch   = errors.New("data mismatch")
)

// File is an open file on a Volume.
type File interface {
	io.ReadWriteSeeker
	io.Closer
}

// Volume is the filesystem of an SD card. Paths are absolute.
type Volume interface {
	OpenFile(name string, flag int) (File, error)
	ReadDir(name string) ([]fs.FileInfo, error)
}

// Bench reads the same test file in chunks of increasing size. Each call to
// Step runs a single test, so a test never blocks more than one frame.
type Bench struct {
	vol   Volume
	clock func() time.Duration
	data  []byte
	buf   []byte

	WriteTime time.Duration
	NumFiles  int
	Results   []time.Duration
	Err       error
}

// NewBench writes TestSize bytes read from src to the test file and counts the
// files in the root directory. Failures are stored in Bench.Err.
func NewBench(vol Volume, clock func() time.Duration, src io.Reader) *Bench {
	b := &Bench{
		vol:     vol,
		clock:   clock,
		data:    make([]byte, TestSize),
		buf:     make([]byte, TestSize),
		Results: make([]time.Duration, 0, NumTests),
	}
	if _, err := io.ReadFull(src, b.data); err != nil {
		b.Err = fmt.Errorf("%w: %w", ErrShortWrite, err)
		return b
	}

	start := b.clock()
	if err := b.write(); err != nil {
		b.Err = err
		return b
	}
	b.WriteTime = b.clock() - start

	if entries, err := vol.ReadDir("/"); err == nil {
		b.NumFiles = len(entries)
	}
	return b
}

func (b *Bench) write() error {
	f, err := b.vol.OpenFile("/"+TestFile, os.O_CREATE|os.O_RDWR|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShortWrite, err)
	}
	defer f.Close()

	n, err := f.Write(b.data)
	if err != nil || n != len(b.data) {
		return fmt.Errorf("%w: wrote %d bytes: %v", ErrShortWrite, n, err)
	}
	return nil
}

// Done reports whether all tests ran or a test failed.
func (b *Bench) Done() bool {
	return b.Err != nil || len(b.Results) == NumTests
}

// Step runs the next test.
func (b *Bench) Step() {
	if b.Done() {
		return
	}
	test := len(b.Results)
	size, count := ChunkSize(test), TestSize>>test

	f, err := b.vol.OpenFile("/"+TestFile, os.O_RDONLY)
	if err != nil {
		b.Err = fmt.Errorf("%w: %w", ErrShortRead, err)
		return
	}
	defer f.Close()

	clear(b.buf)
	start := b.clock()
	for j := range count {
		if err := readChunk(f, b.buf[j*size:(j+1)*size], int64(j*size)); err != nil {
			b.Err = err
			break
		}
	}
	b.Results = append(b.Results, b.clock()-start)
	if b.Err != nil {
		return
	}

	for i := range b.data {
		if b.buf[i] != b.data[i] {
			b.Err = fmt.Errorf("%w at offset %#x", ErrMismatch, i)
			return
		}
	}
}

func readChunk(f File, p []byte, off int64) error {
	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrShortRead, err)
	}
	if n, err := io.ReadFull(f, p); err != nil {
		return fmt.Errorf("%w: read %d of %d bytes at %#x", ErrShortRead, n, len(p), off)
	}
	return nil
}

// ChunkSize returns the read size of the given test.
func ChunkSize(test int) int {
	return 1 << test
}

// Speed returns the throughput of reading TestSize bytes in d, scaled to B, kB
// or MB per second.
func Speed(d time.Duration) (float64, string) {
	if d <= 0 {
		d = time.Microsecond
	}
	speed := float64(TestSize) / d.Seconds()
	unit := "B"
	if speed >= 1000 {
		speed /= 1000
		unit = "kB"
	}
	if speed >= 1000 {
		speed /= 1000
		unit = "MB"
	}
	return speed, unit
}

// Result formats the result of the given test.
func (b *Bench) Result(test int) string {
	d := b.Results[test]
	speed, unit := Speed(d)
	return fmt.Sprintf("read %5d bytes x%5d in %5dus %3.3f%s/s",
		ChunkSize(test), TestSize>>test, d.Microseconds(), speed, unit)
}
