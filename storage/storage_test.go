package storage

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestMetadata(t *testing.T) {
	meta := Metadata{
		Datetime:    "20260101T120000",
		Title:       "Fighter Kid Deluxe with a very long title",
		Description: "Avoid the bombs",
		Version:     "v1.0.2",
		Author:      "somebody",
	}
	b, err := meta.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != MetaLen {
		t.Fatalf("expected %v bytes, got %v", MetaLen, len(b))
	}

	var got Metadata
	if err := got.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if got.Title != meta.Title[:24] {
		t.Fatalf("expected truncated title %q, got %q", meta.Title[:24], got.Title)
	}
	if got.Author != meta.Author || got.Version != meta.Version {
		t.Fatalf("expected %+v, got %+v", meta, got)
	}

	b[len(b)-1] ^= 0x01
	if err := got.UnmarshalBinary(b); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected %v, got %v", ErrChecksum, err)
	}
	if err := got.UnmarshalBinary(b[1:]); !errors.Is(err, ErrNoMeta) {
		t.Fatalf("expected %v, got %v", ErrNoMeta, err)
	}
}

func TestChecksum(t *testing.T) {
	if got := checksum([]byte("123456789")); got != 0xa1 {
		t.Fatalf("expected 0xa1, got %#x", got)
	}
}

func TestNumBlocks(t *testing.T) {
	tests := map[uint32]int{
		0:             1,
		1:             1,
		BlockSize:     1,
		BlockSize + 1: 2,
		3 * BlockSize: 3,
		0xffffffff:    0x10000,
	}
	for size, expected := range tests {
		if got := NumBlocks(size); got != expected {
			t.Errorf("size %v: expected %v, got %v", size, expected, got)
		}
	}
}

func TestScan(t *testing.T) {
	img := NewImage(32)
	install := func(block uint16, dataLen int, title string) {
		t.Helper()
		_, err := Install(img, block, make([]byte, dataLen), &Metadata{Title: title})
		if err != nil {
			t.Fatal(err)
		}
	}
	install(0, 100, "first")
	install(4, 2*BlockSize, "second") // 3 blocks
	install(20, 10, "third")

	// damage metadata of the third game
	img[20*BlockSize+headerLen+10+len(metaMagic)+3] ^= 0xff

	games, err := Scan(img, img.Blocks())
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %v", len(games))
	}

	expected := []struct {
		block  uint16
		blocks int
		title  string
		err    error
	}{
		{0, 1, "first", nil},
		{4, 3, "second", nil},
		{20, 1, "", ErrChecksum},
	}
	for i, e := range expected {
		g := games[i]
		if g.Block != e.block || g.Blocks() != e.blocks {
			t.Errorf("game %d: expected blocks %v+%v, got %v+%v", i, e.block, e.blocks, g.Block, g.Blocks())
		}
		if !errors.Is(g.Err, e.err) {
			t.Errorf("game %d: expected %v, got %v", i, e.err, g.Err)
		}
		if e.err == nil && g.Meta.Title != e.title {
			t.Errorf("game %d: expected %q, got %q", i, e.title, g.Meta.Title)
		}
		if e.err != nil && g.Meta != nil {
			t.Errorf("game %d: expected no metadata", i)
		}
	}
}

func TestScanDamagedHeader(t *testing.T) {
	tests := map[string]struct {
		size, metaOff uint32
		err           error
		blocks        int
	}{
		"SizeZero":      {0, headerLen, ErrSize, 1},
		"SizeMax":       {0xffffffff, headerLen, ErrSize, 1},
		"PastEnd":       {4 * BlockSize, headerLen, ErrSize, 1},
		"MetaPastSize":  {BlockSize, BlockSize, ErrMetaRange, 1},
		"MetaInHeader":  {BlockSize, 4, ErrMetaRange, 1},
		"MetaAfterData": {2 * BlockSize, BlockSize, ErrNoMeta, 2},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			img := NewImage(8)
			hdr := img[5*BlockSize:]
			copy(hdr, gameMagic)
			binary.BigEndian.PutUint32(hdr[4:], tc.size)
			binary.BigEndian.PutUint32(hdr[8:], tc.metaOff)

			done := make(chan struct{})
			var games []Game
			var err error
			go func() {
				games, err = Scan(img, img.Blocks())
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("scan did not terminate")
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(games) != 1 {
				t.Fatalf("expected 1 game, got %v", len(games))
			}
			g := games[0]
			if !errors.Is(g.Err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, g.Err)
			}
			if g.Meta != nil {
				t.Fatal("expected no metadata")
			}
			if g.Blocks() != tc.blocks {
				t.Fatalf("expected %v blocks, got %v", tc.blocks, g.Blocks())
			}

			entries := BlockMap(games, img.Blocks())
			last := entries[len(entries)-1]
			if int(last.Start)+int(last.Blocks) != img.Blocks() {
				t.Fatalf("expected block map to end at %v, got %+v", img.Blocks(), entries)
			}
		})
	}
}

func TestInstallFull(t *testing.T) {
	img := NewImage(SizeBlocks)
	_, err := Install(img, SizeBlocks-1, make([]byte, BlockSize), &Metadata{})
	if !errors.Is(err, ErrFull) {
		t.Fatalf("expected %v, got %v", ErrFull, err)
	}
}

func TestBlockMap(t *testing.T) {
	games := []Game{
		{Block: 2, Size: BlockSize},
		{Block: 3, Size: 2 * BlockSize},
		{Block: 10, Size: 1},
	}
	entries := BlockMap(games, 16)

	expected := []struct {
		start, blocks uint16
		used          bool
	}{
		{0, 2, false},
		{2, 1, true},
		{3, 2, true},
		{5, 5, false},
		{10, 1, true},
		{11, 5, false},
	}
	if len(entries) != len(expected) {
		t.Fatalf("expected %v entries, got %v", len(expected), len(entries))
	}
	for i, e := range expected {
		got := entries[i]
		if got.Start != e.start || got.Blocks != e.blocks || got.Used() != e.used {
			t.Errorf("entry %d: expected %+v, got {%v %v %v}", i, e, got.Start, got.Blocks, got.Used())
		}
	}

	tests := map[int]int{0: 0, 1: 0, 2: 1, 4: 2, 9: 3, 15: 5, 16: -1}
	for block, idx := range tests {
		if got := Lookup(entries, block); got != idx {
			t.Errorf("block %v: expected entry %v, got %v", block, idx, got)
		}
	}
}

func TestBlockMapClamp(t *testing.T) {
	games := []Game{
		{Block: 2, Size: 10 * BlockSize},
		{Block: 9, Size: 1},
	}
	entries := BlockMap(games, 8)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if e := entries[1]; e.Start != 2 || e.Blocks != 6 || !e.Used() {
		t.Fatalf("expected game cut off at 8, got %+v", e)
	}
}

func TestBlockMapEmpty(t *testing.T) {
	entries := BlockMap(nil, SizeBlocks)
	if len(entries) != 1 || entries[0].Blocks != SizeBlocks || entries[0].Used() {
		t.Fatalf("expected one free entry, got %+v", entries)
	}
}
