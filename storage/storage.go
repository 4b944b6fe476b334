// Package storage maps the usage of a flash chip that holds installed games.
//
// Every game starts at a block boundary with a header, followed by the game
// data and a metadata block:
//
//	0x00 magic   "N64G"
//	0x04 size    uint32, total size of the game in bytes
//	0x08 meta    uint32, offset of the metadata block from the game start
//
//	metadata: "N64META\x00", uint16 length, crc8, fields...
//
// All integers are big endian.
package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sigurn/crc8"
)

const (
	Size       = (32 - 4) * 1024 * 1024 // 32MB flash - 4MB reserved
	BlockSize  = 64 * 1024
	SizeBlocks = Size / BlockSize
)

var (
	ErrChecksum  = errors.New("metadata checksum mismatch")
	ErrNoMeta    = errors.New("missing metadata")
	ErrMetaRange = errors.New("metadata out of range")
	ErrFull      = errors.New("flash full")
	ErrSize      = errors.New("game size out of range")
)

var (
	gameMagic = []byte("N64G")
	metaMagic = []byte("N64META\x00")
)

const headerLen = 12

var metaCRC8 = crc8.MakeTable(crc8.CRC8_MAXIM)

// NumBlocks returns the number of blocks occupied by size bytes.
func NumBlocks(size uint32) int {
	if size == 0 {
		return 1
	}
	return int((size-1)/BlockSize) + 1
}

type Metadata struct {
	Datetime    string
	Title       string
	Description string
	Version     string
	Author      string
}

// field sizes including the terminating NUL
var fieldLens = [...]int{16, 25, 129, 17, 17}

const fieldsLen = 16 + 25 + 129 + 17 + 17

func (m *Metadata) fields() [5]*string {
	return [...]*string{&m.Datetime, &m.Title, &m.Description, &m.Version, &m.Author}
}

// MarshalBinary encodes the metadata block. Fields are truncated to fit.
func (m *Metadata) MarshalBinary() ([]byte, error) {
	fields := make([]byte, fieldsLen)
	off := 0
	for i, f := range m.fields() {
		n := min(len(*f), fieldLens[i]-1)
		copy(fields[off:], (*f)[:n])
		off += fieldLens[i]
	}

	b := make([]byte, 0, len(metaMagic)+3+fieldsLen)
	b = append(b, metaMagic...)
	b = binary.BigEndian.AppendUint16(b, fieldsLen)
	b = append(b, checksum(fields))
	return append(b, fields...), nil
}

func (m *Metadata) UnmarshalBinary(b []byte) error {
	if len(b) < len(metaMagic)+3 || !bytes.Equal(b[:len(metaMagic)], metaMagic) {
		return ErrNoMeta
	}
	b = b[len(metaMagic):]
	n := int(binary.BigEndian.Uint16(b))
	csum := b[2]
	b = b[3:]
	if n != fieldsLen || len(b) < n {
		return ErrMetaRange
	}
	if checksum(b[:n]) != csum {
		return ErrChecksum
	}

	off := 0
	for i, f := range m.fields() {
		field := b[off : off+fieldLens[i]]
		if i := bytes.IndexByte(field, 0); i >= 0 {
			field = field[:i]
		}
		*f = string(field)
		off += fieldLens[i]
	}
	return nil
}

// MetaLen is the encoded size of a metadata block.
const MetaLen = 8 + 3 + fieldsLen

func checksum(data []byte) byte {
	csum := crc8.Init(metaCRC8)
	csum = crc8.Update(csum, data, metaCRC8)
	return crc8.Complete(csum, metaCRC8)
}

// Game is an installed game found by Scan.
type Game struct {
	Block uint16
	Size  uint32

	// Meta is nil if the metadata is missing or damaged, see Err.
	Meta *Metadata
	Err  error
}

// Blocks returns the number of blocks occupied by the game. A game with an
// invalid size occupies only the block holding its header.
func (g *Game) Blocks() int {
	if errors.Is(g.Err, ErrSize) {
		return 1
	}
	return NumBlocks(g.Size)
}

// Scan searches the flash for installed games. Games are only found at block
// boundaries. The returned error is only non-nil for read errors.
func Scan(r io.ReaderAt, blocks int) (games []Game, err error) {
	var hdr [headerLen]byte
	for block := 0; block < blocks; {
		off := int64(block) * BlockSize
		if _, err = r.ReadAt(hdr[:], off); err != nil {
			if errors.Is(err, io.EOF) {
				return games, nil
			}
			return nil, fmt.Errorf("read header at block %d: %w", block, err)
		}
		if !bytes.Equal(hdr[:4], gameMagic) {
			block++
			continue
		}

		g := Game{
			Block: uint16(block),
			Size:  binary.BigEndian.Uint32(hdr[4:]),
		}
		metaOff := binary.BigEndian.Uint32(hdr[8:])
		if g.Size < headerLen || block+NumBlocks(g.Size) > blocks {
			g.Err = ErrSize
		} else if metaOff < headerLen || uint64(metaOff)+MetaLen > uint64(g.Size) {
			g.Err = ErrMetaRange
		} else {
			buf := make([]byte, MetaLen)
			if _, err = r.ReadAt(buf, off+int64(metaOff)); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read metadata at block %d: %w", block, err)
			}
			meta := &Metadata{}
			if g.Err = meta.UnmarshalBinary(buf); g.Err == nil {
				g.Meta = meta
			}
		}

		games = append(games, g)
		block += g.Blocks()
	}
	return games, nil
}

// Install writes a game consisting of data followed by its metadata to the
// flash at the given block. It returns the total size of the game.
func Install(w io.WriterAt, block uint16, data []byte, meta *Metadata) (uint32, error) {
	metaBytes, err := meta.MarshalBinary()
	if err != nil {
		return 0, err
	}
	metaOff := uint32(headerLen + len(data))
	size := metaOff + uint32(len(metaBytes))
	if int(block)+NumBlocks(size) > SizeBlocks {
		return 0, ErrFull
	}

	buf := make([]byte, 0, size)
	buf = append(buf, gameMagic...)
	buf = binary.BigEndian.AppendUint32(buf, size)
	buf = binary.BigEndian.AppendUint32(buf, metaOff)
	buf = append(buf, data...)
	buf = append(buf, metaBytes...)

	_, err = w.WriteAt(buf, int64(block)*BlockSize)
	return size, err
}
