package storage

// Entry is a run of blocks that is either used by a game or free.
type Entry struct {
	Start, Blocks uint16
	Game          *Game // nil for free space
}

func (e *Entry) Used() bool { return e.Game != nil }

// BlockMap returns the used and free regions of a flash with the given number
// of blocks. The games must be sorted by block, as returned by Scan. Games
// reaching past the last block are cut off.
func BlockMap(games []Game, blocks int) []Entry {
	var entries []Entry
	var end int
	for i := range games {
		g := &games[i]
		start := int(g.Block)
		if start >= blocks {
			break
		}
		if start > end {
			entries = append(entries, Entry{Start: uint16(end), Blocks: uint16(start - end)})
		}
		n := min(g.Blocks(), blocks-start)
		entries = append(entries, Entry{Start: g.Block, Blocks: uint16(n), Game: g})
		end = start + n
	}
	if end < blocks {
		entries = append(entries, Entry{Start: uint16(end), Blocks: uint16(blocks - end)})
	}
	return entries
}

// Lookup returns the index of the entry containing block, or -1.
func Lookup(entries []Entry, block int) int {
	for i := range entries {
		e := &entries[i]
		if block >= int(e.Start) && block < int(e.Start)+int(e.Blocks) {
			return i
		}
	}
	return -1
}
