// Package browser implements a cursor based file browser over an [fs.FS].
package browser

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrNotDir = errors.New("not a directory")

type Entry struct {
	Name string
	Dir  bool
}

// Browser lists one directory at a time. Only directories and files with one
// of the configured extensions are listed, directories first.
type Browser struct {
	fsys     fs.FS
	exts     []string
	collator *collate.Collator

	dir     string
	entries []Entry
	cursor  int
	parents []int // cursor positions of the parent directories
}

// New opens the root directory of fsys. Without extensions all files are
// listed.
func New(fsys fs.FS, exts ...string) (*Browser, error) {
	b := &Browser{
		fsys:     fsys,
		exts:     exts,
		collator: collate.New(language.English, collate.IgnoreCase, collate.Numeric),
	}
	if err := b.load("."); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Browser) Dir() string      { return b.dir }
func (b *Browser) Entries() []Entry { return b.entries }
func (b *Browser) Cursor() int      { return b.cursor }

// Selected returns the entry under the cursor.
func (b *Browser) Selected() (Entry, bool) {
	if len(b.entries) == 0 {
		return Entry{}, false
	}
	return b.entries[b.cursor], true
}

// Move moves the cursor by delta entries, stopping at the first and last one.
func (b *Browser) Move(delta int) {
	b.cursor = max(0, min(b.cursor+delta, len(b.entries)-1))
}

// Enter opens the selected directory. If a file is selected its path is
// returned instead.
func (b *Browser) Enter() (file string, err error) {
	e, ok := b.Selected()
	if !ok {
		return "", nil
	}
	p := path.Join(b.dir, e.Name)
	if !e.Dir {
		return p, nil
	}
	cursor := b.cursor
	if err := b.load(p); err != nil {
		return "", err
	}
	b.parents = append(b.parents, cursor)
	return "", nil
}

// Up opens the parent directory and restores the cursor to the directory it
// came from. It does nothing in the root directory.
func (b *Browser) Up() error {
	if b.dir == "." {
		return nil
	}
	if err := b.load(path.Dir(b.dir)); err != nil {
		return err
	}
	if n := len(b.parents); n > 0 {
		b.cursor = min(b.parents[n-1], max(len(b.entries)-1, 0))
		b.parents = b.parents[:n-1]
	}
	return nil
}

// Open lists dir, which must be a valid [fs.ValidPath] naming a directory.
func (b *Browser) Open(dir string) error {
	if err := b.load(dir); err != nil {
		return err
	}
	b.parents = b.parents[:0]
	return nil
}

func (b *Browser) load(dir string) error {
	info, err := fs.Stat(b.fsys, dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDir)
	}
	dirents, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}
		if d.IsDir() || b.match(d.Name()) {
			entries = append(entries, Entry{d.Name(), d.IsDir()})
		}
	}
	slices.SortFunc(entries, b.compare)

	b.dir, b.entries, b.cursor = dir, entries, 0
	return nil
}

func (b *Browser) match(name string) bool {
	if len(b.exts) == 0 {
		return true
	}
	ext := path.Ext(name)
	return slices.ContainsFunc(b.exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func (b *Browser) compare(x, y Entry) int {
	if x.Dir != y.Dir {
		if x.Dir {
			return -1
		}
		return 1
	}
	return b.collator.CompareString(x.Name, y.Name)
}
