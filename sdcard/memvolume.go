package sdcard

import (
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"time"
)

// MemVolume is a flat in-memory Volume, used when no card image is
// available.
type MemVolume struct {
	files map[string]*memData
}

type memData struct {
	name string
	data []byte
}

func NewMemVolume() *MemVolume {
	return &MemVolume{files: make(map[string]*memData)}
}

func (v *MemVolume) OpenFile(name string, flag int) (File, error) {
	name = path.Clean("/" + name)
	d, ok := v.files[name]
	if !ok {
		if flag&os.O_CREATE == 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		d = &memData{name: path.Base(name)}
		v.files[name] = d
	}
	if flag&os.O_TRUNC != 0 {
		d.data = d.data[:0]
	}
	return &memFile{memData: d, writable: flag&(os.O_WRONLY|os.O_RDWR) != 0}, nil
}

func (v *MemVolume) ReadDir(name string) ([]fs.FileInfo, error) {
	dir := path.Clean("/" + name)
	var infos []fs.FileInfo
	for p, d := range v.files {
		if path.Dir(p) == dir {
			infos = append(infos, memInfo{d.name, int64(len(d.data))})
		}
	}
	slices.SortFunc(infos, func(a, b fs.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return infos, nil
}

type memFile struct {
	*memData
	off      int64
	writable bool
}

func (f *memFile) Read(p []byte) (n int, err error) {
	if f.off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n = copy(p, f.data[f.off:])
	f.off += int64(n)
	return
}

func (f *memFile) Write(p []byte) (n int, err error) {
	if !f.writable {
		return 0, fs.ErrPermission
	}
	if end := f.off + int64(len(p)); end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	n = copy(f.data[f.off:], p)
	f.off += int64(n)
	return
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekCurrent:
		offset += f.off
	case io.SeekEnd:
		offset += int64(len(f.data))
	}
	if offset < 0 {
		return f.off, fs.ErrInvalid
	}
	f.off = offset
	return offset, nil
}

func (f *memFile) Close() error { return nil }

type memInfo struct {
	name string
	size int64
}

func (fi memInfo) Name() string       { return fi.name }
func (fi memInfo) Size() int64        { return fi.size }
func (fi memInfo) Mode() fs.FileMode  { return 0644 }
func (fi memInfo) ModTime() time.Time { return time.Time{} }
func (fi memInfo) IsDir() bool        { return false }
func (fi memInfo) Sys() any           { return nil }
