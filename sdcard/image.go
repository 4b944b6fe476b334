package sdcard

import (
	"fmt"
	"io/fs"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
)

// DefaultImageSize is the smallest size for which FAT32 can be created.
const DefaultImageSize = 64 * 1024 * 1024

// Image is a FAT32 formatted SD card image file.
type Image struct {
	disk *disk.Disk
	fs   filesystem.FileSystem
}

// CreateImage creates a new FAT32 formatted image at path.
func CreateImage(path string, size int64) (*Image, error) {
	d, err := diskfs.Create(path, size, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	fsys, err := d.CreateFilesystem(disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "N64DEMO",
	})
	if err != nil {
		d.File.Close()
		return nil, fmt.Errorf("format image: %w", err)
	}
	return &Image{d, fsys}, nil
}

// OpenImage opens an existing image created by CreateImage or any other
// unpartitioned FAT32 image.
func OpenImage(path string) (*Image, error) {
	d, err := diskfs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	fsys, err := d.GetFilesystem(0)
	if err != nil {
		d.File.Close()
		return nil, fmt.Errorf("open image: %w", err)
	}
	return &Image{d, fsys}, nil
}

func (img *Image) OpenFile(name string, flag int) (File, error) {
	return img.fs.OpenFile(name, flag)
}

func (img *Image) ReadDir(name string) ([]fs.FileInfo, error) {
	return img.fs.ReadDir(name)
}

func (img *Image) Close() error {
	return img.disk.File.Close()
}
