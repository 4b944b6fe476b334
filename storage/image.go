package storage

import "io"

// Image is an in-memory flash.
type Image []byte

func NewImage(blocks int) Image {
	img := make(Image, blocks*BlockSize)
	for i := range img {
		img[i] = 0xff // erased
	}
	return img
}

func (img Image) Blocks() int { return len(img) / BlockSize }

func (img Image) ReadAt(p []byte, off int64) (n int, err error) {
	if off >= int64(len(img)) {
		return 0, io.EOF
	}
	n = copy(p, img[off:])
	if n < len(p) {
		err = io.EOF
	}
	return
}

func (img Image) WriteAt(p []byte, off int64) (n int, err error) {
	if off >= int64(len(img)) {
		return 0, io.ErrShortWrite
	}
	n = copy(img[off:], p)
	if n < len(p) {
		err = io.ErrShortWrite
	}
	return
}
