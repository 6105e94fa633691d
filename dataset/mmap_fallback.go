//go:build !unix

package dataset

import (
	"io"
	"os"
)

// mapFile reads the whole file into memory on platforms without mmap
// support. The caller-facing contract (read-only view, Close releases) is
// unchanged.
func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, func([]byte) error { return nil }, nil
}
