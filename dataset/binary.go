package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unsafe"
)

// Binary point-file layout, little endian:
//
//	[4]byte  magic "kmb1"
//	uint32   dim
//	uint64   count
//	float64  payload, count*dim values, row-major
//
// The 16-byte header keeps the payload 8-byte aligned for mapped access.
const binaryMagic = "kmb1"

// ErrBadMagic indicates a binary point file with an unknown header.
type ErrBadMagic struct {
	Got [4]byte
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("bad magic %q, want %q", e.Got[:], binaryMagic)
}

// ErrInvalidCount indicates a header whose declared point count cannot be
// addressed in memory for the declared dimension.
type ErrInvalidCount struct {
	Dim   int
	Count uint64
}

func (e *ErrInvalidCount) Error() string {
	return fmt.Sprintf("point count %d with dimension %d exceeds addressable size", e.Count, e.Dim)
}

// WriteBinary writes d in the binary point-file format.
func WriteBinary(w io.Writer, d *Dataset) error {
	var header [16]byte
	copy(header[0:4], binaryMagic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(d.dim))
	binary.LittleEndian.PutUint64(header[8:16], uint64(d.n))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(d.data) == 0 {
		return nil
	}
	// Direct memory view of the float payload (no allocation).
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&d.data[0])), len(d.data)*8)
	_, err := w.Write(byteSlice)
	return err
}

// ReadBinary reads a binary point file into memory.
func ReadBinary(r io.Reader) (*Dataset, error) {
	dim, count, err := readBinaryHeader(r)
	if err != nil {
		return nil, err
	}
	data := make([]float64, count*dim)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*8)
	if _, err := io.ReadFull(r, byteSlice); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return &Dataset{data: data, n: count, dim: dim}, nil
}

// WriteBinaryFile writes d to path in the binary point-file format.
func WriteBinaryFile(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBinary(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OpenMapped opens a binary point file with the payload memory-mapped where
// the platform supports it, giving zero-copy access for large datasets.
// Close the returned Dataset to release the mapping.
func OpenMapped(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dim, count, err := readBinaryHeader(f)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmpty
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	want := int64(16 + count*dim*8)
	if fi.Size() < want {
		return nil, fmt.Errorf("truncated point file: %d bytes, want %d", fi.Size(), want)
	}

	raw, unmap, err := mapFile(f, int(fi.Size()))
	if err != nil {
		return nil, err
	}

	// Header is 16 bytes, so the payload stays 8-byte aligned.
	payload := raw[16 : 16+count*dim*8]
	data := unsafe.Slice((*float64)(unsafe.Pointer(&payload[0])), count*dim)

	return &Dataset{data: data, n: count, dim: dim, unmap: func() error {
		return unmap(raw)
	}}, nil
}

func readBinaryHeader(r io.Reader) (dim, count int, err error) {
	var header [16]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}
	if string(header[0:4]) != binaryMagic {
		e := &ErrBadMagic{}
		copy(e.Got[:], header[0:4])
		return 0, 0, e
	}
	dim = int(binary.LittleEndian.Uint32(header[4:8]))
	if dim < 1 {
		return 0, 0, ErrInvalidDim
	}
	rawCount := binary.LittleEndian.Uint64(header[8:16])
	// Reject counts for which 16 + count*dim*8 is not addressable, so the
	// allocation and file-size arithmetic downstream cannot overflow.
	if rawCount > uint64(math.MaxInt-16)/8/uint64(dim) {
		return 0, 0, &ErrInvalidCount{Dim: dim, Count: rawCount}
	}
	return dim, int(rawCount), nil
}
