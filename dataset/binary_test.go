package dataset

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundtrip(t *testing.T) {
	orig, err := New([]float64{0, 0, 1.5, -2.5, 10, 10}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, orig))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, orig.Len(), got.Len())
	assert.Equal(t, orig.Dim(), got.Dim())
	assert.Equal(t, orig.Raw(), got.Raw())
}

func TestReadBinary_BadMagic(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte("nope0000000000000000")))
	var bad *ErrBadMagic
	require.ErrorAs(t, err, &bad)
}

// hugeCountHeader builds a valid-magic header whose declared point count
// can never fit in memory.
func hugeCountHeader(dim uint32, count uint64) []byte {
	header := make([]byte, 16)
	copy(header[0:4], "kmb1")
	binary.LittleEndian.PutUint32(header[4:8], dim)
	binary.LittleEndian.PutUint64(header[8:16], count)
	return header
}

func TestReadBinary_HugeCount(t *testing.T) {
	// A crafted header must produce an error, not an allocation panic.
	_, err := ReadBinary(bytes.NewReader(hugeCountHeader(2, 1<<62)))
	var invalid *ErrInvalidCount
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.Dim)
	assert.Equal(t, uint64(1)<<62, invalid.Count)
}

func TestOpenMapped_HugeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.kmb")
	require.NoError(t, os.WriteFile(path, hugeCountHeader(3, 1<<61), 0o600))

	_, err := OpenMapped(path)
	var invalid *ErrInvalidCount
	require.ErrorAs(t, err, &invalid)
}

func TestReadBinary_Truncated(t *testing.T) {
	orig, err := New([]float64{1, 2, 3, 4}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, orig))

	_, err = ReadBinary(bytes.NewReader(buf.Bytes()[:20]))
	assert.Error(t, err)
}

func TestOpenMapped(t *testing.T) {
	orig, err := New([]float64{0, 0, 1, 0, 10, 10, 11, 10}, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "points.kmb")
	require.NoError(t, WriteBinaryFile(path, orig))

	ds, err := OpenMapped(path)
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, []float64{10, 10}, ds.At(2))
	assert.Equal(t, orig.Raw(), ds.Raw())
}

func TestOpenMapped_CloseIdempotent(t *testing.T) {
	orig, err := New([]float64{1, 2}, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "points.kmb")
	require.NoError(t, WriteBinaryFile(path, orig))

	ds, err := OpenMapped(path)
	require.NoError(t, err)
	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close())
}

func TestOpenMapped_Truncated(t *testing.T) {
	orig, err := New([]float64{1, 2, 3, 4}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, orig))

	path := filepath.Join(t.TempDir(), "points.kmb")
	require.NoError(t, os.WriteFile(path, buf.Bytes()[:24], 0o600))

	_, err = OpenMapped(path)
	assert.Error(t, err)
}
