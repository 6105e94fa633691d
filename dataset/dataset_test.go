package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ds, err := New([]float64{0, 0, 1, 1, 2, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, []float64{1, 1}, ds.At(1))
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidDim)

	_, err = New(nil, 2)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]float64{1, 2, 3}, 2)
	var ragged *ErrRaggedData
	require.ErrorAs(t, err, &ragged)
	assert.Equal(t, -1, ragged.Index)
	assert.Equal(t, 3, ragged.Actual)
}

func TestFromVectors(t *testing.T) {
	ds, err := FromVectors([][]float64{{0, 1}, {2, 3}, {4, 5}})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []float64{4, 5}, ds.At(2))
}

func TestFromVectors_Ragged(t *testing.T) {
	_, err := FromVectors([][]float64{{0, 1}, {2}})
	var ragged *ErrRaggedData
	require.ErrorAs(t, err, &ragged)
	assert.Equal(t, 1, ragged.Index)
}

func TestAt_IsView(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	ds, err := New(backing, 2)
	require.NoError(t, err)

	// At must reference, not copy, the caller's storage.
	assert.Same(t, &backing[2], &ds.At(1)[0])
}

func TestClose_InMemoryNoop(t *testing.T) {
	ds, err := New([]float64{1, 2}, 2)
	require.NoError(t, err)
	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close())
}

func TestErrRaggedDataMessages(t *testing.T) {
	err := &ErrRaggedData{Index: -1, Expected: 4, Actual: 10}
	assert.Contains(t, err.Error(), "not a multiple")

	err = &ErrRaggedData{Index: 3, Expected: 4, Actual: 2}
	assert.Contains(t, err.Error(), "row 3")

	assert.False(t, errors.Is(err, ErrEmpty))
}
