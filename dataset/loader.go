package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// LoadCSV parses comma-separated float rows into a Dataset.
// The dimension is inferred from the first row; rows with a different number
// of fields are rejected.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	var (
		data []float64
		dim  int
		row  int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if dim == 0 {
			dim = len(record)
		} else if len(record) != dim {
			return nil, &ErrRaggedData{Index: row, Expected: dim, Actual: len(record)}
		}
		for _, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			data = append(data, v)
		}
		row++
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return New(data, dim)
}

// Open loads a CSV dataset from path, transparently decompressing by file
// extension: .zst (zstd), .lz4, .gz (gzip). Anything else is read as plain
// CSV. Binary point files use ReadBinary/OpenMapped instead.
func Open(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch filepath.Ext(path) {
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	case ".lz4":
		r = lz4.NewReader(f)
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	}

	return LoadCSV(r)
}
