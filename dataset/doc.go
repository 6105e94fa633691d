// Package dataset holds the immutable point sets consumed by the clustering
// core, plus the loaders that produce them.
//
// Points are stored flattened row-major ([]float64 with a fixed dimension),
// so At(i) returns a zero-copy view. Datasets are caller-owned and
// referenced, never copied, by the clustering core.
//
// # Loading
//
//	ds, err := dataset.Open("points.csv.zst") // .zst/.lz4/.gz decompressed transparently
//	ds, err := dataset.LoadCSV(r)
//	ds, err := dataset.OpenMapped("points.kmb") // zero-copy binary point file
//
// OpenMapped memory-maps the float payload on unix platforms; call Close to
// release the mapping.
package dataset
