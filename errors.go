package kmeans

import (
	"errors"

	"github.com/fjellheim/kmeans/lloyd"
)

var (
	// ErrInvalidK is returned when k is not positive.
	// Aliased from the core so errors.Is matches across layers.
	ErrInvalidK = lloyd.ErrInvalidK

	// ErrTooFewPoints is returned when the dataset holds fewer points than
	// the requested number of clusters.
	ErrTooFewPoints = errors.New("dataset must contain at least k points")

	// ErrInvalidTolerance is returned when the convergence tolerance is
	// negative.
	ErrInvalidTolerance = errors.New("tolerance must be non-negative")

	// ErrInvalidIterations is returned when the iteration cap is not
	// positive.
	ErrInvalidIterations = errors.New("max iterations must be positive")
)
