package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBins   = errors.New("analysis: bin count must be positive")
	ErrCutoff = errors.New("analysis: cutoff must be positive and finite")
)

// Params configures one histogram.
type Params struct {
	Bins   int
	Cutoff float64
}

func (p Params) Validate() error {
	if p.Bins <= 0 {
		return fmt.Errorf("%w (got %d)", ErrBins, p.Bins)
	}
	if !(p.Cutoff > 0) || math.IsInf(p.Cutoff, 0) {
		return fmt.Errorf("%w (got %g)", ErrCutoff, p.Cutoff)
	}
	return nil
}

// BinWidth is the radial width of a pair distribution bin.
func (p Params) BinWidth() float64 {
	return p.Cutoff / float64(p.Bins)
}

// AngleBinWidth is the width of an angle distribution bin; angles span [0, pi].
func (p Params) AngleBinWidth() float64 {
	return math.Pi / float64(p.Bins)
}

// Histogram holds the per-bin mean over particles and its variance.
type Histogram struct {
	Mean     []float64
	Variance []float64
}

// Distribution builds pair and angle histograms from neighbour lists.
//
// Pair receives, for each neighbour pair, the index of the first particle and
// the pair distance. Angle receives both particle indices and the distance
// vector of each pair; only pairs within Cutoff contribute.
type Distribution interface {
	Pair(i []int32, r []float64, p Params) (Histogram, error)
	Angle(i, j []int32, r [][3]float64, p Params) (Histogram, error)
}
