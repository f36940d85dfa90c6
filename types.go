package histcore

import "fmt"

// Float is the set of real-number precisions a Histogram may be built
// over. Gradients, Hessians, and BinRecord sums all share one precision
// per Builder so that accumulation never performs a widening copy that
// would defeat vectorization.
type Float interface {
	~float32 | ~float64
}

// BinRecord is one bin of one feature's histogram: the running sums of
// gradient and Hessian contributions from every sample that fell into
// the bin, plus the sample count.
//
// In constant-Hessian mode, SumHessians is never read or written by the
// brute kernels; subtraction and split-feature reuse carry it over field
// by field from their inputs. Callers must not assert on its value.
type BinRecord[F Float] struct {
	SumGradients F
	SumHessians  F
	Count        uint32
}

// Histogram is the dense (n_features, n_bins) output of a Builder call.
// Rows share a single backing allocation so the whole matrix is one
// contiguous block, and each row is additionally a contiguous sub-slice
// of it, satisfying the "each row is contiguous, rows are processed
// independently" layout requirement.
type Histogram[F Float] struct {
	NFeatures int
	NBins     int
	data      []BinRecord[F]
	Rows      [][]BinRecord[F]
}

// NewHistogram allocates a zeroed histogram of shape (nFeatures, nBins).
// Every field of every bin is the zero value; rows for features that a
// caller never populates stay zero, satisfying the allowed-features
// masking contract.
func NewHistogram[F Float](nFeatures, nBins int) *Histogram[F] {
	data := make([]BinRecord[F], nFeatures*nBins)
	rows := make([][]BinRecord[F], nFeatures)
	for f := 0; f < nFeatures; f++ {
		rows[f] = data[f*nBins : (f+1)*nBins]
	}
	return &Histogram[F]{
		NFeatures: nFeatures,
		NBins:     nBins,
		data:      data,
		Rows:      rows,
	}
}

// newHistogramGuarded allocates a histogram the same way NewHistogram does,
// but checks nFeatures*nBins for int overflow first, returning a
// ResourceExhaustionError instead of letting a corrupted size reach make()
// and panic. Builder uses this instead of calling NewHistogram directly.
func newHistogramGuarded[F Float](nFeatures, nBins int) (*Histogram[F], error) {
	if nFeatures <= 0 || nBins <= 0 {
		return nil, &ResourceExhaustionError{
			Reason: fmt.Sprintf("invalid histogram shape (%d,%d)", nFeatures, nBins),
		}
	}
	total := nFeatures * nBins
	if total/nFeatures != nBins {
		return nil, &ResourceExhaustionError{
			Reason: fmt.Sprintf("nFeatures*nBins overflows int for shape (%d,%d)", nFeatures, nBins),
		}
	}
	return NewHistogram[F](nFeatures, nBins), nil
}

// BinnedMatrix is a read-only, column-major view over pre-computed bin
// indices: X_binned. Column f is the contiguous run of NSamples bin
// indices for feature f, which is the access pattern every bin-
// accumulation kernel relies on for sequential memory access.
type BinnedMatrix struct {
	Data      []uint8
	NSamples  int
	NFeatures int
}

// Column returns the contiguous bin-index slice for feature f.
func (m BinnedMatrix) Column(f int) []uint8 {
	return m.Data[f*m.NSamples : (f+1)*m.NSamples]
}

// SplitInfo describes the split that produced the current node's
// parent-to-child transition. It is consumed, not owned: histcore never
// constructs one on its own, only reads the fields named here.
type SplitInfo struct {
	FeatureIdx    uint32
	BinIdx        uint32
	IsCategorical bool
	LeftCatBitset *CategoricalBitset
}
