package histcore

import "fmt"

// BuilderConfig collects the construction-time parameters of a Builder,
// mirroring the "Builder constructor parameters" listed in spec.md §6.
type BuilderConfig[F Float] struct {
	// XBinned is the read-only, column-major bin-index matrix.
	XBinned BinnedMatrix
	// NBins is the fixed bin count per feature, including the reserved
	// missing-value bin.
	NBins int
	// Gradients and Hessians are the per-sample derivative vectors for
	// the current boosting iteration. Hessians may be nil when
	// HessiansAreConstant is true.
	Gradients []F
	Hessians  []F
	// HessiansAreConstant switches the brute kernels into the mode that
	// never reads or writes BinRecord.SumHessians.
	HessiansAreConstant bool
	// NThreads is the fixed size of the feature-parallel worker pool.
	NThreads int
	// Logger receives advisory diagnostics; nil installs a no-op.
	Logger Logger
}

// Builder owns X_binned, the gradient/Hessian vectors, and the ordered-
// gradient scratch buffers for one boosting iteration. It is the sole
// entry point for histogram construction.
type Builder[F Float] struct {
	xBinned          BinnedMatrix
	gradients        []F
	hessians         []F
	hessiansConstant bool

	nSamples  int
	nFeatures int
	nBins     int
	nThreads  int

	orderedGradients []F
	orderedHessians  []F
	scratchPositions []uint32
	allFeatures      []uint32

	logger Logger
}

// NewBuilder validates cfg and returns a ready-to-use Builder. All config
// validation happens here, before any buffer (including the ordered-
// gradient scratch space) is allocated, so a rejected config never leaves
// a half-built Builder behind.
func NewBuilder[F Float](cfg BuilderConfig[F]) (*Builder[F], error) {
	switch {
	case cfg.NBins <= 0:
		return nil, &InvalidArgumentError{Field: "NBins", Reason: "must be positive"}
	case cfg.XBinned.NFeatures <= 0:
		return nil, &InvalidArgumentError{Field: "XBinned.NFeatures", Reason: "must be positive"}
	case cfg.XBinned.NSamples <= 0:
		return nil, &InvalidArgumentError{Field: "XBinned.NSamples", Reason: "must be positive"}
	case len(cfg.XBinned.Data) != cfg.XBinned.NSamples*cfg.XBinned.NFeatures:
		return nil, &InvalidArgumentError{
			Field:  "XBinned.Data",
			Reason: fmt.Sprintf("length %d does not match NSamples*NFeatures=%d", len(cfg.XBinned.Data), cfg.XBinned.NSamples*cfg.XBinned.NFeatures),
		}
	case len(cfg.Gradients) != cfg.XBinned.NSamples:
		return nil, &InvalidArgumentError{Field: "Gradients", Reason: "length must equal NSamples"}
	case !cfg.HessiansAreConstant && len(cfg.Hessians) != cfg.XBinned.NSamples:
		return nil, &InvalidArgumentError{Field: "Hessians", Reason: "length must equal NSamples unless HessiansAreConstant"}
	case cfg.NThreads <= 0:
		return nil, &InvalidArgumentError{Field: "NThreads", Reason: "must be positive"}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	n := cfg.XBinned.NSamples
	allFeatures := make([]uint32, cfg.XBinned.NFeatures)
	for i := range allFeatures {
		allFeatures[i] = uint32(i)
	}

	b := &Builder[F]{
		xBinned:          cfg.XBinned,
		gradients:        cfg.Gradients,
		hessians:         cfg.Hessians,
		hessiansConstant: cfg.HessiansAreConstant,
		nSamples:         n,
		nFeatures:        cfg.XBinned.NFeatures,
		nBins:            cfg.NBins,
		nThreads:         cfg.NThreads,
		orderedGradients: make([]F, n),
		orderedHessians:  make([]F, n),
		scratchPositions: make([]uint32, n),
		allFeatures:      allFeatures,
		logger:           logger,
	}
	copy(b.orderedGradients, cfg.Gradients)
	if !cfg.HessiansAreConstant {
		copy(b.orderedHessians, cfg.Hessians)
	}

	return b, nil
}

// Rebind swaps in new gradient/Hessian vectors for the next boosting
// iteration without reallocating the ordered-gradient scratch buffers,
// per spec.md §3's "reused across iterations with rebound gradient/
// Hessian vectors" lifecycle.
func (b *Builder[F]) Rebind(gradients, hessians []F) error {
	if len(gradients) != b.nSamples {
		return &InvalidArgumentError{Field: "gradients", Reason: "length must equal NSamples"}
	}
	if !b.hessiansConstant && len(hessians) != b.nSamples {
		return &InvalidArgumentError{Field: "hessians", Reason: "length must equal NSamples unless HessiansAreConstant"}
	}
	b.gradients = gradients
	b.hessians = hessians
	copy(b.orderedGradients, gradients)
	if !b.hessiansConstant {
		copy(b.orderedHessians, hessians)
	}
	return nil
}

func (b *Builder[F]) featureList(allowedFeatures []uint32) []uint32 {
	if allowedFeatures == nil {
		return b.allFeatures
	}
	return allowedFeatures
}

func (b *Builder[F]) validateSampleIndices(sampleIndices []uint32) error {
	if !debugChecksEnabled || sampleIndices == nil {
		return nil
	}
	for _, idx := range sampleIndices {
		if int(idx) >= b.nSamples {
			return &InvalidArgumentError{
				Field:  "sampleIndices",
				Reason: fmt.Sprintf("index %d out of range [0,%d)", idx, b.nSamples),
			}
		}
	}
	return nil
}

func (b *Builder[F]) validateAllowedFeatures(allowedFeatures []uint32) error {
	if !debugChecksEnabled || allowedFeatures == nil {
		return nil
	}
	for _, f := range allowedFeatures {
		if int(f) >= b.nFeatures {
			return &InvalidArgumentError{
				Field:  "allowedFeatures",
				Reason: fmt.Sprintf("feature %d out of range [0,%d)", f, b.nFeatures),
			}
		}
	}
	return nil
}

// ComputeBrute builds a full (n_features, n_bins) histogram for the
// samples named by sampleIndices (nil or identity means the root node).
// When parentSplit and parentHistograms are both present, the feature
// parentSplit.FeatureIdx is built by masking the parent's bins (§4.4)
// instead of rescanning samples; every other allowed feature is built by
// the brute kernels (§4.3).
func (b *Builder[F]) ComputeBrute(
	sampleIndices []uint32,
	allowedFeatures []uint32,
	parentSplit *SplitInfo,
	parentHistograms *Histogram[F],
	isLeftChild bool,
) (*Histogram[F], error) {
	if err := b.validateSampleIndices(sampleIndices); err != nil {
		return nil, err
	}
	if err := b.validateAllowedFeatures(allowedFeatures); err != nil {
		return nil, err
	}

	useReuse := parentSplit != nil && parentHistograms != nil
	if useReuse {
		if parentSplit.IsCategorical && parentSplit.LeftCatBitset == nil {
			return nil, &InvalidArgumentError{Field: "parentSplit.LeftCatBitset", Reason: "categorical split requires a bitset"}
		}
		if parentHistograms.NFeatures != b.nFeatures || parentHistograms.NBins != b.nBins {
			return nil, &InvalidArgumentError{
				Field:  "parentHistograms",
				Reason: fmt.Sprintf("shape (%d,%d) does not match builder shape (%d,%d)", parentHistograms.NFeatures, parentHistograms.NBins, b.nFeatures, b.nBins),
			}
		}
	}

	isRoot := isIdentityPermutation(sampleIndices, b.nSamples)
	k := b.nSamples
	if !isRoot {
		k = len(sampleIndices)
		gatherOrdered(sampleIndices, b.gradients, b.orderedGradients, b.hessians, b.orderedHessians,
			b.hessiansConstant, b.nThreads, b.scratchPositions)
	}

	out, err := newHistogramGuarded[F](b.nFeatures, b.nBins)
	if err != nil {
		return nil, err
	}
	orderedGradients := b.orderedGradients[:k]
	orderedHessians := b.orderedHessians[:k]
	features := b.featureList(allowedFeatures)

	dispatchFeatures(features, b.nThreads, func(f uint32) {
		outRow := out.Rows[f]

		if useReuse && f == parentSplit.FeatureIdx {
			b.reuseFeature(parentSplit, parentHistograms.Rows[f], outRow, isLeftChild)
			return
		}

		col := b.xBinned.Column(int(f))
		switch {
		case isRoot && b.hessiansConstant:
			bruteRootConstHess(col, orderedGradients, outRow, k)
		case isRoot && !b.hessiansConstant:
			bruteRootHess(col, orderedGradients, orderedHessians, outRow, k)
		case !isRoot && b.hessiansConstant:
			bruteNonRootConstHess(col, sampleIndices, orderedGradients, outRow, k)
		default:
			bruteNonRootHess(col, sampleIndices, orderedGradients, orderedHessians, outRow, k)
		}
	})

	b.logger.Debug("histcore.compute_brute", "histogram built", map[string]any{
		"n_samples":  k,
		"is_root":    isRoot,
		"n_features": len(features),
	})

	return out, nil
}

func (b *Builder[F]) reuseFeature(split *SplitInfo, parentRow, outRow []BinRecord[F], isLeftChild bool) {
	if split.IsCategorical {
		reuseCategorical(parentRow, outRow, split.LeftCatBitset, isLeftChild)
		return
	}
	var start, end int
	if isLeftChild {
		start, end = 0, int(split.BinIdx)+1
	} else {
		start, end = int(split.BinIdx)+1, b.nBins
	}
	reuseNumericRange(parentRow, outRow, start, end)
}

// ComputeSubtraction derives a histogram as parent minus sibling, bin by
// bin, for every allowed feature. It never touches X_binned.
func (b *Builder[F]) ComputeSubtraction(parent, sibling *Histogram[F], allowedFeatures []uint32) (*Histogram[F], error) {
	if err := b.validateAllowedFeatures(allowedFeatures); err != nil {
		return nil, err
	}
	if parent.NFeatures != b.nFeatures || parent.NBins != b.nBins {
		return nil, &InvalidArgumentError{
			Field:  "parent",
			Reason: fmt.Sprintf("shape (%d,%d) does not match builder shape (%d,%d)", parent.NFeatures, parent.NBins, b.nFeatures, b.nBins),
		}
	}
	if sibling.NFeatures != b.nFeatures || sibling.NBins != b.nBins {
		return nil, &InvalidArgumentError{
			Field:  "sibling",
			Reason: fmt.Sprintf("shape (%d,%d) does not match builder shape (%d,%d)", sibling.NFeatures, sibling.NBins, b.nFeatures, b.nBins),
		}
	}

	out, err := newHistogramGuarded[F](b.nFeatures, b.nBins)
	if err != nil {
		return nil, err
	}
	features := b.featureList(allowedFeatures)

	dispatchFeatures(features, b.nThreads, func(f uint32) {
		subtractRow(parent.Rows[f], sibling.Rows[f], out.Rows[f])
	})

	b.warnOnCancellation(features, out)

	return out, nil
}

// warnOnCancellation logs a diagnostic when subtraction produced
// negative sums outside a tiny floating-point tolerance. It never
// modifies the histogram: negative sums from cancellation are valid
// per spec.md §4.5 and must pass through unchanged.
func (b *Builder[F]) warnOnCancellation(features []uint32, h *Histogram[F]) {
	const tolerance = -1e-6
	negative := 0
	for _, f := range features {
		for _, bin := range h.Rows[f] {
			if float64(bin.SumGradients) < tolerance || float64(bin.SumHessians) < tolerance {
				negative++
			}
		}
	}
	if negative > 0 {
		b.logger.Warn("histcore.compute_subtraction", "subtraction produced negative bin sums", map[string]any{
			"negative_bins": negative,
		})
	}
}
