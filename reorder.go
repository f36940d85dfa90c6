package histcore

// gatherOrdered fills orderedGradients[0:k] (and orderedHessians[0:k],
// when hessians are not constant) with gradients[sampleIndices[i]] (resp.
// Hessians), for i in [0, k). This is the gather phase of spec.md's
// gradient reordering stage: it has no cross-index dependency, so it is
// parallelized with the same chunked-goroutine shape as the feature
// dispatcher, over the sample-index range instead of the feature range.
func gatherOrdered[F Float](sampleIndices []uint32, gradients, orderedGradients []F,
	hessians, orderedHessians []F, hessiansConstant bool, nThreads int, scratchPositions []uint32) {
	k := len(sampleIndices)
	if k == 0 {
		return
	}

	// Reuse dispatchFeatures's chunking by gathering over a synthetic
	// index range; the "item" here is a position into sampleIndices,
	// not a feature index. scratchPositions is builder-owned so this
	// hot path performs no allocation.
	positions := scratchPositions[:k]
	for i := range positions {
		positions[i] = uint32(i)
	}

	if hessiansConstant {
		dispatchFeatures(positions, nThreads, func(i uint32) {
			orderedGradients[i] = gradients[sampleIndices[i]]
		})
		return
	}

	dispatchFeatures(positions, nThreads, func(i uint32) {
		src := sampleIndices[i]
		orderedGradients[i] = gradients[src]
		orderedHessians[i] = hessians[src]
	})
}

// isIdentityPermutation reports whether indices is exactly [0, 1, ...,
// n-1] or is absent altogether. Per spec's stricter resolution of the
// "gather always, even at root" open question, any other permutation —
// even one that happens to touch every sample — is treated as non-root
// and triggers a gather.
func isIdentityPermutation(indices []uint32, n int) bool {
	if indices == nil {
		return true
	}
	if len(indices) != n {
		return false
	}
	for i, v := range indices {
		if int(v) != i {
			return false
		}
	}
	return true
}
