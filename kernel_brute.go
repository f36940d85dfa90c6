package histcore

// The four brute-construction kernels below share one scatter-add shape:
// a bounds-check-eliding hint on the final index of the block (so the
// compiler can prove the block's sequential loads are in range up front;
// the scatter targets out[b] are still checked one by one), then
// walk samples four at a time, load four bin indices into separate
// scalars, issue the accumulations for each, then fall back to a scalar
// loop for the k mod 4 remainder. The unroll exposes four independent
// scatter targets per iteration so the compiler can pipeline the loads
// and stores instead of serializing on a single dependent chain; it does
// not change the result, only the shape of the object code.
//
// "Root" variants read bin index col[i] directly because at the root
// sample_indices is the identity permutation. "Non-root" variants go
// through sampleIndices[i]. Every variant reads ordered gradients and
// (when tracked) ordered Hessians at the same sequential index i, since
// the gather stage already placed them in scan order.

// bruteRootHess scatters gradients and Hessians for the root node.
func bruteRootHess[F Float](col []uint8, orderedGradients, orderedHessians []F, out []BinRecord[F], k int) {
	i := 0
	for ; i+3 < k; i += 4 {
		_ = col[i+3]
		_ = orderedGradients[i+3]
		_ = orderedHessians[i+3]
		b0, b1, b2, b3 := col[i], col[i+1], col[i+2], col[i+3]

		out[b0].SumGradients += orderedGradients[i]
		out[b0].SumHessians += orderedHessians[i]
		out[b0].Count++

		out[b1].SumGradients += orderedGradients[i+1]
		out[b1].SumHessians += orderedHessians[i+1]
		out[b1].Count++

		out[b2].SumGradients += orderedGradients[i+2]
		out[b2].SumHessians += orderedHessians[i+2]
		out[b2].Count++

		out[b3].SumGradients += orderedGradients[i+3]
		out[b3].SumHessians += orderedHessians[i+3]
		out[b3].Count++
	}
	for ; i < k; i++ {
		b := col[i]
		out[b].SumGradients += orderedGradients[i]
		out[b].SumHessians += orderedHessians[i]
		out[b].Count++
	}
}

// bruteRootConstHess scatters gradients only; SumHessians is left
// untouched because Hessians are constant for this node.
func bruteRootConstHess[F Float](col []uint8, orderedGradients []F, out []BinRecord[F], k int) {
	i := 0
	for ; i+3 < k; i += 4 {
		_ = col[i+3]
		_ = orderedGradients[i+3]
		b0, b1, b2, b3 := col[i], col[i+1], col[i+2], col[i+3]

		out[b0].SumGradients += orderedGradients[i]
		out[b0].Count++

		out[b1].SumGradients += orderedGradients[i+1]
		out[b1].Count++

		out[b2].SumGradients += orderedGradients[i+2]
		out[b2].Count++

		out[b3].SumGradients += orderedGradients[i+3]
		out[b3].Count++
	}
	for ; i < k; i++ {
		b := col[i]
		out[b].SumGradients += orderedGradients[i]
		out[b].Count++
	}
}

// bruteNonRootHess scatters gradients and Hessians for a non-root node,
// indexing X_binned through sampleIndices.
func bruteNonRootHess[F Float](col []uint8, sampleIndices []uint32, orderedGradients, orderedHessians []F, out []BinRecord[F], k int) {
	i := 0
	for ; i+3 < k; i += 4 {
		_ = sampleIndices[i+3]
		_ = orderedGradients[i+3]
		_ = orderedHessians[i+3]
		b0 := col[sampleIndices[i]]
		b1 := col[sampleIndices[i+1]]
		b2 := col[sampleIndices[i+2]]
		b3 := col[sampleIndices[i+3]]

		out[b0].SumGradients += orderedGradients[i]
		out[b0].SumHessians += orderedHessians[i]
		out[b0].Count++

		out[b1].SumGradients += orderedGradients[i+1]
		out[b1].SumHessians += orderedHessians[i+1]
		out[b1].Count++

		out[b2].SumGradients += orderedGradients[i+2]
		out[b2].SumHessians += orderedHessians[i+2]
		out[b2].Count++

		out[b3].SumGradients += orderedGradients[i+3]
		out[b3].SumHessians += orderedHessians[i+3]
		out[b3].Count++
	}
	for ; i < k; i++ {
		b := col[sampleIndices[i]]
		out[b].SumGradients += orderedGradients[i]
		out[b].SumHessians += orderedHessians[i]
		out[b].Count++
	}
}

// bruteNonRootConstHess scatters gradients only for a non-root node with
// constant Hessians.
func bruteNonRootConstHess[F Float](col []uint8, sampleIndices []uint32, orderedGradients []F, out []BinRecord[F], k int) {
	i := 0
	for ; i+3 < k; i += 4 {
		_ = sampleIndices[i+3]
		_ = orderedGradients[i+3]
		b0 := col[sampleIndices[i]]
		b1 := col[sampleIndices[i+1]]
		b2 := col[sampleIndices[i+2]]
		b3 := col[sampleIndices[i+3]]

		out[b0].SumGradients += orderedGradients[i]
		out[b0].Count++

		out[b1].SumGradients += orderedGradients[i+1]
		out[b1].Count++

		out[b2].SumGradients += orderedGradients[i+2]
		out[b2].Count++

		out[b3].SumGradients += orderedGradients[i+3]
		out[b3].Count++
	}
	for ; i < k; i++ {
		b := col[sampleIndices[i]]
		out[b].SumGradients += orderedGradients[i]
		out[b].Count++
	}
}
