package histcore

// subtractRow computes out[b] = parentRow[b] - siblingRow[b] for every
// bin, field by field. This is the only place a bin's sum fields can go
// negative (floating-point cancellation); negative results are valid and
// must be passed through, never clamped.
func subtractRow[F Float](parentRow, siblingRow, out []BinRecord[F]) {
	for b := range out {
		out[b].SumGradients = parentRow[b].SumGradients - siblingRow[b].SumGradients
		out[b].SumHessians = parentRow[b].SumHessians - siblingRow[b].SumHessians
		out[b].Count = parentRow[b].Count - siblingRow[b].Count
	}
}
