//go:build !nodebugchecks

package histcore

// debugChecksEnabled gates the out-of-range sample-index scan that runs
// once before dispatch. It is on by default; build with -tags
// nodebugchecks to elide it on the hot path, per spec's "release builds
// MAY omit bounds checks" allowance.
const debugChecksEnabled = true
