//go:build nodebugchecks

package histcore

const debugChecksEnabled = false
