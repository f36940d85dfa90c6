package histcore

import "sync"

// dispatchFeatures runs work(item) for every entry of items, split into
// at most nThreads contiguous chunks each run on its own goroutine. This
// is the feature-parallel dispatcher of the histogram builder: items is
// either the full [0, n_features) range or the caller's allowed-features
// list, and work writes only to the output row belonging to its item, so
// no synchronization between goroutines is required.
//
// The chunking follows the static-partition, ceiling-divided-chunk shape
// used for parallel histogram and pixel-row work: one goroutine per
// chunk, a single WaitGroup barrier, no work-stealing.
func dispatchFeatures(items []uint32, nThreads int, work func(item uint32)) {
	n := len(items)
	if n == 0 {
		return
	}
	if nThreads > n {
		nThreads = n
	}
	if nThreads <= 1 {
		for _, item := range items {
			work(item)
		}
		return
	}

	chunk := (n + nThreads - 1) / nThreads
	var wg sync.WaitGroup
	wg.Add(nThreads)
	for w := 0; w < nThreads; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			wg.Done()
			continue
		}
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				work(items[i])
			}
		}(start, end)
	}
	wg.Wait()
}
