package histcore

import (
	"sort"
	"sync"
	"testing"
)

func TestDispatchFeaturesVisitsEveryItemExactlyOnce(t *testing.T) {
	items := make([]uint32, 37)
	for i := range items {
		items[i] = uint32(i)
	}

	for _, nThreads := range []int{1, 2, 3, 4, 16, 64} {
		var mu sync.Mutex
		var seen []uint32

		dispatchFeatures(items, nThreads, func(item uint32) {
			mu.Lock()
			seen = append(seen, item)
			mu.Unlock()
		})

		sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
		if len(seen) != len(items) {
			t.Fatalf("nThreads=%d: visited %d items, want %d", nThreads, len(seen), len(items))
		}
		for i, v := range seen {
			if v != uint32(i) {
				t.Fatalf("nThreads=%d: visited set mismatch at %d: got %d", nThreads, i, v)
			}
		}
	}
}

func TestDispatchFeaturesEmpty(t *testing.T) {
	called := false
	dispatchFeatures(nil, 4, func(uint32) { called = true })
	if called {
		t.Errorf("work should not be called for an empty item list")
	}
}

func TestGatherOrderedPlacesValuesInScanOrder(t *testing.T) {
	gradients := []float64{10, 11, 12, 13, 14}
	hessians := []float64{1, 1, 1, 1, 1}
	sampleIndices := []uint32{4, 1, 3}

	orderedGradients := make([]float64, len(sampleIndices))
	orderedHessians := make([]float64, len(sampleIndices))
	scratch := make([]uint32, len(sampleIndices))

	gatherOrdered(sampleIndices, gradients, orderedGradients, hessians, orderedHessians, false, 2, scratch)

	want := []float64{14, 11, 13}
	for i, w := range want {
		if orderedGradients[i] != w {
			t.Errorf("orderedGradients[%d] = %v, want %v", i, orderedGradients[i], w)
		}
	}
}

func TestIsIdentityPermutation(t *testing.T) {
	if !isIdentityPermutation(nil, 5) {
		t.Errorf("nil should be treated as identity")
	}
	if !isIdentityPermutation([]uint32{0, 1, 2}, 3) {
		t.Errorf("[0,1,2] should be identity for n=3")
	}
	if isIdentityPermutation([]uint32{1, 0, 2}, 3) {
		t.Errorf("a non-identity permutation must not be treated as root")
	}
	if isIdentityPermutation([]uint32{0, 1}, 3) {
		t.Errorf("a strict subset must not be treated as root")
	}
}
