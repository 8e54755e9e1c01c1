package main

import (
	"container/heap"
	"sort"
)

// ── Build ranking ───────────────────────────────────────────────────

// buildScore is the weighted sum over the final stat sheet. It is the
// single ordering criterion before tie-breaks.
func buildScore(stats *FinalStats, w WeightConfig) float64 {
	keyed := stats.Keyed()
	total := 0.0
	for k := 0; k < int(NumStatKeys); k++ {
		total += keyed[k] * w[k]
	}
	return total
}

// countSwaps compares a build to the currently equipped pieces. A slot
// with no current piece counts as a swap.
func countSwaps(build *[6]*MemoryFragment, current *[6]*MemoryFragment) int {
	swaps := 0
	for i := 0; i < 6; i++ {
		cur := current[i]
		if cur == nil || build[i].ID != cur.ID {
			swaps++
		}
	}
	return swaps
}

// betterBuild is the deterministic total order on candidates: higher
// score first, then fewer swaps, then ascending fragment id slot 1-6.
func betterBuild(a, b *BuildCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Swaps != b.Swaps {
		return a.Swaps < b.Swaps
	}
	for i := 0; i < 6; i++ {
		if a.Fragments[i].ID != b.Fragments[i].ID {
			return a.Fragments[i].ID < b.Fragments[i].ID
		}
	}
	return false
}

// ── Bounded top-N heap ──────────────────────────────────────────────

// buildHeap is a min-heap on betterBuild order: the worst retained
// candidate sits at the root so it can be evicted in O(log n).
type buildHeap []BuildCandidate

func (h buildHeap) Len() int            { return len(h) }
func (h buildHeap) Less(i, j int) bool  { return betterBuild(&h[j], &h[i]) }
func (h buildHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *buildHeap) Push(x interface{}) { *h = append(*h, x.(BuildCandidate)) }
func (h *buildHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topN keeps at most limit candidates, evicting the worst.
type topN struct {
	h     buildHeap
	limit int
}

func newTopN(limit int) *topN {
	return &topN{h: make(buildHeap, 0, limit), limit: limit}
}

func (t *topN) consider(c BuildCandidate) {
	if len(t.h) < t.limit {
		heap.Push(&t.h, c)
		return
	}
	if betterBuild(&c, &t.h[0]) {
		t.h[0] = c
		heap.Fix(&t.h, 0)
	}
}

func (t *topN) drain() []BuildCandidate {
	out := make([]BuildCandidate, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool { return betterBuild(&out[i], &out[j]) })
	return out
}

// ── Result annotation ───────────────────────────────────────────────

// annotate fills the per-slot keep/swap diff and the stat delta against
// the current build.
func annotate(c *BuildCandidate, current *[6]*MemoryFragment, currentStats *FinalStats) {
	for i := 0; i < 6; i++ {
		cur := current[i]
		c.Diff[i] = SlotDiff{
			Slot:       i + 1,
			FragmentID: c.Fragments[i].ID,
			Kept:       cur != nil && cur.ID == c.Fragments[i].ID,
		}
	}
	if currentStats != nil {
		delta := c.Stats.Sub(currentStats)
		c.Delta = &delta
	}
}
