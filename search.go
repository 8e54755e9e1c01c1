package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer holds a parsed inventory and runs build searches over it.
// It is safe for concurrent Optimize calls: all mutable state lives on
// the request path.
type Optimizer struct {
	fragments []*MemoryFragment
	chars     map[string]*Character
	cfg       Config
}

// NewOptimizer creates an optimizer over an inventory and the owned
// characters keyed by name.
func NewOptimizer(fragments []*MemoryFragment, chars map[string]*Character, cfg Config) *Optimizer {
	return &Optimizer{fragments: fragments, chars: chars, cfg: cfg}
}

// TooLargeError reports a search space above the configured ceiling,
// detected before any enumeration starts.
type TooLargeError struct {
	SlotCounts [6]int
	Ceiling    int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("search space exceeds ceiling %d (per-slot candidates %v); tighten filters or lower the top fraction",
		e.Ceiling, e.SlotCounts)
}

func (o *Optimizer) validate(req *OptimizationRequest) error {
	if _, ok := o.chars[req.CharName]; !ok {
		return fmt.Errorf("unknown character %q", req.CharName)
	}
	if req.TopFraction <= 0 || req.TopFraction > 1 {
		return fmt.Errorf("top fraction %v out of range (0, 1]", req.TopFraction)
	}
	for k := 0; k < int(NumStatKeys); k++ {
		if req.Weights[k] < 0 {
			return fmt.Errorf("negative weight %v for %s", req.Weights[k], StatKey(k))
		}
	}
	return nil
}

// currentBuild collects the pieces equipped on the character, by slot.
func (o *Optimizer) currentBuild(charName string) [6]*MemoryFragment {
	var cur [6]*MemoryFragment
	for _, f := range o.fragments {
		if f.EquippedTo == charName && f.SlotNum >= 1 && f.SlotNum <= 6 {
			cur[f.SlotNum-1] = f
		}
	}
	return cur
}

// searchSpace multiplies the per-slot pool sizes, stopping as soon as
// the running product exceeds the ceiling so it cannot overflow.
func searchSpace(pools map[int][]*MemoryFragment, ceiling int64) (int64, *TooLargeError) {
	var counts [6]int
	space := int64(1)
	over := false
	for i, slot := range slotOrder {
		n := len(pools[slot])
		counts[i] = n
		if !over {
			space *= int64(n)
			if space > ceiling {
				over = true
			}
		}
	}
	if over {
		return 0, &TooLargeError{SlotCounts: counts, Ceiling: ceiling}
	}
	return space, nil
}

// Optimize runs a full search for the request. Empty candidate pools
// and cooperative cancellation surface as result states; malformed
// requests, unsatisfiable set constraints and oversized search spaces
// surface as errors.
func (o *Optimizer) Optimize(ctx context.Context, req *OptimizationRequest) (*OptimizationResult, error) {
	if err := o.validate(req); err != nil {
		return nil, err
	}

	pools := FilterCandidates(o.fragments, req, o.cfg)

	var empty []int
	for _, slot := range slotOrder {
		if len(pools[slot]) == 0 {
			empty = append(empty, slot)
		}
	}
	if len(empty) > 0 {
		return &OptimizationResult{EmptySlots: empty}, nil
	}

	if err := checkReachability(pools, req); err != nil {
		return nil, err
	}

	space, tooLarge := searchSpace(pools, o.cfg.MaxCombinations)
	if tooLarge != nil {
		return nil, tooLarge
	}

	char := o.chars[req.CharName]
	current := o.currentBuild(req.CharName)
	var currentStats *FinalStats
	for _, f := range current {
		if f != nil {
			counts := countSets(&current)
			s := AggregateStats(char, &current, activeBonuses(counts))
			currentStats = &s
			break
		}
	}

	slot1 := pools[1]
	workers := o.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(slot1) {
		workers = len(slot1)
	}

	idxCh := make(chan int, len(slot1))
	for i := range slot1 {
		idxCh <- i
	}
	close(idxCh)

	resultCh := make(chan []BuildCandidate, workers)
	var evaluated atomic.Int64
	var cancelled atomic.Bool
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := newTopN(o.cfg.TopN)
			var n int64
			defer func() {
				evaluated.Add(n)
				resultCh <- local.drain()
			}()
			for i1 := range idxCh {
				if o.searchFrom(ctx, slot1[i1], pools, req, char, &current, local, &n) {
					cancelled.Store(true)
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	merged := newTopN(o.cfg.TopN)
	for batch := range resultCh {
		for i := range batch {
			merged.consider(batch[i])
		}
	}

	builds := merged.drain()
	for i := range builds {
		annotate(&builds[i], &current, currentStats)
	}

	logger.Debug("search finished",
		zap.String("character", req.CharName),
		zap.Int64("evaluated", evaluated.Load()),
		zap.Int64("space", space),
		zap.Int("builds", len(builds)),
		zap.Bool("partial", cancelled.Load()))

	return &OptimizationResult{
		Builds:     builds,
		Partial:    cancelled.Load(),
		Evaluated:  evaluated.Load(),
		TotalSpace: space,
		Current:    currentStats,
	}, nil
}

// searchFrom enumerates every combination anchored on one slot-1 piece,
// feeding survivors into the worker's local top-N. Returns true when
// the context was cancelled mid-enumeration.
func (o *Optimizer) searchFrom(
	ctx context.Context,
	f1 *MemoryFragment,
	pools map[int][]*MemoryFragment,
	req *OptimizationRequest,
	char *Character,
	current *[6]*MemoryFragment,
	local *topN,
	n *int64,
) bool {
	checkEvery := int64(o.cfg.CancelEvery)
	if checkEvery <= 0 {
		checkEvery = 5000
	}
	for _, f2 := range pools[2] {
		for _, f3 := range pools[3] {
			for _, f4 := range pools[4] {
				for _, f5 := range pools[5] {
					for _, f6 := range pools[6] {
						*n++
						if *n%checkEvery == 0 && ctx.Err() != nil {
							return true
						}
						build := [6]*MemoryFragment{f1, f2, f3, f4, f5, f6}
						counts := countSets(&build)
						if !satisfiesRequest(counts, req) {
							continue
						}
						bonuses := activeBonuses(counts)
						stats := AggregateStats(char, &build, bonuses)
						local.consider(BuildCandidate{
							Fragments: build,
							Stats:     stats,
							Score:     buildScore(&stats, req.Weights),
							Bonuses:   bonuses,
							Swaps:     countSwaps(&build, current),
						})
					}
				}
			}
		}
	}
	return false
}
