package main

import (
	"fmt"
	"sort"
)

// ── Set bonus validation ────────────────────────────────────────────

// countSets tallies set membership across the six slots of a build.
// Nil slots (a partially equipped current build) are skipped.
func countSets(build *[6]*MemoryFragment) map[int]int {
	counts := make(map[int]int, 6)
	for _, f := range build {
		if f != nil {
			counts[f.SetID]++
		}
	}
	return counts
}

// activeBonuses derives the set activations from piece counts. A count
// of 4+ activates the 4-piece tier and absorbs those pieces, so the same
// set never also credits a 2-piece tier. Distinct sets stack freely.
func activeBonuses(counts map[int]int) []SetActivation {
	var out []SetActivation
	for id, n := range counts {
		switch {
		case n >= 4:
			out = append(out, SetActivation{SetID: id, Pieces: 4})
		case n >= 2:
			out = append(out, SetActivation{SetID: id, Pieces: 2})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetID < out[j].SetID })
	return out
}

// satisfiesRequest checks a build's set counts against the request: at
// least one of FourPieceSets at 4+ pieces (when any are requested), and
// every TwoPieceSets entry at 2+ pieces.
func satisfiesRequest(counts map[int]int, req *OptimizationRequest) bool {
	if len(req.FourPieceSets) > 0 {
		ok := false
		for _, s := range req.FourPieceSets {
			if counts[s] >= 4 {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, s := range req.TwoPieceSets {
		if counts[s] < 2 {
			return false
		}
	}
	return true
}

// ── Reachability ────────────────────────────────────────────────────

// UnsatisfiableSetError reports a requested set bonus that no candidate
// combination can activate, before any enumeration happens.
type UnsatisfiableSetError struct {
	SetID     int
	Pieces    int
	Reachable int // slots holding at least one piece of the set
}

func (e *UnsatisfiableSetError) Error() string {
	return fmt.Sprintf("set constraint unsatisfiable: %s needs %d pieces but only %d slots have candidates",
		setName(e.SetID), e.Pieces, e.Reachable)
}

// slotsSupplying counts how many slots have at least one candidate of
// the given set. Each slot contributes one piece at most, so this bounds
// the reachable piece count.
func slotsSupplying(pools map[int][]*MemoryFragment, setID int) int {
	n := 0
	for _, slot := range slotOrder {
		for _, f := range pools[slot] {
			if f.SetID == setID {
				n++
				break
			}
		}
	}
	return n
}

// checkReachability rejects requests whose set constraints cannot be met
// by any combination of the filtered pools.
func checkReachability(pools map[int][]*MemoryFragment, req *OptimizationRequest) error {
	if len(req.FourPieceSets) > 0 {
		best, bestID := -1, 0
		for _, s := range req.FourPieceSets {
			if n := slotsSupplying(pools, s); n > best {
				best, bestID = n, s
			}
		}
		if best < 4 {
			return &UnsatisfiableSetError{SetID: bestID, Pieces: 4, Reachable: best}
		}
	}
	for _, s := range req.TwoPieceSets {
		if n := slotsSupplying(pools, s); n < 2 {
			return &UnsatisfiableSetError{SetID: s, Pieces: 2, Reachable: n}
		}
	}
	return nil
}
