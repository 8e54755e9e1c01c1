package main

import (
	"math"
	"sort"
)

// ── Candidate filtering ─────────────────────────────────────────────

// requestedSets returns the union of the request's 2pc and 4pc set ids.
// When non-empty it gates every slot, so any piece outside the requested
// sets never enters the search.
func requestedSets(req *OptimizationRequest) map[int]bool {
	if len(req.FourPieceSets) == 0 && len(req.TwoPieceSets) == 0 {
		return nil
	}
	union := map[int]bool{}
	for _, s := range req.FourPieceSets {
		union[s] = true
	}
	for _, s := range req.TwoPieceSets {
		union[s] = true
	}
	return union
}

func mainStatFilter(req *OptimizationRequest, slot int) []StatKey {
	switch slot {
	case 4:
		return req.MainStat4
	case 5:
		return req.MainStat5
	case 6:
		return req.MainStat6
	}
	return nil
}

func mainStatMatches(f *MemoryFragment, allowed []StatKey) bool {
	if f.MainStat == nil {
		return false
	}
	for _, k := range allowed {
		if f.MainStat.Key == k {
			return true
		}
	}
	return false
}

func nameInList(name string, list []string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// filterSlot selects, scores and ranks the candidates for one slot,
// keeping the top ceil(TopFraction * n) by gear score. Ties rank by
// ascending fragment id so candidate order is stable across runs.
func filterSlot(inv []*MemoryFragment, slot int, req *OptimizationRequest, cfg Config) []*MemoryFragment {
	setUnion := requestedSets(req)
	mainFilter := mainStatFilter(req, slot)

	var cands []*MemoryFragment
	for _, f := range inv {
		if f.SlotNum != slot || f.Rarity < cfg.MinRarity {
			continue
		}
		if f.EquippedTo != "" {
			if nameInList(f.EquippedTo, req.ExcludedHeroes) {
				continue
			}
			if !req.IncludeEquipped && f.EquippedTo != req.CharName {
				continue
			}
		}
		if setUnion != nil && !setUnion[f.SetID] {
			continue
		}
		if len(mainFilter) > 0 && slot >= 4 && !mainStatMatches(f, mainFilter) {
			continue
		}
		cands = append(cands, f)
	}
	if len(cands) == 0 {
		return nil
	}

	for _, f := range cands {
		ScoreFragment(f, req.Weights)
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].GearScore != cands[j].GearScore {
			return cands[i].GearScore > cands[j].GearScore
		}
		return cands[i].ID < cands[j].ID
	})

	keep := int(math.Ceil(req.TopFraction * float64(len(cands))))
	if keep < 1 {
		keep = 1
	}
	if keep > len(cands) {
		keep = len(cands)
	}
	return cands[:keep]
}

// FilterCandidates builds the per-slot candidate pools for a request.
// A slot with no survivors gets an empty (nil) pool; the caller decides
// whether that means "no build possible".
func FilterCandidates(inv []*MemoryFragment, req *OptimizationRequest, cfg Config) map[int][]*MemoryFragment {
	pools := make(map[int][]*MemoryFragment, 6)
	for _, slot := range slotOrder {
		pools[slot] = filterSlot(inv, slot, req, cfg)
	}
	return pools
}
