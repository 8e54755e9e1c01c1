package main

import "math"

// ── Fragment scoring ────────────────────────────────────────────────

func toFixed1(v float64) float64 {
	return math.Round(v*10) / 10
}

// rollQuality is a roll's value relative to the maximum it could have
// rolled, in [0, 1] for known stats.
func rollQuality(value, maxRoll float64, rollCount int) float64 {
	if maxRoll <= 0 || rollCount <= 0 {
		return 0
	}
	return value / (maxRoll * float64(rollCount))
}

// substatWeight resolves the request weight for a line. Unknown stats
// always weigh 1.0 so they neither vanish nor dominate.
func substatWeight(key StatKey, w WeightConfig) float64 {
	if key >= 0 && key < NumStatKeys {
		return w[key]
	}
	return 1.0
}

// ScoreFragment computes the weighted gear score and the potential
// bounds of a fragment, caches them on the fragment, and returns the
// score. Scoring is idempotent: rescoring with the same weights leaves
// the cached values unchanged.
func ScoreFragment(f *MemoryFragment, w WeightConfig) float64 {
	score := 0.0
	for i := range f.Substats {
		sub := &f.Substats[i]
		info := statInfoFor(sub.Key, sub.RawName, f.ID)
		quality := rollQuality(sub.Value, info.MaxRoll, sub.RollCount)
		score += quality * float64(sub.RollCount) * substatWeight(sub.Key, w)
	}
	f.GearScore = toFixed1(score * 10)

	f.PotentialLow, f.PotentialHigh = potentialBounds(f, w)
	return f.GearScore
}

// potentialBounds brackets where the gear score can land once every
// remaining upgrade has rolled. The current score is the guaranteed
// floor; the ceiling assumes each remaining upgrade lands a maximum
// roll on the highest-weighted existing line.
func potentialBounds(f *MemoryFragment, w WeightConfig) (low, high float64) {
	if f.Rarity < RarityRare || len(f.Substats) == 0 {
		return f.GearScore, f.GearScore
	}

	budget, ok := upgradesPerRarity[f.Rarity]
	if !ok {
		budget = upgradesPerRarity[RarityRare]
	}
	used := 0
	for i := range f.Substats {
		used += f.Substats[i].RollCount - 1
	}
	remaining := budget - used
	if remaining <= 0 {
		return f.GearScore, f.GearScore
	}

	bestWeight := 0.0
	for i := range f.Substats {
		if bw := substatWeight(f.Substats[i].Key, w); bw > bestWeight {
			bestWeight = bw
		}
	}

	low = f.GearScore
	high = toFixed1(f.GearScore + float64(remaining)*bestWeight*10)
	return low, high
}

// RescoreAll recomputes cached scores for an inventory, typically after
// the request weights change.
func RescoreAll(frags []*MemoryFragment, w WeightConfig) {
	for _, f := range frags {
		ScoreFragment(f, w)
	}
}
