package main

import "go.uber.org/zap"

// ── Stat reference table ────────────────────────────────────────────

type statInfo struct {
	Name    string
	Short   string
	Percent bool
	MaxRoll float64
	MinRoll float64
}

// statTable is indexed by StatKey. Roll bounds are per single substat roll.
var statTable = [NumStatKeys]statInfo{
	StatFlatATK:     {"Flat ATK", "Flat ATK", false, 8.0, 5.0},
	StatATKPct:      {"ATK%", "ATK%", true, 1.3, 0.8},
	StatExtraDMG:    {"Extra DMG%", "Extra DMG%", true, 3.4, 2.7},
	StatFlatDEF:     {"Flat DEF", "Flat DEF", false, 5.0, 3.0},
	StatDEFPct:      {"DEF%", "DEF%", true, 1.3, 0.8},
	StatFlatHP:      {"Flat HP", "Flat HP", false, 12.0, 10.0},
	StatHPPct:       {"HP%", "HP%", true, 1.3, 0.8},
	StatCRate:       {"CRate", "CRate", true, 2.0, 1.2},
	StatCDmg:        {"CDmg", "CDmg", true, 4.0, 2.4},
	StatEgo:         {"Ego", "Ego", false, 5.0, 2.0},
	StatDoT:         {"DoT%", "DoT%", true, 3.4, 2.7},
	StatPassionDMG:  {"Passion DMG%", "Passion", true, 3.5, 2.0},
	StatOrderDMG:    {"Order DMG%", "Order", true, 3.5, 2.0},
	StatJusticeDMG:  {"Justice DMG%", "Justice", true, 3.5, 2.0},
	StatVoidDMG:     {"Void DMG%", "Void", true, 3.5, 2.0},
	StatInstinctDMG: {"Instinct DMG%", "Instinct", true, 3.5, 2.0},
}

// fallbackStatInfo is the neutral entry used for stat identifiers the
// table does not know. Weight for such lines is always 1.0.
var fallbackStatInfo = statInfo{Name: "Unknown", Short: "Unknown", MaxRoll: 1.0, MinRoll: 0.5}

// statInfoFor resolves the reference entry for a substat line, warning
// once per call when the raw identifier is outside the known set.
func statInfoFor(key StatKey, rawName string, fragID int64) statInfo {
	if key >= 0 && key < NumStatKeys {
		return statTable[key]
	}
	logger.Warn("unknown stat identifier, using neutral fallback",
		zap.String("stat", rawName),
		zap.Int64("fragment", fragID))
	return fallbackStatInfo
}

// ── Slots ───────────────────────────────────────────────────────────

var slotNames = map[int]string{
	1: "I Shock",
	2: "II Suppression",
	3: "III Denial",
	4: "IV Ideal",
	5: "V Desire",
	6: "VI Imagination",
}

var slotOrder = [6]int{1, 2, 3, 4, 5, 6}

// slotMainStats lists the legal main stats per slot. Slots 1-3 are
// fixed; slots 4-6 vary and are the only ones main-stat filters touch.
var slotMainStats = map[int][]StatKey{
	1: {StatFlatATK},
	2: {StatFlatDEF},
	3: {StatFlatHP},
	4: {StatATKPct, StatDEFPct, StatHPPct, StatCRate, StatCDmg},
	5: {StatATKPct, StatDEFPct, StatHPPct, StatPassionDMG, StatOrderDMG, StatJusticeDMG, StatVoidDMG, StatInstinctDMG},
	6: {StatATKPct, StatDEFPct, StatHPPct, StatEgo},
}

// ── Upgrade budgets ─────────────────────────────────────────────────

const maxFragmentLevel = 5

// upgradesPerRarity is the total substat roll budget gained while
// leveling. Rarities below Rare never upgrade.
var upgradesPerRarity = map[int]int{
	RarityRare:      3,
	RarityLegendary: 4,
}
