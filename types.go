package main

// ── Stat keys ───────────────────────────────────────────────────────

// StatKey identifies one of the closed set of stat kinds a Memory
// Fragment or combatant can carry. Unknown raw identifiers map to
// StatUnknown and are scored with neutral fallback values.
type StatKey int

const (
	StatFlatATK StatKey = iota
	StatATKPct
	StatExtraDMG
	StatFlatDEF
	StatDEFPct
	StatFlatHP
	StatHPPct
	StatCRate
	StatCDmg
	StatEgo
	StatDoT
	StatPassionDMG
	StatOrderDMG
	StatJusticeDMG
	StatVoidDMG
	StatInstinctDMG
	NumStatKeys

	StatUnknown StatKey = -1
)

func parseStatKey(raw string) StatKey {
	switch raw {
	case "S_ATK_INC_ADD_OUT":
		return StatFlatATK
	case "S_ATK_INC_RATE_OUT":
		return StatATKPct
	case "S_ADDI_ATK_DMG_RATE_INC_ADD":
		return StatExtraDMG
	case "S_DEF_INC_ADD_OUT":
		return StatFlatDEF
	case "S_DEF_INC_RATE_OUT":
		return StatDEFPct
	case "S_HP_INC_ADD_OUT":
		return StatFlatHP
	case "S_HP_INC_RATE_OUT":
		return StatHPPct
	case "S_CRI_INC_ADD":
		return StatCRate
	case "S_CRI_DMG_RATE_INC_ADD":
		return StatCDmg
	case "S_CHARGING_POWER_INC_ADD":
		return StatEgo
	case "S_DOT_ATK_DMG_RATE_INC_ADD":
		return StatDoT
	case "S_RED_DMG_RATE_INC_ADD":
		return StatPassionDMG
	case "S_GREEN_DMG_RATE_INC_ADD":
		return StatOrderDMG
	case "S_BLUE_DMG_RATE_INC_ADD":
		return StatJusticeDMG
	case "S_PURPLE_DMG_RATE_INC_ADD":
		return StatVoidDMG
	case "S_ORANGE_DMG_RATE_INC_ADD":
		return StatInstinctDMG
	}
	return StatUnknown
}

// parseStatName maps a display name ("ATK%", "CRate", ...) back to its key.
// Used by CLI flags and request JSON.
func parseStatName(s string) StatKey {
	for k := StatKey(0); k < NumStatKeys; k++ {
		if statTable[k].Name == s || statTable[k].Short == s {
			return k
		}
	}
	return StatUnknown
}

func (k StatKey) String() string {
	if k >= 0 && k < NumStatKeys {
		return statTable[k].Name
	}
	return "Unknown"
}

// ── Rarity ──────────────────────────────────────────────────────────

const (
	RarityCommon = 1 + iota
	RarityUncommon
	RarityRare
	RarityLegendary
)

var rarityNames = map[int]string{
	RarityCommon:    "Common",
	RarityUncommon:  "Uncommon",
	RarityRare:      "Rare",
	RarityLegendary: "Legendary",
}

// ── Substat rolls ───────────────────────────────────────────────────

// RollKind distinguishes how a substat line acquired a roll.
type RollKind int

const (
	RollMain RollKind = iota // main stat entry (slot 0, type 0)
	RollBase                 // initial line present at drop
	RollAdded                // line revealed during leveling
	RollUpgrade              // reroll into an existing line
)

func parseRollKind(t int64) RollKind {
	switch t {
	case 1:
		return RollBase
	case 2:
		return RollAdded
	case 3:
		return RollUpgrade
	}
	return RollMain
}

// SubstatRoll is a single roll contributing to a substat line.
type SubstatRoll struct {
	Value float64
	Kind  RollKind
}

// Substat is one aggregated substat line on a fragment. Value is the sum
// of all rolls, RollCount the number of rolls (initial + upgrades).
type Substat struct {
	Key       StatKey
	RawName   string
	Value     float64
	RollCount int
	Rolls     []SubstatRoll
}

// MainStat is the fixed primary stat of a fragment.
type MainStat struct {
	Key     StatKey
	RawName string
	Value   float64
}

// ── Memory Fragment ─────────────────────────────────────────────────

// MemoryFragment is a single gear piece. Slot, rarity and set id come
// from the resource id digits; stats come from the capture stat list.
type MemoryFragment struct {
	ID       int64
	SlotNum  int
	Rarity   int
	SetID    int
	Level    int
	Locked   bool
	MainStat *MainStat
	Substats []Substat

	// Equipped ownership. EquippedTo is empty for unequipped pieces.
	EquippedTo     string
	EquippedCharID int64

	// Cached scores, maintained by ScoreFragment / RescoreAll.
	GearScore     float64
	PotentialLow  float64
	PotentialHigh float64
}

// ── Weights ─────────────────────────────────────────────────────────

// WeightConfig maps every stat key to its relative importance for the
// current request. Missing interest is expressed as 0, not absence.
type WeightConfig [NumStatKeys]float64

// DefaultWeights treats every stat equally.
func DefaultWeights() WeightConfig {
	var w WeightConfig
	for i := range w {
		w[i] = 1.0
	}
	return w
}

// PresetDPS favors offense: ATK, crit, and damage amplifiers.
func PresetDPS() WeightConfig {
	w := DefaultWeights()
	w[StatATKPct] = 2.0
	w[StatFlatATK] = 1.5
	w[StatCRate] = 2.0
	w[StatCDmg] = 2.0
	w[StatExtraDMG] = 1.5
	w[StatDoT] = 1.0
	w[StatDEFPct] = 0.5
	w[StatFlatDEF] = 0.3
	w[StatHPPct] = 0.5
	w[StatFlatHP] = 0.3
	w[StatEgo] = 1.0
	return w
}

// PresetTank favors survivability: DEF and HP.
func PresetTank() WeightConfig {
	w := DefaultWeights()
	w[StatDEFPct] = 2.0
	w[StatFlatDEF] = 1.5
	w[StatHPPct] = 2.0
	w[StatFlatHP] = 1.5
	w[StatATKPct] = 0.5
	w[StatFlatATK] = 0.3
	w[StatCRate] = 0.5
	w[StatCDmg] = 0.5
	w[StatExtraDMG] = 0.3
	w[StatDoT] = 0.3
	w[StatEgo] = 1.0
	return w
}

func parsePreset(s string) (WeightConfig, bool) {
	switch s {
	case "dps":
		return PresetDPS(), true
	case "tank":
		return PresetTank(), true
	case "reset", "":
		return DefaultWeights(), true
	}
	return WeightConfig{}, false
}

// ── Characters and partners ─────────────────────────────────────────

// PartnerCard is a support card assigned to a combatant. Level and
// limit break drive its flat stats and unconditional passive bonuses.
type PartnerCard struct {
	ResID      int64
	Level      int
	MaxLevel   int
	LimitBreak int
}

// Character is one owned combatant as parsed from a capture.
type Character struct {
	ResID           int64
	Name            string
	Exp             int64
	Level           int
	Ascend          int
	MaxLevel        int
	LimitBreak      int
	FriendshipIndex int
	Potential50     int // node 50 level, 0 = locked
	Potential60     int // node 60 level, 0 = locked
	Partner         *PartnerCard
}

// ── Requests and results ────────────────────────────────────────────

// OptimizationRequest describes one search over the fragment inventory.
type OptimizationRequest struct {
	CharName string

	// FourPieceSets is an any-of list: a build must carry 4 pieces of at
	// least one of them. TwoPieceSets is an all-of list.
	FourPieceSets []int
	TwoPieceSets  []int

	// Main stat filters for the variable slots. Empty means any.
	MainStat4 []StatKey
	MainStat5 []StatKey
	MainStat6 []StatKey

	// TopFraction in (0, 1] keeps ceil(f*n) candidates per slot after
	// score ranking.
	TopFraction float64

	IncludeEquipped bool
	ExcludedHeroes  []string

	Weights WeightConfig
}

// SetActivation records an active set bonus tier on a build.
type SetActivation struct {
	SetID  int
	Pieces int // 2 or 4
}

// SlotDiff annotates one slot of a ranked build against the current build.
type SlotDiff struct {
	Slot       int
	FragmentID int64
	Kept       bool
}

// BuildCandidate is one fully evaluated 6-slot build.
type BuildCandidate struct {
	Fragments [6]*MemoryFragment
	Stats     FinalStats
	Score     float64
	Bonuses   []SetActivation
	Swaps     int
	Diff      [6]SlotDiff
	Delta     *FinalStats // vs the current build, nil when none exists
}

// OptimizationResult is the outcome of a search. EmptySlots non-empty
// means no build is possible; Partial means the search was cancelled
// before the space was exhausted and Builds holds the best seen so far.
type OptimizationResult struct {
	Builds     []BuildCandidate
	Partial    bool
	Evaluated  int64
	TotalSpace int64
	EmptySlots []int
	Current    *FinalStats
}

// NoBuildPossible reports whether filtering produced an empty slot.
func (r *OptimizationResult) NoBuildPossible() bool {
	return len(r.EmptySlots) > 0
}
