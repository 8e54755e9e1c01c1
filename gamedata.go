package main

import "strconv"

// ── Sets ────────────────────────────────────────────────────────────

// SetInfo describes a Memory Fragment set. Pieces is the tier at which
// the bonus activates. Stat sets add Value to the matching percent pool;
// conditional sets only carry descriptive text.
type SetInfo struct {
	Name        string
	Pieces      int
	Bonus       string
	Conditional bool
	Stat        StatKey
	Value       float64
}

var sets = map[int]SetInfo{
	6:  {Name: "Conqueror's Aspect", Pieces: 4, Bonus: "+35% Crit DMG of 1-cost cards", Conditional: true},
	7:  {Name: "Tetra's Authority", Pieces: 2, Bonus: "+12% Defense", Stat: StatDEFPct, Value: 12},
	8:  {Name: "Healer's Journey", Pieces: 2, Bonus: "+12% Max HP", Stat: StatHPPct, Value: 12},
	9:  {Name: "Black Wing", Pieces: 2, Bonus: "+12% Attack", Stat: StatATKPct, Value: 12},
	10: {Name: "Seth's Scarab", Pieces: 2, Bonus: "+20% Basic Card DMG", Conditional: true},
	11: {Name: "Executioner's Tool", Pieces: 2, Bonus: "+25% Crit Damage", Stat: StatCDmg, Value: 25},
	12: {Name: "Instinctual Growth", Pieces: 4, Bonus: "+20% Instinct DMG (4+ cards)", Conditional: true},
	15: {Name: "Bullet of Order", Pieces: 4, Bonus: "+10% Order DMG after Attack (2 max)", Conditional: true},
	16: {Name: "Offering of the Void", Pieces: 4, Bonus: "+20% Void DMG after Exhaust (1 turn)", Conditional: true},
	18: {Name: "Spark of Passion", Pieces: 4, Bonus: "+20% Passion DMG after Upgrade (5 times)", Conditional: true},
	19: {Name: "Cursed Corpse", Pieces: 2, Bonus: "+10% DMG to Agony Inflicted", Conditional: true},
	20: {Name: "Line of Justice", Pieces: 4, Bonus: "+20% Crit Rate for 2+ cost", Conditional: true},
	22: {Name: "Orb of Inhibition", Pieces: 4, Bonus: "+10% Void DMG for 1 turn after hitting 2 times with Attack (2 max)", Conditional: true},
	23: {Name: "Judgment's Flames", Pieces: 4, Bonus: "+50% Instinct DMG to Ravaged targets", Conditional: true},
}

func setName(id int) string {
	if s, ok := sets[id]; ok {
		return s.Name
	}
	return "Unknown(" + strconv.Itoa(id) + ")"
}

// ── Characters ──────────────────────────────────────────────────────

// CharacterData holds static per-combatant reference values. Base stats
// are at level 60; Node50/Node60 are the potential node stat types.
type CharacterData struct {
	Name      string
	Grade     int
	Attribute string
	Class     string
	BaseATK   float64
	BaseDEF   float64
	BaseHP    float64
	BaseCRate float64
	BaseCDmg  float64
	Node50    StatKey
	Node60    StatKey
}

var defaultCharacter = CharacterData{
	Name:     "Unknown",
	BaseCDmg: 125.0,
	Node50:   StatUnknown,
	Node60:   StatUnknown,
}

var characters = map[int64]CharacterData{
	1003:  {"Nia", 4, "Instinct", "Controller", 393, 186, 383, 3.0, 125.0, StatHPPct, StatATKPct},
	1004:  {"Luke", 5, "Order", "Hunter", 491, 155, 329, 3.0, 125.0, StatCRate, StatCDmg},
	1005:  {"Selena", 4, "Passion", "Ranger", 483, 138, 363, 3.0, 125.0, StatCDmg, StatCRate},
	1008:  {"Khalipe", 5, "Instinct", "Vanguard", 408, 183, 493, 3.0, 125.0, StatCRate, StatHPPct},
	1009:  {"Tressa", 4, "Void", "Psionic", 415, 158, 403, 3.0, 125.0, StatCRate, StatCDmg},
	1010:  {"Magna", 5, "Justice", "Vanguard", 408, 183, 493, 3.0, 125.0, StatCRate, StatHPPct},
	1017:  {"Amir", 4, "Order", "Vanguard", 383, 172, 461, 3.0, 125.0, StatCRate, StatHPPct},
	1018:  {"Rin", 5, "Void", "Striker", 468, 155, 446, 3.0, 125.0, StatCRate, StatCDmg},
	1021:  {"Lucas", 4, "Passion", "Hunter", 461, 147, 375, 3.0, 125.0, StatCRate, StatCDmg},
	1024:  {"Orlea", 5, "Justice", "Controller", 420, 197, 406, 3.0, 125.0, StatHPPct, StatATKPct},
	1027:  {"Mei Lin", 5, "Passion", "Striker", 468, 155, 446, 3.0, 125.0, StatCRate, StatCDmg},
	1028:  {"Maribell", 4, "Passion", "Vanguard", 383, 172, 461, 3.0, 125.0, StatCRate, StatHPPct},
	1033:  {"Veronica", 5, "Passion", "Ranger", 515, 141, 317, 3.0, 125.0, StatCDmg, StatCRate},
	1039:  {"Mika", 4, "Justice", "Controller", 402, 176, 388, 3.0, 125.0, StatHPPct, StatATKPct},
	1040:  {"Beryl", 4, "Justice", "Ranger", 483, 138, 363, 3.0, 125.0, StatCDmg, StatCRate},
	1041:  {"Reona", 5, "Void", "Hunter", 492, 155, 399, 3.0, 125.0, StatCRate, StatCDmg},
	1043:  {"Hugo", 5, "Order", "Ranger", 505, 146, 320, 3.0, 125.0, StatCDmg, StatCRate},
	1049:  {"Cassius", 4, "Instinct", "Controller", 393, 186, 383, 3.0, 125.0, StatHPPct, StatATKPct},
	1050:  {"Owen", 4, "Passion", "Striker", 439, 147, 418, 3.0, 125.0, StatCRate, StatCDmg},
	1052:  {"Narja", 5, "Instinct", "Controller", 419, 197, 336, 3.0, 125.0, StatDEFPct, StatCRate},
	1056:  {"Rei", 4, "Void", "Controller", 393, 186, 383, 3.0, 125.0, StatHPPct, StatATKPct},
	1057:  {"Yuki", 5, "Order", "Striker", 467, 155, 376, 3.0, 125.0, StatCRate, StatCDmg},
	1060:  {"Chizuru", 5, "Void", "Psionic", 443, 169, 356, 3.0, 125.0, StatCRate, StatCDmg},
	1062:  {"Haru", 5, "Justice", "Striker", 467, 155, 376, 3.0, 125.0, StatCRate, StatCDmg},
	1064:  {"Kayron", 5, "Void", "Psionic", 444, 169, 426, 3.0, 125.0, StatCRate, StatCDmg},
	30047: {"Nine", 5, "Order", "Vanguard", 408, 178, 481, 3.0, 125.0, StatCRate, StatCDmg},
	30075: {"Sereniel", 5, "Instinct", "Hunter", 491, 155, 329, 3.0, 125.0, StatCRate, StatCDmg},
}

func characterData(resID int64) CharacterData {
	if c, ok := characters[resID]; ok {
		return c
	}
	return defaultCharacter
}

func characterName(resID int64) string {
	if c, ok := characters[resID]; ok {
		return c.Name
	}
	return ""
}

// potentialStatValues holds the bonus per node level 1-5 for each stat
// type a potential node can grant.
var potentialStatValues = map[StatKey][5]float64{
	StatHPPct:  {0.6, 1.2, 1.8, 2.4, 3.0},
	StatATKPct: {0.6, 1.2, 1.8, 2.4, 3.0},
	StatDEFPct: {1.6, 3.2, 4.8, 6.4, 8.0},
	StatCRate:  {2.0, 4.0, 6.0, 8.0, 10.0},
	StatCDmg:   {2.4, 4.8, 7.2, 9.6, 12.0},
}

// potentialBonus resolves the stat type and value of a potential node
// (50 or 60) at the given level for a character.
func potentialBonus(resID int64, node, level int) (StatKey, float64) {
	if level <= 0 || level > 5 {
		return StatUnknown, 0
	}
	c, ok := characters[resID]
	if !ok {
		return StatUnknown, 0
	}
	key := c.Node50
	if node == 60 {
		key = c.Node60
	}
	vals, ok := potentialStatValues[key]
	if !ok {
		return StatUnknown, 0
	}
	return key, vals[level-1]
}

// decodePotentialNodes extracts node levels from 8-digit node ids of the
// form XXXXYYZZ (character res id, node number, level). Ids for other
// characters are skipped.
func decodePotentialNodes(nodeIDs []int64, resID int64) map[int]int {
	out := map[int]int{}
	for _, id := range nodeIDs {
		s := strconv.FormatInt(id, 10)
		if len(s) != 8 {
			continue
		}
		owner, err1 := strconv.ParseInt(s[:4], 10, 64)
		node, err2 := strconv.Atoi(s[4:6])
		level, err3 := strconv.Atoi(s[6:8])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if owner == resID {
			out[node] = level
		}
	}
	return out
}

// ── Partners ────────────────────────────────────────────────────────

// PartnerData holds static partner card reference values. Stats are the
// unconditional passive bonuses per limit break 0-4; Conditional carries
// the informational remainder of the passive.
type PartnerData struct {
	Name        string
	Grade       int
	Class       string
	Passive     string
	Stats       map[StatKey][5]float64
	Conditional string
}

var defaultPartner = PartnerData{Name: "Unknown", Grade: 3, Class: "Controller", Passive: "Unknown Passive"}

var partners = map[int64]PartnerData{
	20001: {"Arwen", 4, "Controller", "Starshine Intellect",
		map[StatKey][5]float64{StatHPPct: {8, 9, 10, 11, 12}},
		"damage reduction stacks at turn start"},
	20003: {"Alyssa", 4, "Controller", "Alchemical Fruits",
		map[StatKey][5]float64{StatDEFPct: {12, 15, 18, 21, 24}},
		"post-battle heal"},
	20005: {"Eishlen", 5, "Vanguard", "Arcane Wave", nil, "HP and shield gain, first counterattack bonus"},
	20006: {"Nyx", 5, "Controller", "Resonance",
		map[StatKey][5]float64{StatHPPct: {8, 10, 12, 14, 16}},
		"ally damage after first draw each turn"},
	20007: {"Akad", 4, "Hunter", "Self Defense", nil, "Bullet card damage, more after first crit"},
	20008: {"Anteia", 5, "Psionic", "Clairvoyance",
		map[StatKey][5]float64{StatHPPct: {8, 10, 12, 14, 16}},
		"attack card damage after first created card"},
	20009: {"Zeta", 5, "Vanguard", "Deadly Poison", nil, "Instinct defense-based damage"},
	20010: {"Nakia", 3, "Ranger", "Hot-Blooded Soldier",
		map[StatKey][5]float64{StatATKPct: {8, 10, 12, 14, 16}},
		"Backline Support stacks on ally kills"},
	20011: {"Daisy", 4, "Ranger", "Dowsing",
		map[StatKey][5]float64{StatExtraDMG: {10, 13, 15, 18, 20}},
		"morale chance after first draw"},
	20012: {"Zatera", 3, "Psionic", "Fortune Telling",
		map[StatKey][5]float64{StatATKPct: {8, 10, 12, 14, 16}},
		"post-battle heal when injured"},
	20013: {"Raidel", 3, "Vanguard", "Strategic Analysis",
		map[StatKey][5]float64{StatHPPct: {8, 10, 12, 14, 16}},
		"defense-based damage while counterattacking"},
	20014: {"Serithea", 5, "Hunter", "Ensemble", nil, "attack card crit chance, stacking crit damage"},
	20015: {"Douglas", 3, "Striker", "Guard",
		map[StatKey][5]float64{StatATKPct: {8, 10, 12, 14, 16}},
		"damage on first turn"},
	20016: {"Yuri", 3, "Hunter", "Cantrip",
		map[StatKey][5]float64{StatATKPct: {8, 10, 12, 14, 16}},
		"damage after first shuffle"},
	20019: {"Priscilla", 5, "Striker", "Arachnid Domain",
		map[StatKey][5]float64{StatHPPct: {8, 10, 12, 14, 16}},
		"damage to Ravaged targets"},
	20024: {"Wilhelmina", 4, "Vanguard", "Battle Command",
		map[StatKey][5]float64{StatDEFPct: {12, 15, 18, 21, 24}},
		"defense-based damage vs Vulnerable"},
	20025: {"Rosaria", 4, "Hunter", "Financial Support",
		map[StatKey][5]float64{StatExtraDMG: {10, 13, 15, 18, 20}},
		"morale chance on Upgrade or Skill cards"},
	20026: {"Yvonne", 3, "Controller", "Bless",
		map[StatKey][5]float64{StatDEFPct: {8, 10, 12, 14, 16}},
		"heal after attack-free turns"},
	20027: {"Eloise", 4, "Psionic", "Technical Support", nil, "attack card damage after first Exhaust"},
	20030: {"Kiara", 5, "Hunter", "Analyze Weakness", nil, "graveyard and discard damage bonuses"},
	20032: {"Rachel", 4, "Vanguard", "Replenish Energy", nil, "shield gain and counterattack chance"},
	20033: {"Lillian", 4, "Striker", "Poltergeist", nil, "low-cost attack card damage"},
	20035: {"Ritochka", 4, "Striker", "Construction Support", nil, "high-cost attack card damage"},
	20036: {"Carroty", 4, "Hunter", "Super Carrot Power!", nil, "per-turn attack card damage"},
	20039: {"Tina", 5, "Ranger", "Communication Support", nil, "Order extra attack damage"},
	30044: {"Westmacott", 5, "Striker", "Gleaming Deduction", nil, "drawn attack card damage"},
	30045: {"Asteria", 5, "Striker", "Starshine-piercing Lighthouse", nil, "high-cost and Pulverize damage"},
	30046: {"Itsuku", 5, "Psionic", "Tranquil Marker",
		map[StatKey][5]float64{StatATKPct: {8, 10, 12, 14, 16}},
		"stacking damage and fixed damage on multi-hits"},
	30051: {"Marin", 5, "Ranger", "Raging Wave", nil, "generated-card extra attack damage"},
	30052: {"Noel", 5, "Controller", "Hymn of Blessing", nil, "Retain card bonuses and fixed damage"},
	30054: {"Erica", 5, "Vanguard", "No Speeding!", nil, "counterattack damage and gain chance"},
	30076: {"Peko", 5, "Hunter", "Peko's Multi-Purpose Kit",
		map[StatKey][5]float64{StatATKPct: {8, 10, 12, 14, 16}},
		"Repairs Complete stacks and Ravaged damage"},
}

func partnerData(resID int64) PartnerData {
	if p, ok := partners[resID]; ok {
		return p
	}
	return defaultPartner
}

func isKnownPartner(resID int64) bool {
	_, ok := partners[resID]
	return ok
}

type classStats struct{ ATK, DEF, HP float64 }

// partnerClassStats is indexed by grade (3-5). Offensive classes share
// one row, defensive classes the other.
var partnerClassStats = map[int]struct{ Offense, Defense classStats }{
	3: {classStats{89, 5, 85}, classStats{5, 36, 85}},
	4: {classStats{101, 5, 95}, classStats{5, 40, 95}},
	5: {classStats{111, 5, 105}, classStats{5, 44, 105}},
}

func isDefensiveClass(class string) bool {
	return class == "Controller" || class == "Vanguard"
}

// partnerBaseStats returns a partner's flat stat contribution at level
// 60 based on grade and class.
func partnerBaseStats(resID int64) classStats {
	p := partnerData(resID)
	row, ok := partnerClassStats[p.Grade]
	if !ok {
		return classStats{85, 5, 90}
	}
	if isDefensiveClass(p.Class) {
		return row.Defense
	}
	return row.Offense
}

// partnerStatsAtLevel scales the base stats linearly to the card level,
// truncating like the in-game display does.
func partnerStatsAtLevel(resID int64, level int) classStats {
	base := partnerBaseStats(resID)
	scale := float64(level) / 60.0
	return classStats{
		ATK: float64(int(base.ATK * scale)),
		DEF: float64(int(base.DEF * scale)),
		HP:  float64(int(base.HP * scale)),
	}
}

// partnerPassiveStats returns the unconditional passive bonuses at the
// given limit break, clamped to the 0-4 range.
func partnerPassiveStats(resID int64, limitBreak int) map[StatKey]float64 {
	p := partnerData(resID)
	if len(p.Stats) == 0 {
		return nil
	}
	idx := limitBreak
	if idx < 0 {
		idx = 0
	}
	if idx > 4 {
		idx = 4
	}
	out := make(map[StatKey]float64, len(p.Stats))
	for k, vals := range p.Stats {
		out[k] = vals[idx]
	}
	return out
}

// ── Progression tables ──────────────────────────────────────────────

type expStep struct {
	MinExp int64
	Level  int
}

var characterExpTable = []expStep{
	{0, 1}, {100, 2}, {500, 5}, {2000, 10}, {8000, 15},
	{20000, 20}, {40000, 25}, {70000, 30}, {100000, 35},
	{144000, 40}, {200000, 45}, {300000, 50}, {481000, 55}, {720000, 60},
}

var partnerExpTable = []expStep{
	{0, 1}, {100, 2}, {1000, 5}, {4000, 10}, {12000, 15},
	{20000, 20}, {28000, 25}, {36300, 30}, {70000, 35},
	{110000, 40}, {145000, 45}, {181000, 50}, {251000, 55}, {360000, 60},
}

// levelFromExp interpolates a level between table thresholds.
func levelFromExp(exp int64, table []expStep) int {
	if exp <= 0 {
		return 1
	}
	prevExp, prevLevel := int64(0), 1
	for _, step := range table {
		if exp < step.MinExp {
			if step.MinExp > prevExp {
				progress := float64(exp-prevExp) / float64(step.MinExp-prevExp)
				return prevLevel + int(progress*float64(step.Level-prevLevel))
			}
			return prevLevel
		}
		prevExp, prevLevel = step.MinExp, step.Level
	}
	return 60
}

// partnerLevelFromExp uses a linear ~180 exp/level rule below the table
// range, then falls back to interpolation.
func partnerLevelFromExp(exp int64) int {
	if exp <= 0 {
		return 1
	}
	if exp < 4000 {
		lvl := int(exp/180) + 1
		if lvl > 60 {
			return 60
		}
		return lvl
	}
	return levelFromExp(exp, partnerExpTable)
}

// ── Friendship ──────────────────────────────────────────────────────

// friendshipBonuses is cumulative (ATK, DEF, HP) per reward index 1-40.
var friendshipBonuses = [40][3]float64{
	{0, 0, 0}, {3, 0, 0}, {3, 1, 0}, {3, 1, 1}, {6, 1, 1},
	{6, 2, 1}, {6, 2, 4}, {9, 2, 4}, {9, 3, 4}, {9, 3, 7},
	{12, 3, 7}, {12, 4, 7}, {12, 4, 10}, {15, 4, 10}, {15, 5, 10},
	{15, 5, 13}, {18, 5, 13}, {18, 6, 13}, {18, 6, 16}, {21, 6, 16},
	{21, 7, 16}, {21, 7, 19}, {24, 7, 19}, {24, 8, 19}, {24, 8, 22},
	{27, 8, 22}, {27, 9, 22}, {27, 9, 25}, {30, 9, 25}, {30, 10, 25},
	{30, 10, 28}, {33, 10, 28}, {33, 11, 28}, {33, 11, 31}, {36, 11, 31},
	{36, 12, 31}, {36, 12, 34}, {39, 12, 34}, {39, 13, 34}, {39, 13, 37},
}

// friendshipBonus returns the cumulative (ATK, DEF, HP) flat bonus for a
// reward index, extrapolating the 3-step cycle past the table.
func friendshipBonus(index int) (atk, def, hp float64) {
	if index <= 1 {
		return 0, 0, 0
	}
	if index <= 40 {
		b := friendshipBonuses[index-1]
		return b[0], b[1], b[2]
	}
	cycles := (index - 4) / 3
	remainder := (index - 4) % 3
	atk = float64(3 + (cycles+1)*3)
	if remainder >= 1 {
		atk += 3
	}
	def = float64(1 + cycles + 1)
	if remainder >= 2 {
		def++
	}
	hp = float64(1 + cycles*3 + 3)
	return atk, def, hp
}
