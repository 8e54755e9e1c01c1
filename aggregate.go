package main

// ── Stat aggregation ────────────────────────────────────────────────

// FinalStats is the fully composed stat sheet of a build. ATK, DEF and
// HP are post-multiplier totals; the percent pools are kept as well so
// the ranking weights can address them directly.
type FinalStats struct {
	ATK   float64 `json:"atk"`
	DEF   float64 `json:"def"`
	HP    float64 `json:"hp"`
	CRate float64 `json:"crate"`
	CDmg  float64 `json:"cdmg"`

	ATKPct   float64 `json:"atk_pct"`
	DEFPct   float64 `json:"def_pct"`
	HPPct    float64 `json:"hp_pct"`
	Ego      float64 `json:"ego"`
	ExtraDMG float64 `json:"extra_dmg"`
	DoT      float64 `json:"dot"`

	PassionDMG  float64 `json:"passion_dmg"`
	OrderDMG    float64 `json:"order_dmg"`
	JusticeDMG  float64 `json:"justice_dmg"`
	VoidDMG     float64 `json:"void_dmg"`
	InstinctDMG float64 `json:"instinct_dmg"`

	// Derived combat metrics.
	EHP     float64 `json:"ehp"`
	AvgDMG  float64 `json:"avg_dmg"`
	MaxCD   float64 `json:"max_cd"`
	Bruiser float64 `json:"bruiser"`
}

// Keyed projects the sheet onto the stat-key axis used by the ranking
// weights. Flat keys carry the composed totals.
func (s *FinalStats) Keyed() [NumStatKeys]float64 {
	return [NumStatKeys]float64{
		StatFlatATK:     s.ATK,
		StatATKPct:      s.ATKPct,
		StatExtraDMG:    s.ExtraDMG,
		StatFlatDEF:     s.DEF,
		StatDEFPct:      s.DEFPct,
		StatFlatHP:      s.HP,
		StatHPPct:       s.HPPct,
		StatCRate:       s.CRate,
		StatCDmg:        s.CDmg,
		StatEgo:         s.Ego,
		StatDoT:         s.DoT,
		StatPassionDMG:  s.PassionDMG,
		StatOrderDMG:    s.OrderDMG,
		StatJusticeDMG:  s.JusticeDMG,
		StatVoidDMG:     s.VoidDMG,
		StatInstinctDMG: s.InstinctDMG,
	}
}

// Sub returns the per-stat difference s - other.
func (s *FinalStats) Sub(other *FinalStats) FinalStats {
	return FinalStats{
		ATK: s.ATK - other.ATK, DEF: s.DEF - other.DEF, HP: s.HP - other.HP,
		CRate: s.CRate - other.CRate, CDmg: s.CDmg - other.CDmg,
		ATKPct: s.ATKPct - other.ATKPct, DEFPct: s.DEFPct - other.DEFPct, HPPct: s.HPPct - other.HPPct,
		Ego: s.Ego - other.Ego, ExtraDMG: s.ExtraDMG - other.ExtraDMG, DoT: s.DoT - other.DoT,
		PassionDMG: s.PassionDMG - other.PassionDMG, OrderDMG: s.OrderDMG - other.OrderDMG,
		JusticeDMG: s.JusticeDMG - other.JusticeDMG, VoidDMG: s.VoidDMG - other.VoidDMG,
		InstinctDMG: s.InstinctDMG - other.InstinctDMG,
		EHP:         s.EHP - other.EHP, AvgDMG: s.AvgDMG - other.AvgDMG,
		MaxCD: s.MaxCD - other.MaxCD, Bruiser: s.Bruiser - other.Bruiser,
	}
}

// statPools accumulates flat and percent contributions before the
// multipliers are applied. Each pool is summed exactly once.
type statPools struct {
	keyed [NumStatKeys]float64
}

func (p *statPools) add(key StatKey, value float64) {
	if key >= 0 && key < NumStatKeys {
		p.keyed[key] += value
	}
	// Unknown keys cannot be classified and contribute nothing.
}

// AggregateStats composes the final stat sheet for a build on a
// character. Sources stack in pools first (gear, potential nodes,
// partner passive, set bonuses), then each multiplier is applied once:
//
//	total = base * (1 + pct/100) + flat + friendship + partner
func AggregateStats(char *Character, build *[6]*MemoryFragment, bonuses []SetActivation) FinalStats {
	base := defaultCharacter
	var fAtk, fDef, fHp float64
	var pAtk, pDef, pHp float64
	var pools statPools

	if char != nil {
		base = characterData(char.ResID)
		fAtk, fDef, fHp = friendshipBonus(char.FriendshipIndex)

		if char.Partner != nil {
			ps := partnerStatsAtLevel(char.Partner.ResID, char.Partner.Level)
			pAtk, pDef, pHp = ps.ATK, ps.DEF, ps.HP
			for k, v := range partnerPassiveStats(char.Partner.ResID, char.Partner.LimitBreak) {
				pools.add(k, v)
			}
		}

		if char.Potential50 > 0 {
			if k, v := potentialBonus(char.ResID, 50, char.Potential50); k != StatUnknown {
				pools.add(k, v)
			}
		}
		if char.Potential60 > 0 {
			if k, v := potentialBonus(char.ResID, 60, char.Potential60); k != StatUnknown {
				pools.add(k, v)
			}
		}
	}

	for _, f := range build {
		if f == nil {
			continue
		}
		if f.MainStat != nil {
			pools.add(f.MainStat.Key, f.MainStat.Value)
		}
		for i := range f.Substats {
			pools.add(f.Substats[i].Key, f.Substats[i].Value)
		}
	}

	// Stat-type set bonuses feed the same pools. Conditional bonuses are
	// informational and add nothing. An overfilled set (4 pieces of a
	// 2pc-defined set) still grants its bonus.
	for _, b := range bonuses {
		info, ok := sets[b.SetID]
		if !ok || info.Conditional || b.Pieces < info.Pieces {
			continue
		}
		pools.add(info.Stat, info.Value)
	}

	k := pools.keyed
	s := FinalStats{
		ATK:   base.BaseATK*(1+k[StatATKPct]/100) + k[StatFlatATK] + fAtk + pAtk,
		DEF:   base.BaseDEF*(1+k[StatDEFPct]/100) + k[StatFlatDEF] + fDef + pDef,
		HP:    base.BaseHP*(1+k[StatHPPct]/100) + k[StatFlatHP] + fHp + pHp,
		CRate: base.BaseCRate + k[StatCRate],
		CDmg:  base.BaseCDmg + k[StatCDmg],

		ATKPct: k[StatATKPct], DEFPct: k[StatDEFPct], HPPct: k[StatHPPct],
		Ego: k[StatEgo], ExtraDMG: k[StatExtraDMG], DoT: k[StatDoT],
		PassionDMG: k[StatPassionDMG], OrderDMG: k[StatOrderDMG],
		JusticeDMG: k[StatJusticeDMG], VoidDMG: k[StatVoidDMG],
		InstinctDMG: k[StatInstinctDMG],
	}

	s.EHP = s.HP * (s.DEF/300 + 1)
	s.AvgDMG = s.ATK * (s.CRate / 100) * (s.CDmg / 100)
	s.MaxCD = s.ATK * (s.CDmg / 100)
	s.Bruiser = s.HP * (s.CDmg / 100)
	return s
}
