package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// luke returns a level-60 Luke with no partner, nodes or friendship, so
// tests start from the bare 491/155/329 base line.
func luke() *Character {
	return testChars("Luke")["Luke"]
}

// sixMains is one fragment per slot carrying only a main stat.
func sixMains() [6]*MemoryFragment {
	return [6]*MemoryFragment{
		testFragment(1, 1, 6, RarityRare, StatFlatATK, 100),
		testFragment(2, 2, 7, RarityRare, StatFlatDEF, 50),
		testFragment(3, 3, 8, RarityRare, StatFlatHP, 200),
		testFragment(4, 4, 9, RarityRare, StatCRate, 10),
		testFragment(5, 5, 10, RarityRare, StatATKPct, 20),
		testFragment(6, 6, 11, RarityRare, StatEgo, 30),
	}
}

func TestAggregateStats(t *testing.T) {
	t.Run("percent multiplies base once, flats add after", func(t *testing.T) {
		build := sixMains()
		s := AggregateStats(luke(), &build, nil)

		assert.InDelta(t, 491*1.20+100, s.ATK, 1e-9) // 689.2
		assert.InDelta(t, 205, s.DEF, 1e-9)
		assert.InDelta(t, 529, s.HP, 1e-9)
		assert.InDelta(t, 13, s.CRate, 1e-9)
		assert.InDelta(t, 125, s.CDmg, 1e-9)
		assert.InDelta(t, 20, s.ATKPct, 1e-9)
		assert.InDelta(t, 30, s.Ego, 1e-9)
	})

	t.Run("derived metrics", func(t *testing.T) {
		build := sixMains()
		s := AggregateStats(luke(), &build, nil)

		assert.InDelta(t, s.HP*(s.DEF/300+1), s.EHP, 1e-9)
		assert.InDelta(t, s.ATK*(s.CRate/100)*(s.CDmg/100), s.AvgDMG, 1e-9)
		assert.InDelta(t, s.ATK*(s.CDmg/100), s.MaxCD, 1e-9)
		assert.InDelta(t, s.HP*(s.CDmg/100), s.Bruiser, 1e-9)
	})

	t.Run("stat set bonus joins the percent pool", func(t *testing.T) {
		build := sixMains()
		bonuses := []SetActivation{{SetID: 9, Pieces: 2}}
		s := AggregateStats(luke(), &build, bonuses)

		// 20% from gear plus 12% from Black Wing, applied to base once.
		assert.InDelta(t, 32, s.ATKPct, 1e-9)
		assert.InDelta(t, 491*1.32+100, s.ATK, 1e-9)
	})

	t.Run("overfilled pair set keeps its bonus", func(t *testing.T) {
		// Four pieces of Tetra's Authority report a 4pc activation, and
		// the 2pc +12% DEF still applies.
		build := [6]*MemoryFragment{
			testFragment(1, 1, 7, RarityRare, StatFlatATK, 100),
			testFragment(2, 2, 7, RarityRare, StatFlatDEF, 50),
			testFragment(3, 3, 7, RarityRare, StatFlatHP, 200),
			testFragment(4, 4, 7, RarityRare, StatCRate, 10),
			testFragment(5, 5, 10, RarityRare, StatATKPct, 20),
			testFragment(6, 6, 11, RarityRare, StatEgo, 30),
		}
		bonuses := activeBonuses(countSets(&build))
		require.Equal(t, []SetActivation{{SetID: 7, Pieces: 4}}, bonuses)

		s := AggregateStats(luke(), &build, bonuses)
		assert.InDelta(t, 12, s.DEFPct, 1e-9)
		assert.InDelta(t, 155*1.12+50, s.DEF, 1e-9)
	})

	t.Run("conditional set bonus adds nothing", func(t *testing.T) {
		build := sixMains()
		plain := AggregateStats(luke(), &build, nil)
		s := AggregateStats(luke(), &build, []SetActivation{{SetID: 10, Pieces: 2}})
		assert.Equal(t, plain, s)
	})

	t.Run("substats feed the same pools", func(t *testing.T) {
		build := [6]*MemoryFragment{
			testFragment(1, 1, 6, RarityRare, StatFlatATK, 100,
				testSub(StatCRate, 1.5), testSub(StatCDmg, 3.0)),
		}
		s := AggregateStats(luke(), &build, nil)
		assert.InDelta(t, 4.5, s.CRate, 1e-9)
		assert.InDelta(t, 128, s.CDmg, 1e-9)
	})

	t.Run("partner adds flat stats and passive", func(t *testing.T) {
		c := luke()
		c.Partner = &PartnerCard{ResID: 20010, Level: 60, MaxLevel: 60, LimitBreak: 4}
		build := [6]*MemoryFragment{
			testFragment(1, 1, 6, RarityRare, StatFlatATK, 100),
		}
		s := AggregateStats(c, &build, nil)

		// Nakia: grade 3 Ranger (89/5/85 at 60), passive +16% ATK at LB4.
		assert.InDelta(t, 491*1.16+100+89, s.ATK, 1e-9)
		assert.InDelta(t, 155+5, s.DEF, 1e-9)
		assert.InDelta(t, 329+85, s.HP, 1e-9)
		assert.InDelta(t, 16, s.ATKPct, 1e-9)
	})

	t.Run("partner level scales truncating", func(t *testing.T) {
		c := luke()
		c.Partner = &PartnerCard{ResID: 20010, Level: 30, MaxLevel: 40}
		var build [6]*MemoryFragment
		s := AggregateStats(c, &build, nil)

		// 89 * 30/60 truncates to 44.
		assert.InDelta(t, 491*1.08+44, s.ATK, 1e-9)
	})

	t.Run("friendship is a flat add", func(t *testing.T) {
		c := luke()
		c.FriendshipIndex = 40
		var build [6]*MemoryFragment
		s := AggregateStats(c, &build, nil)

		assert.InDelta(t, 491+39, s.ATK, 1e-9)
		assert.InDelta(t, 155+13, s.DEF, 1e-9)
		assert.InDelta(t, 329+37, s.HP, 1e-9)
	})

	t.Run("potential nodes", func(t *testing.T) {
		c := luke()
		c.Potential50 = 5
		c.Potential60 = 3
		var build [6]*MemoryFragment
		s := AggregateStats(c, &build, nil)

		// Luke's nodes are CRate at 50 and CDmg at 60.
		assert.InDelta(t, 3+10, s.CRate, 1e-9)
		assert.InDelta(t, 125+7.2, s.CDmg, 1e-9)
	})

	t.Run("unknown substat keys contribute nothing", func(t *testing.T) {
		plainBuild := [6]*MemoryFragment{
			testFragment(1, 1, 6, RarityRare, StatFlatATK, 100),
		}
		oddBuild := [6]*MemoryFragment{
			testFragment(1, 1, 6, RarityRare, StatFlatATK, 100),
		}
		oddBuild[0].Substats = []Substat{{Key: StatUnknown, RawName: "S_MYSTERY", Value: 50}}

		assert.Equal(t,
			AggregateStats(luke(), &plainBuild, nil),
			AggregateStats(luke(), &oddBuild, nil))
	})

	t.Run("nil character uses neutral base", func(t *testing.T) {
		build := sixMains()
		s := AggregateStats(nil, &build, nil)
		assert.InDelta(t, 100, s.ATK, 1e-9)
		assert.InDelta(t, 10, s.CRate, 1e-9)
		assert.InDelta(t, 125, s.CDmg, 1e-9)
	})
}

func TestFinalStatsKeyed(t *testing.T) {
	build := sixMains()
	s := AggregateStats(luke(), &build, nil)
	k := s.Keyed()
	assert.Equal(t, s.ATK, k[StatFlatATK])
	assert.Equal(t, s.ATKPct, k[StatATKPct])
	assert.Equal(t, s.CRate, k[StatCRate])
	assert.Equal(t, s.Ego, k[StatEgo])
}

func TestFinalStatsSub(t *testing.T) {
	build := sixMains()
	s := AggregateStats(luke(), &build, nil)
	var empty [6]*MemoryFragment
	base := AggregateStats(luke(), &empty, nil)

	d := s.Sub(&base)
	assert.InDelta(t, s.ATK-base.ATK, d.ATK, 1e-9)
	assert.InDelta(t, 10, d.CRate, 1e-9)
	assert.InDelta(t, 30, d.Ego, 1e-9)
}
