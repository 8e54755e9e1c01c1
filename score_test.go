package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFragment(t *testing.T) {
	t.Run("single line two rolls", func(t *testing.T) {
		// Flat ATK rolled 7 then 6 against a max roll of 8:
		// 10 * (7+6)/(8*2) * 2 = 16.25, rounded to one decimal.
		f := testFragment(1, 1, 7, RarityRare, StatFlatATK, 10,
			testSub(StatFlatATK, 7, 6))
		got := ScoreFragment(f, DefaultWeights())
		assert.Equal(t, 16.3, got)
		assert.Equal(t, 16.3, f.GearScore)
	})

	t.Run("weights scale contributions", func(t *testing.T) {
		f := testFragment(2, 4, 7, RarityRare, StatCRate, 10,
			testSub(StatCDmg, 4.0))
		w := DefaultWeights()
		base := ScoreFragment(f, w)
		w[StatCDmg] = 2.0
		doubled := ScoreFragment(f, w)
		assert.Equal(t, 2*base, doubled)
	})

	t.Run("zero weight drops a line", func(t *testing.T) {
		f := testFragment(3, 4, 7, RarityRare, StatCRate, 10,
			testSub(StatCDmg, 4.0), testSub(StatCRate, 2.0))
		w := DefaultWeights()
		w[StatCDmg] = 0
		got := ScoreFragment(f, w)
		assert.Equal(t, 10.0, got) // only the max CRate roll remains
	})

	t.Run("idempotent", func(t *testing.T) {
		f := testFragment(4, 2, 8, RarityLegendary, StatFlatDEF, 20,
			testSub(StatFlatDEF, 4, 3.5), testSub(StatHPPct, 1.1))
		w := PresetTank()
		first := ScoreFragment(f, w)
		low, high := f.PotentialLow, f.PotentialHigh
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, ScoreFragment(f, w))
			assert.Equal(t, low, f.PotentialLow)
			assert.Equal(t, high, f.PotentialHigh)
		}
	})

	t.Run("unknown stat uses neutral fallback", func(t *testing.T) {
		f := testFragment(5, 1, 7, RarityRare, StatFlatATK, 10)
		f.Substats = []Substat{{
			Key: StatUnknown, RawName: "S_MYSTERY_STAT", Value: 0.75, RollCount: 1,
		}}
		// quality 0.75/1.0, weight forced to 1.0 regardless of config.
		w := DefaultWeights()
		w[StatCDmg] = 99
		assert.Equal(t, 7.5, ScoreFragment(f, w))
	})
}

func TestPotentialBounds(t *testing.T) {
	t.Run("low is the current score", func(t *testing.T) {
		f := testFragment(10, 1, 7, RarityRare, StatFlatATK, 10,
			testSub(StatFlatATK, 7, 6))
		ScoreFragment(f, DefaultWeights())
		assert.Equal(t, f.GearScore, f.PotentialLow)
	})

	t.Run("high adds max rolls on the best line", func(t *testing.T) {
		// Rare budget 3, one upgrade used, so 2 remain. Best weight 1.0:
		// high = 16.3 + 2*10.
		f := testFragment(11, 1, 7, RarityRare, StatFlatATK, 10,
			testSub(StatFlatATK, 7, 6))
		ScoreFragment(f, DefaultWeights())
		assert.Equal(t, 36.3, f.PotentialHigh)
	})

	t.Run("invariant low <= score <= high", func(t *testing.T) {
		frags := []*MemoryFragment{
			testFragment(12, 1, 7, RarityRare, StatFlatATK, 10, testSub(StatFlatATK, 5)),
			testFragment(13, 4, 8, RarityLegendary, StatCRate, 10,
				testSub(StatCDmg, 4, 2.4, 3.1), testSub(StatHPPct, 0.8)),
			testFragment(14, 5, 9, RarityUncommon, StatATKPct, 8, testSub(StatDoT, 2.7)),
			testFragment(15, 6, 11, RarityRare, StatEgo, 15),
		}
		for _, w := range []WeightConfig{DefaultWeights(), PresetDPS(), PresetTank()} {
			RescoreAll(frags, w)
			for _, f := range frags {
				require.LessOrEqual(t, f.PotentialLow, f.GearScore, "fragment %d", f.ID)
				require.LessOrEqual(t, f.GearScore, f.PotentialHigh, "fragment %d", f.ID)
			}
		}
	})

	t.Run("below rare never upgrades", func(t *testing.T) {
		f := testFragment(16, 3, 8, RarityUncommon, StatFlatHP, 30,
			testSub(StatHPPct, 1.0))
		ScoreFragment(f, DefaultWeights())
		assert.Equal(t, f.GearScore, f.PotentialLow)
		assert.Equal(t, f.GearScore, f.PotentialHigh)
	})

	t.Run("exhausted budget pins both bounds", func(t *testing.T) {
		// Rare budget 3: a line with 4 rolls has used all 3 upgrades.
		f := testFragment(17, 1, 7, RarityRare, StatFlatATK, 10,
			testSub(StatFlatATK, 7, 6, 5, 8))
		ScoreFragment(f, DefaultWeights())
		assert.Equal(t, f.GearScore, f.PotentialLow)
		assert.Equal(t, f.GearScore, f.PotentialHigh)
	})
}
