package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeValidation(t *testing.T) {
	opt := NewOptimizer(testInventory(1), testChars("Luke"), testConfig())
	ctx := context.Background()

	t.Run("unknown character", func(t *testing.T) {
		_, err := opt.Optimize(ctx, testRequest("Nobody"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown character")
	})

	t.Run("top fraction bounds", func(t *testing.T) {
		for _, f := range []float64{0, -0.5, 1.5} {
			req := testRequest("Luke")
			req.TopFraction = f
			_, err := opt.Optimize(ctx, req)
			assert.Error(t, err, "fraction %v", f)
		}
	})

	t.Run("negative weight", func(t *testing.T) {
		req := testRequest("Luke")
		req.Weights[StatCDmg] = -1
		_, err := opt.Optimize(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative weight")
	})
}

func TestOptimize(t *testing.T) {
	ctx := context.Background()

	t.Run("exhaustive enumeration counts every tuple", func(t *testing.T) {
		// Two candidates per slot: 2^6 combinations, all evaluated.
		opt := NewOptimizer(testInventory(2), testChars("Luke"), testConfig())
		res, err := opt.Optimize(ctx, testRequest("Luke"))
		require.NoError(t, err)

		assert.Equal(t, int64(64), res.TotalSpace)
		assert.Equal(t, int64(64), res.Evaluated)
		assert.False(t, res.Partial)
		assert.Empty(t, res.EmptySlots)
		assert.Len(t, res.Builds, 64)
	})

	t.Run("builds come back in ranked order", func(t *testing.T) {
		opt := NewOptimizer(testInventory(3), testChars("Luke"), testConfig())
		res, err := opt.Optimize(ctx, testRequest("Luke"))
		require.NoError(t, err)
		require.NotEmpty(t, res.Builds)
		for i := 0; i+1 < len(res.Builds); i++ {
			assert.False(t, betterBuild(&res.Builds[i+1], &res.Builds[i]),
				"build %d ranked below a better one", i)
		}
	})

	t.Run("top n caps the result", func(t *testing.T) {
		cfg := testConfig()
		cfg.TopN = 5
		opt := NewOptimizer(testInventory(2), testChars("Luke"), cfg)
		res, err := opt.Optimize(ctx, testRequest("Luke"))
		require.NoError(t, err)
		assert.Len(t, res.Builds, 5)
		assert.Equal(t, int64(64), res.Evaluated)
	})

	t.Run("search space ceiling", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxCombinations = 63
		opt := NewOptimizer(testInventory(2), testChars("Luke"), cfg)
		_, err := opt.Optimize(ctx, testRequest("Luke"))

		var tooLarge *TooLargeError
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, [6]int{2, 2, 2, 2, 2, 2}, tooLarge.SlotCounts)
		assert.Equal(t, int64(63), tooLarge.Ceiling)
	})

	t.Run("empty slot is a result state, not an error", func(t *testing.T) {
		var inv []*MemoryFragment
		for _, f := range testInventory(2) {
			if f.SlotNum != 6 {
				inv = append(inv, f)
			}
		}
		opt := NewOptimizer(inv, testChars("Luke"), testConfig())
		res, err := opt.Optimize(ctx, testRequest("Luke"))
		require.NoError(t, err)
		assert.Equal(t, []int{6}, res.EmptySlots)
		assert.Empty(t, res.Builds)
		assert.True(t, res.NoBuildPossible())
	})

	t.Run("unreachable set constraint is an error", func(t *testing.T) {
		// Set 19 exists in one slot only, so its 2pc bonus can never
		// activate even though every pool has candidates.
		inv := testInventory(1, 7)
		inv = append(inv, testFragment(901, 1, 19, RarityRare, StatFlatATK, 10))
		opt := NewOptimizer(inv, testChars("Luke"), testConfig())
		req := testRequest("Luke")
		req.TwoPieceSets = []int{7, 19}
		_, err := opt.Optimize(ctx, req)
		var setErr *UnsatisfiableSetError
		require.ErrorAs(t, err, &setErr)
		assert.Equal(t, 19, setErr.SetID)
		assert.Equal(t, 1, setErr.Reachable)
	})

	t.Run("set constraints hold in every result", func(t *testing.T) {
		// Each slot offers one set-7 and one set-9 piece. Requiring 4pc
		// of 7 and 2pc of 9 keeps both in the pools and leaves exactly
		// the C(6,2) = 15 assignments with four sevens and two nines.
		opt := NewOptimizer(testInventory(2, 7, 9), testChars("Luke"), testConfig())
		req := testRequest("Luke")
		req.FourPieceSets = []int{7}
		req.TwoPieceSets = []int{9}
		res, err := opt.Optimize(ctx, req)
		require.NoError(t, err)
		assert.Len(t, res.Builds, 15)

		for _, b := range res.Builds {
			sevens, nines := 0, 0
			for _, f := range b.Fragments {
				switch f.SetID {
				case 7:
					sevens++
				case 9:
					nines++
				}
			}
			assert.GreaterOrEqual(t, sevens, 4)
			assert.GreaterOrEqual(t, nines, 2)
		}
		// Pruned tuples still count toward the evaluated total.
		assert.Equal(t, int64(64), res.TotalSpace)
		assert.Equal(t, int64(64), res.Evaluated)
	})

	t.Run("cancellation yields a partial result", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		opt := NewOptimizer(testInventory(2), testChars("Luke"), testConfig())
		res, err := opt.Optimize(cancelled, testRequest("Luke"))
		require.NoError(t, err)
		assert.True(t, res.Partial)
		assert.Less(t, res.Evaluated, res.TotalSpace)
	})

	t.Run("swaps and delta against the equipped build", func(t *testing.T) {
		inv := testInventory(2)
		for _, f := range inv {
			if f.ID%100 == 0 { // the first piece of every slot
				f.EquippedTo = "Luke"
			}
		}
		opt := NewOptimizer(inv, testChars("Luke"), testConfig())
		res, err := opt.Optimize(ctx, testRequest("Luke"))
		require.NoError(t, err)
		require.NotNil(t, res.Current)

		found := false
		for _, b := range res.Builds {
			require.NotNil(t, b.Delta)
			all := true
			for _, f := range b.Fragments {
				if f.EquippedTo != "Luke" {
					all = false
					break
				}
			}
			if all {
				found = true
				assert.Equal(t, 0, b.Swaps)
				for _, d := range b.Diff {
					assert.True(t, d.Kept)
				}
			}
		}
		assert.True(t, found, "the equipped build should appear among 64 results")
	})

	t.Run("no equipped pieces means no delta", func(t *testing.T) {
		opt := NewOptimizer(testInventory(1), testChars("Luke"), testConfig())
		res, err := opt.Optimize(ctx, testRequest("Luke"))
		require.NoError(t, err)
		assert.Nil(t, res.Current)
		require.NotEmpty(t, res.Builds)
		assert.Nil(t, res.Builds[0].Delta)
		assert.Equal(t, 6, res.Builds[0].Swaps)
	})
}
