package main

import (
	"fmt"
	"strings"
)

// ── Result formatting ───────────────────────────────────────────────

func formatBonuses(bonuses []SetActivation) string {
	if len(bonuses) == 0 {
		return "no set bonuses"
	}
	parts := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		parts = append(parts, fmt.Sprintf("%dpc %s", b.Pieces, setName(b.SetID)))
	}
	return strings.Join(parts, ", ")
}

func formatFragmentLine(d SlotDiff, f *MemoryFragment) string {
	mark := "swap"
	if d.Kept {
		mark = "keep"
	}
	main := "-"
	if f.MainStat != nil {
		main = fmt.Sprintf("%s %.1f", f.MainStat.Key, f.MainStat.Value)
	}
	return fmt.Sprintf("  %-16s [%s] #%d %s %s | %s | score %.1f (%.1f..%.1f)",
		slotNames[d.Slot], mark, f.ID, rarityNames[f.Rarity], setName(f.SetID),
		main, f.GearScore, f.PotentialLow, f.PotentialHigh)
}

func formatStats(s *FinalStats) string {
	return fmt.Sprintf(
		"  ATK %.0f  DEF %.0f  HP %.0f  CRate %.1f%%  CDmg %.1f%%\n"+
			"  EHP %.0f  Avg DMG %.0f  Max CD %.0f  Bruiser %.0f",
		s.ATK, s.DEF, s.HP, s.CRate, s.CDmg,
		s.EHP, s.AvgDMG, s.MaxCD, s.Bruiser)
}

// FormatResult renders a ranked result as text for the CLI. Only the
// top `show` builds are printed in full.
func FormatResult(res *OptimizationResult, req *OptimizationRequest, show int) string {
	var b strings.Builder

	if res.NoBuildPossible() {
		fmt.Fprintf(&b, "no build possible for %s: no candidates for slot(s) %v after filtering\n",
			req.CharName, res.EmptySlots)
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %d builds (evaluated %d of %d combinations",
		req.CharName, len(res.Builds), res.Evaluated, res.TotalSpace)
	if res.Partial {
		b.WriteString(", cancelled early - partial result")
	}
	b.WriteString(")\n")

	if show > len(res.Builds) {
		show = len(res.Builds)
	}
	for i := 0; i < show; i++ {
		c := &res.Builds[i]
		fmt.Fprintf(&b, "\n#%d  score %.1f  swaps %d  [%s]\n", i+1, c.Score, c.Swaps, formatBonuses(c.Bonuses))
		for si, d := range c.Diff {
			b.WriteString(formatFragmentLine(d, c.Fragments[si]))
			b.WriteByte('\n')
		}
		b.WriteString(formatStats(&c.Stats))
		b.WriteByte('\n')
		if c.Delta != nil {
			fmt.Fprintf(&b, "  vs current: ATK %+.0f  DEF %+.0f  HP %+.0f  CRate %+.1f%%  CDmg %+.1f%%\n",
				c.Delta.ATK, c.Delta.DEF, c.Delta.HP, c.Delta.CRate, c.Delta.CDmg)
		}
	}
	return b.String()
}
