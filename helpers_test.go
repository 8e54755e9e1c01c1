package main

import "fmt"

// testSub builds a substat line from individual roll values.
func testSub(key StatKey, rolls ...float64) Substat {
	s := Substat{Key: key, RawName: rawNameFor(key), RollCount: len(rolls)}
	for _, v := range rolls {
		s.Value += v
		kind := RollUpgrade
		if len(s.Rolls) == 0 {
			kind = RollBase
		}
		s.Rolls = append(s.Rolls, SubstatRoll{Value: v, Kind: kind})
	}
	return s
}

func rawNameFor(key StatKey) string {
	if key >= 0 && key < NumStatKeys {
		return statTable[key].Name
	}
	return "S_BOGUS_STAT"
}

// testFragment builds a fragment with a main stat and optional substats.
func testFragment(id int64, slot, setID, rarity int, main StatKey, mainVal float64, subs ...Substat) *MemoryFragment {
	return &MemoryFragment{
		ID:       id,
		SlotNum:  slot,
		SetID:    setID,
		Rarity:   rarity,
		Level:    maxFragmentLevel,
		MainStat: &MainStat{Key: main, RawName: rawNameFor(main), Value: mainVal},
		Substats: subs,
	}
}

var slotMains = [6]StatKey{StatFlatATK, StatFlatDEF, StatFlatHP, StatCRate, StatATKPct, StatEgo}

// testInventory builds perSlot rare fragments for each of the six slots,
// cycling through the given set ids. Ids encode slot and index so
// failures are readable.
func testInventory(perSlot int, setIDs ...int) []*MemoryFragment {
	if len(setIDs) == 0 {
		setIDs = []int{6, 7, 8, 9, 10, 11}
	}
	var inv []*MemoryFragment
	for si, slot := range slotOrder {
		for i := 0; i < perSlot; i++ {
			id := int64(slot*100 + i)
			set := setIDs[i%len(setIDs)]
			inv = append(inv, testFragment(id, slot, set, RarityRare,
				slotMains[si], 10,
				testSub(StatCRate, 1.5), testSub(StatCDmg, 3.0)))
		}
	}
	return inv
}

// testChars returns a minimal character table keyed by name.
func testChars(names ...string) map[string]*Character {
	chars := map[string]*Character{}
	for _, name := range names {
		var resID int64
		for id, c := range characters {
			if c.Name == name {
				resID = id
				break
			}
		}
		if resID == 0 {
			panic(fmt.Sprintf("no such test character %q", name))
		}
		chars[name] = &Character{ResID: resID, Name: name, Level: 60, MaxLevel: 60, FriendshipIndex: 1}
	}
	return chars
}

func testRequest(char string) *OptimizationRequest {
	return &OptimizationRequest{
		CharName:        char,
		TopFraction:     1.0,
		IncludeEquipped: true,
		Weights:         DefaultWeights(),
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.CancelEvery = 1
	return cfg
}
