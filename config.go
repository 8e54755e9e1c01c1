package main

import "runtime"

// Config holds search tuning parameters. Adjust these to trade speed for
// search breadth.
type Config struct {
	// MaxCombinations is the ceiling on the product of per-slot candidate
	// counts. A request whose search space exceeds it is rejected before
	// enumeration starts.
	MaxCombinations int64
	// TopN is the number of ranked builds kept in the result.
	TopN int
	// Workers is the number of search goroutines. 0 means GOMAXPROCS.
	Workers int
	// CancelEvery is the number of evaluated combinations between
	// cancellation checks inside each worker.
	CancelEvery int
	// MinRarity is the lowest fragment rarity admitted to the search.
	MinRarity int
}

// DefaultConfig returns the tuning used by the CLI and Lambda entry points.
func DefaultConfig() Config {
	return Config{
		MaxCombinations: 20_000_000,
		TopN:            100,
		Workers:         runtime.GOMAXPROCS(0),
		CancelEvery:     5000,
		MinRarity:       RarityRare,
	}
}
