//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const usage = `Usage: czn-optimizer [flags] <capture.json> <character name>

Positional arguments:
  capture.json    Path to a capture snapshot
  character name  Combatant to optimize for (e.g. "Mei Lin")

Flags:
`

// buildSummary is the JSON-serializable shape of one ranked build.
type buildSummary struct {
	Rank      int        `json:"rank"`
	Score     float64    `json:"score"`
	Swaps     int        `json:"swaps"`
	Fragments [6]int64   `json:"fragments"`
	Bonuses   []string   `json:"bonuses"`
	Stats     FinalStats `json:"stats"`
}

type jsonOutput struct {
	Character  string         `json:"character"`
	Date       string         `json:"date"`
	Evaluated  int64          `json:"evaluated"`
	TotalSpace int64          `json:"totalSpace"`
	Partial    bool           `json:"partial"`
	EmptySlots []int          `json:"emptySlots,omitempty"`
	Builds     []buildSummary `json:"builds"`
	TimeMs     int64          `json:"timeMs"`
}

func csvInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid set id %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func csvStats(s string) ([]StatKey, error) {
	if s == "" {
		return nil, nil
	}
	var out []StatKey
	for _, part := range strings.Split(s, ",") {
		k := parseStatName(strings.TrimSpace(part))
		if k == StatUnknown {
			return nil, fmt.Errorf("unknown stat %q", part)
		}
		out = append(out, k)
	}
	return out, nil
}

func csvNames(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseWeightOverrides applies "Stat=V,Stat=V" pairs on top of a preset.
func parseWeightOverrides(w *WeightConfig, s string) error {
	if s == "" {
		return nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid weight %q, want Stat=Value", pair)
		}
		k := parseStatName(strings.TrimSpace(name))
		if k == StatUnknown {
			return fmt.Errorf("unknown stat %q in weights", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("invalid weight value %q", val)
		}
		w[k] = v
	}
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Log search progress")
	preset := flag.String("preset", "", "Weight preset: dps, tank or reset")
	weights := flag.String("weights", "", "Per-stat weight overrides, e.g. \"CRate=2,CDmg=2\"")
	sets4 := flag.String("sets4", "", "4-piece set ids (any one required), comma-separated")
	sets2 := flag.String("sets2", "", "2-piece set ids (all required), comma-separated")
	main4 := flag.String("main4", "", "Allowed slot 4 main stats, comma-separated")
	main5 := flag.String("main5", "", "Allowed slot 5 main stats, comma-separated")
	main6 := flag.String("main6", "", "Allowed slot 6 main stats, comma-separated")
	top := flag.Float64("top", 1.0, "Fraction of top-scored candidates kept per slot, in (0, 1]")
	exclude := flag.String("exclude", "", "Skip pieces equipped on these characters, comma-separated")
	inclEquipped := flag.Bool("include-equipped", true, "Consider pieces equipped on other characters")
	show := flag.Int("show", 5, "Number of builds to print in text mode")
	topN := flag.Int("topn", 0, "Ranked builds to keep (0 = default)")
	maxCombos := flag.Int64("max-combos", 0, "Search space ceiling (0 = default)")
	workers := flag.Int("workers", 0, "Search goroutines (0 = GOMAXPROCS)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(1)
	}
	capturePath := args[0]
	charName := strings.Join(args[1:], " ")

	level := zap.WarnLevel
	if *verbose {
		level = zap.DebugLevel
	}
	zl, err := zap.NewDevelopment(zap.IncreaseLevel(level))
	if err != nil {
		fatalf("init logger: %v", err)
	}
	SetLogger(zl)
	defer zl.Sync()

	w, ok := parsePreset(*preset)
	if !ok {
		fatalf("unknown preset %q", *preset)
	}
	if err := parseWeightOverrides(&w, *weights); err != nil {
		fatalf("%v", err)
	}

	req := &OptimizationRequest{
		CharName:        charName,
		TopFraction:     *top,
		IncludeEquipped: *inclEquipped,
		ExcludedHeroes:  csvNames(*exclude),
		Weights:         w,
	}
	if req.FourPieceSets, err = csvInts(*sets4); err != nil {
		fatalf("%v", err)
	}
	if req.TwoPieceSets, err = csvInts(*sets2); err != nil {
		fatalf("%v", err)
	}
	if req.MainStat4, err = csvStats(*main4); err != nil {
		fatalf("%v", err)
	}
	if req.MainStat5, err = csvStats(*main5); err != nil {
		fatalf("%v", err)
	}
	if req.MainStat6, err = csvStats(*main6); err != nil {
		fatalf("%v", err)
	}

	capture, err := LoadCapture(capturePath)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d fragments, %d characters (captured %s)\n",
		len(capture.Fragments), len(capture.Characters), capture.CaptureTime)

	cfg := DefaultConfig()
	if *topN > 0 {
		cfg.TopN = *topN
	}
	if *maxCombos > 0 {
		cfg.MaxCombinations = *maxCombos
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opt := NewOptimizer(capture.Fragments, capture.Characters, cfg)
	start := time.Now()
	res, err := opt.Optimize(ctx, req)
	if err != nil {
		fatalf("%v", err)
	}
	elapsed := time.Since(start)

	if *jsonOut {
		out := jsonOutput{
			Character:  charName,
			Date:       time.Now().UTC().Format(time.RFC3339),
			Evaluated:  res.Evaluated,
			TotalSpace: res.TotalSpace,
			Partial:    res.Partial,
			EmptySlots: res.EmptySlots,
			TimeMs:     elapsed.Milliseconds(),
		}
		for i := range res.Builds {
			c := &res.Builds[i]
			s := buildSummary{
				Rank:  i + 1,
				Score: c.Score,
				Swaps: c.Swaps,
				Stats: c.Stats,
			}
			for j, f := range c.Fragments {
				s.Fragments[j] = f.ID
			}
			for _, bns := range c.Bonuses {
				s.Bonuses = append(s.Bonuses, fmt.Sprintf("%dpc %s", bns.Pieces, setName(bns.SetID)))
			}
			out.Builds = append(out.Builds, s)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}

	fmt.Print(FormatResult(res, req, *show))
	fmt.Fprintf(os.Stderr, "done in %.1fs\n", elapsed.Seconds())
}
