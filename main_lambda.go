//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeRequest struct {
	Capture   json.RawMessage `json:"capture"`
	Character string          `json:"character"`

	FourPieceSets   []int    `json:"fourPieceSets"`
	TwoPieceSets    []int    `json:"twoPieceSets"`
	MainStat4       []string `json:"mainStat4"`
	MainStat5       []string `json:"mainStat5"`
	MainStat6       []string `json:"mainStat6"`
	TopFraction     float64  `json:"topFraction"`
	IncludeEquipped *bool    `json:"includeEquipped"`
	ExcludedHeroes  []string `json:"excludedHeroes"`
	Preset          string   `json:"preset"`

	TopN int `json:"topN"`
}

type slotEntry struct {
	Slot       int    `json:"slot"`
	FragmentID int64  `json:"fragmentId"`
	Set        string `json:"set"`
	Kept       bool   `json:"kept"`
}

type buildEntry struct {
	Score   float64      `json:"score"`
	Swaps   int          `json:"swaps"`
	Bonuses []string     `json:"bonuses"`
	Slots   [6]slotEntry `json:"slots"`
	Stats   FinalStats   `json:"stats"`
	Delta   *FinalStats  `json:"delta,omitempty"`
}

type optimizeResult struct {
	Character  string       `json:"character"`
	Evaluated  int64        `json:"evaluated"`
	TotalSpace int64        `json:"totalSpace"`
	Partial    bool         `json:"partial"`
	EmptySlots []int        `json:"emptySlots,omitempty"`
	Builds     []buildEntry `json:"builds"`
}

func statKeys(names []string) ([]StatKey, bool) {
	var out []StatKey
	for _, n := range names {
		k := parseStatName(n)
		if k == StatUnknown {
			return nil, false
		}
		out = append(out, k)
	}
	return out, true
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req optimizeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}
	if len(req.Capture) == 0 {
		return errResp(400, "missing capture field")
	}
	if req.Character == "" {
		return errResp(400, "missing character")
	}

	weights, ok := parsePreset(req.Preset)
	if !ok {
		return errResp(400, "unknown preset "+req.Preset)
	}
	oreq := &OptimizationRequest{
		CharName:        req.Character,
		FourPieceSets:   req.FourPieceSets,
		TwoPieceSets:    req.TwoPieceSets,
		TopFraction:     req.TopFraction,
		IncludeEquipped: req.IncludeEquipped == nil || *req.IncludeEquipped,
		ExcludedHeroes:  req.ExcludedHeroes,
		Weights:         weights,
	}
	if oreq.TopFraction == 0 {
		oreq.TopFraction = 1.0
	}
	if oreq.MainStat4, ok = statKeys(req.MainStat4); !ok {
		return errResp(400, "unknown stat in mainStat4")
	}
	if oreq.MainStat5, ok = statKeys(req.MainStat5); !ok {
		return errResp(400, "unknown stat in mainStat5")
	}
	if oreq.MainStat6, ok = statKeys(req.MainStat6); !ok {
		return errResp(400, "unknown stat in mainStat6")
	}

	capture := ParseCapture(string(req.Capture))
	cfg := DefaultConfig()
	if req.TopN > 0 {
		cfg.TopN = req.TopN
	}

	opt := NewOptimizer(capture.Fragments, capture.Characters, cfg)
	res, err := opt.Optimize(ctx, oreq)
	if err != nil {
		return errResp(422, err.Error())
	}

	out := optimizeResult{
		Character:  req.Character,
		Evaluated:  res.Evaluated,
		TotalSpace: res.TotalSpace,
		Partial:    res.Partial,
		EmptySlots: res.EmptySlots,
	}
	for i := range res.Builds {
		c := &res.Builds[i]
		e := buildEntry{Score: c.Score, Swaps: c.Swaps, Stats: c.Stats, Delta: c.Delta}
		for _, b := range c.Bonuses {
			e.Bonuses = append(e.Bonuses, setName(b.SetID))
		}
		for j, d := range c.Diff {
			e.Slots[j] = slotEntry{
				Slot:       d.Slot,
				FragmentID: d.FragmentID,
				Set:        setName(c.Fragments[j].SetID),
				Kept:       d.Kept,
			}
		}
		out.Builds = append(out.Builds, e)
	}

	respJSON, _ := json.Marshal(out)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
