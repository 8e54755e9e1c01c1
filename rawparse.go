package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ── Capture ingestion ───────────────────────────────────────────────

// CaptureData is a parsed account snapshot: the full fragment inventory
// plus owned characters with their partner assignments.
type CaptureData struct {
	CaptureTime string
	Fragments   []*MemoryFragment
	Characters  map[string]*Character

	// Equipped groups fragments by owner name; Unequipped holds the rest.
	Equipped   map[string][]*MemoryFragment
	Unequipped []*MemoryFragment
}

// LoadCapture reads and parses a capture JSON file.
func LoadCapture(path string) (*CaptureData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("capture %s is not valid JSON", path)
	}
	return ParseCapture(string(raw)), nil
}

// ParseCapture decodes a capture document. Fragments that fail to
// decode are skipped with a warning rather than aborting the load.
func ParseCapture(doc string) *CaptureData {
	c := &CaptureData{
		CaptureTime: gjson.Get(doc, "capture_time").String(),
		Characters:  map[string]*Character{},
		Equipped:    map[string][]*MemoryFragment{},
	}

	parseCharacters(doc, c)

	items := gjson.Get(doc, "inventory.piece_items")
	if !items.Exists() {
		items = gjson.Get(doc, "piece_items")
	}
	items.ForEach(func(_, v gjson.Result) bool {
		f, err := parseFragment(v)
		if err != nil {
			logger.Warn("skipping malformed fragment", zap.Error(err))
			return true
		}
		c.Fragments = append(c.Fragments, f)
		if f.EquippedTo != "" {
			c.Equipped[f.EquippedTo] = append(c.Equipped[f.EquippedTo], f)
		} else {
			c.Unequipped = append(c.Unequipped, f)
		}
		return true
	})
	return c
}

// parseFragment decodes one piece_items entry. The resource id digits
// carry slot, rarity and set: str[2]=slot, str[3]=rarity, str[4:]=set.
func parseFragment(v gjson.Result) (*MemoryFragment, error) {
	resStr := v.Get("res_id").String()
	if len(resStr) < 5 {
		return nil, fmt.Errorf("res_id %q too short", resStr)
	}
	slot, err := strconv.Atoi(resStr[2:3])
	if err != nil {
		return nil, fmt.Errorf("res_id %q: bad slot digit", resStr)
	}
	rarity, err := strconv.Atoi(resStr[3:4])
	if err != nil {
		return nil, fmt.Errorf("res_id %q: bad rarity digit", resStr)
	}
	setID, err := strconv.Atoi(resStr[4:])
	if err != nil {
		return nil, fmt.Errorf("res_id %q: bad set id", resStr)
	}

	charID := v.Get("char_res_id").Int()
	f := &MemoryFragment{
		ID:             v.Get("id").Int(),
		SlotNum:        slot,
		Rarity:         rarity,
		SetID:          setID,
		Level:          int(v.Get("level").Int()),
		Locked:         v.Get("lock").Bool(),
		EquippedCharID: charID,
		EquippedTo:     characterName(charID),
	}

	// stat_list groups into the main stat (slot 0, type 0) and substat
	// lines keyed by line slot. Multiple entries on one line are rolls.
	lineIndex := map[int64]int{}
	v.Get("stat_list").ForEach(func(_, s gjson.Result) bool {
		raw := s.Get("stat").String()
		lineSlot := s.Get("slot").Int()
		kind := s.Get("type").Int()
		value := s.Get("value").Float()

		if lineSlot == 0 && kind == 0 {
			f.MainStat = &MainStat{Key: parseStatKey(raw), RawName: raw, Value: value}
			return true
		}

		roll := SubstatRoll{Value: value, Kind: parseRollKind(kind)}
		if idx, ok := lineIndex[lineSlot]; ok {
			sub := &f.Substats[idx]
			sub.Value += value
			sub.RollCount++
			sub.Rolls = append(sub.Rolls, roll)
		} else {
			lineIndex[lineSlot] = len(f.Substats)
			f.Substats = append(f.Substats, Substat{
				Key:       parseStatKey(raw),
				RawName:   raw,
				Value:     value,
				RollCount: 1,
				Rolls:     []SubstatRoll{roll},
			})
		}
		return true
	})
	return f, nil
}

// parseCharacters splits the capture's character list into heroes and
// partner cards, then attaches each hero's assigned partner.
func parseCharacters(doc string, c *CaptureData) {
	chars := gjson.Get(doc, "characters")
	items := chars.Get("characters")
	if !items.Exists() {
		items = chars.Get("char_items")
	}
	if !items.Exists() && chars.IsArray() {
		items = chars
	}
	if !items.Exists() {
		return
	}

	// Partner cards share the list with heroes; the reference table
	// decides which is which.
	partnerByID := map[int64]gjson.Result{}
	var heroes []gjson.Result
	items.ForEach(func(_, v gjson.Result) bool {
		if isKnownPartner(v.Get("res_id").Int()) {
			partnerByID[v.Get("id").Int()] = v
		} else {
			heroes = append(heroes, v)
		}
		return true
	})

	for _, h := range heroes {
		resID := h.Get("res_id").Int()
		name := characterName(resID)
		if name == "" {
			continue
		}

		exp := h.Get("exp").Int()
		ascend := int(h.Get("ascend").Int())
		char := &Character{
			ResID:           resID,
			Name:            name,
			Exp:             exp,
			Level:           levelFromExp(exp, characterExpTable),
			Ascend:          ascend,
			MaxLevel:        (ascend + 1) * 10,
			LimitBreak:      int(h.Get("limit_break").Int()),
			FriendshipIndex: int(h.Get("friendship_reward_index").Int()),
		}

		nodes := decodePotentialNodes(parseNodeIDs(h.Get("potential_node_ids")), resID)
		char.Potential50 = nodes[50]
		char.Potential60 = nodes[60]

		partnerID := h.Get("partner_id").Int()
		if partnerID == 0 {
			partnerID = h.Get("partner").Int()
		}
		if p, ok := partnerByID[partnerID]; ok {
			pAscend := int(p.Get("ascend").Int())
			card := &PartnerCard{
				ResID:      p.Get("res_id").Int(),
				MaxLevel:   (pAscend + 1) * 10,
				LimitBreak: int(p.Get("limit_break").Int()),
			}
			card.Level = partnerLevelFromExp(p.Get("exp").Int())
			if card.Level > card.MaxLevel {
				card.Level = card.MaxLevel
			}
			char.Partner = card
		}

		c.Characters[name] = char
	}
}

// parseNodeIDs accepts both a JSON array and the game's stringified
// "[id,id,...]" form.
func parseNodeIDs(v gjson.Result) []int64 {
	var ids []int64
	if v.IsArray() {
		v.ForEach(func(_, item gjson.Result) bool {
			ids = append(ids, item.Int())
			return true
		})
		return ids
	}
	s := strings.Trim(v.String(), "[]")
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}
