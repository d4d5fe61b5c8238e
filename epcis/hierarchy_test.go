package epcis

import (
	"fmt"
	"strings"
	"testing"
)

// testConfig is the three-level fixture: 1 SSCC of 5 cases of 10 items.
func testConfig() Configuration {
	return Configuration{
		CompanyPrefix:      "1234567",
		ItemsPerCase:       10,
		CasesPerSSCC:       5,
		NumberOfSSCC:       1,
		Item:               PackLevel{IndicatorDigit: "3", ProductCode: "000001"},
		Case:               PackLevel{IndicatorDigit: "2", ProductCode: "000001"},
		InnerCase:          PackLevel{IndicatorDigit: "4", ProductCode: "000001"},
		SSCCIndicatorDigit: "0",
		LotNumber:          "LOT42",
		ExpirationDate:     "2027-11-30",
		Sender: Party{
			Name: "Alpha Pharma", GLN: "0360001000017", SGLN: "urn:epc:id:sgln:0360001.00001.0",
			Street: "1 Plant Rd", City: "Trenton", State: "NJ", PostalCode: "08601", CountryCode: "US",
		},
		Receiver: Party{
			Name: "Beta Wholesale", GLN: "0360002000016", SGLN: "urn:epc:id:sgln:0360002.00001.0",
			Street: "9 Depot Way", City: "Memphis", State: "TN", PostalCode: "37501", CountryCode: "US",
		},
		ShipperSameAsSender: true,
	}
}

func serialRange(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%04d", prefix, i+1)
	}
	return out
}

func testSerials(cfg Configuration) SerialNumberSet {
	set := SerialNumberSet{SSCC: serialRange("9", cfg.NumberOfSSCC)}
	cases := cfg.NumberOfSSCC * cfg.CasesPerSSCC
	set.Case = serialRange("2", cases)
	if cfg.InnerCasesEnabled {
		inner := cases * cfg.InnerCasesPerCase
		set.InnerCase = serialRange("4", inner)
		set.Item = serialRange("1", inner*cfg.ItemsPerInnerCase)
		return set
	}
	if cfg.CasesPerSSCC > 0 {
		set.Item = serialRange("1", cases*cfg.ItemsPerCase)
	} else {
		set.Item = serialRange("1", cfg.NumberOfSSCC*cfg.ItemsPerCase)
	}
	return set
}

func TestBuildHierarchy_ThreeLevel(t *testing.T) {
	cfg := testConfig()
	h, err := BuildHierarchy(cfg, testSerials(cfg))
	if err != nil {
		t.Fatalf("build hierarchy: %v", err)
	}

	if len(h.Levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(h.Levels))
	}
	order := []LevelKind{LevelItem, LevelCase, LevelSSCC}
	for i, kind := range order {
		if h.Levels[i].Kind != kind {
			t.Fatalf("expected level %d to be %s, got %s", i, kind, h.Levels[i].Kind)
		}
	}

	if len(h.Pairings) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(h.Pairings))
	}
	itemToCase := h.Pairings[0]
	if itemToCase.Parent != LevelCase || itemToCase.Child != LevelItem {
		t.Fatalf("unexpected first pairing: %s <- %s", itemToCase.Parent, itemToCase.Child)
	}
	if len(itemToCase.Groups) != 5 {
		t.Fatalf("expected 5 case groups, got %d", len(itemToCase.Groups))
	}
	for i, group := range itemToCase.Groups {
		if len(group.ChildKeys) != 10 {
			t.Fatalf("case group %d: expected 10 items, got %d", i, len(group.ChildKeys))
		}
	}
	// Contiguous consumption: the first case takes the first ten item keys.
	items, _ := h.Level(LevelItem)
	if itemToCase.Groups[0].ChildKeys[0] != items.Keys[0] || itemToCase.Groups[0].ChildKeys[9] != items.Keys[9] {
		t.Fatalf("first case group must take items 1-10 in order")
	}
	if itemToCase.Groups[1].ChildKeys[0] != items.Keys[10] {
		t.Fatalf("second case group must start at item 11")
	}

	caseToSSCC := h.Pairings[1]
	if caseToSSCC.Parent != LevelSSCC || len(caseToSSCC.Groups) != 1 || len(caseToSSCC.Groups[0].ChildKeys) != 5 {
		t.Fatalf("unexpected case->sscc pairing: %+v", caseToSSCC)
	}
}

func TestBuildHierarchy_DirectPacking(t *testing.T) {
	cfg := testConfig()
	cfg.CasesPerSSCC = 0
	h, err := BuildHierarchy(cfg, testSerials(cfg))
	if err != nil {
		t.Fatalf("build hierarchy: %v", err)
	}

	if len(h.Levels) != 2 {
		t.Fatalf("expected item + sscc levels, got %d", len(h.Levels))
	}
	if _, ok := h.Level(LevelCase); ok {
		t.Fatalf("case level must be absent when casesPerSscc is 0")
	}
	if len(h.Pairings) != 1 {
		t.Fatalf("expected single direct pairing, got %d", len(h.Pairings))
	}
	direct := h.Pairings[0]
	if direct.Parent != LevelSSCC || direct.Child != LevelItem {
		t.Fatalf("expected sscc <- item pairing, got %s <- %s", direct.Parent, direct.Child)
	}
	if len(direct.Groups) != 1 || len(direct.Groups[0].ChildKeys) != 10 {
		t.Fatalf("expected 1 group of 10 items, got %+v", direct.Groups)
	}
	if !strings.HasPrefix(direct.Groups[0].ParentKey, "urn:epc:id:sscc:") {
		t.Fatalf("direct parent must be an SSCC key, got %s", direct.Groups[0].ParentKey)
	}
}

func TestBuildHierarchy_FourLevel(t *testing.T) {
	cfg := testConfig()
	cfg.InnerCasesEnabled = true
	cfg.CasesPerSSCC = 2
	cfg.InnerCasesPerCase = 3
	cfg.ItemsPerInnerCase = 4
	h, err := BuildHierarchy(cfg, testSerials(cfg))
	if err != nil {
		t.Fatalf("build hierarchy: %v", err)
	}

	if len(h.Levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(h.Levels))
	}
	order := []LevelKind{LevelItem, LevelInnerCase, LevelCase, LevelSSCC}
	for i, kind := range order {
		if h.Levels[i].Kind != kind {
			t.Fatalf("expected level %d to be %s, got %s", i, kind, h.Levels[i].Kind)
		}
	}
	inner, _ := h.Level(LevelInnerCase)
	if len(inner.Keys) != 6 {
		t.Fatalf("expected 6 inner cases, got %d", len(inner.Keys))
	}
	items, _ := h.Level(LevelItem)
	if len(items.Keys) != 24 {
		t.Fatalf("expected 24 items, got %d", len(items.Keys))
	}
	if len(h.Pairings) != 3 {
		t.Fatalf("expected 3 pairings, got %d", len(h.Pairings))
	}
	// 6 inner groups + 2 case groups + 1 sscc group.
	total := 0
	for _, pairing := range h.Pairings {
		total += len(pairing.Groups)
	}
	if total != 9 {
		t.Fatalf("expected 9 parent groups, got %d", total)
	}
}

func TestBuildHierarchy_CountMismatch(t *testing.T) {
	cfg := testConfig()
	set := testSerials(cfg)
	set.Item = set.Item[:len(set.Item)-1]
	_, err := BuildHierarchy(cfg, set)
	if err == nil {
		t.Fatalf("expected count mismatch")
	}
	genErr, ok := err.(*Error)
	if !ok || genErr.Kind != KindCountMismatch {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
	if genErr.Field != "item" {
		t.Fatalf("expected offending field item, got %s", genErr.Field)
	}
}

func TestBuildHierarchy_CountsCheckedBeforeKeys(t *testing.T) {
	// A broken identity must not surface when the counts are already wrong:
	// fail fast before any key building.
	cfg := testConfig()
	cfg.Item.IndicatorDigit = ""
	set := testSerials(cfg)
	set.Case = nil
	_, err := BuildHierarchy(cfg, set)
	if kind, _ := KindOf(err); kind != KindCountMismatch {
		t.Fatalf("expected count mismatch before key building, got %v", err)
	}
}

func TestBuildHierarchy_InvalidHierarchy(t *testing.T) {
	cfg := testConfig()
	cfg.InnerCasesEnabled = true
	cfg.InnerCasesPerCase = 0
	_, err := BuildHierarchy(cfg, testSerials(cfg))
	if kind, _ := KindOf(err); kind != KindInvalidHierarchy {
		t.Fatalf("expected invalid hierarchy, got %v", err)
	}

	cfg = testConfig()
	cfg.NumberOfSSCC = 0
	_, err = BuildHierarchy(cfg, SerialNumberSet{})
	if kind, _ := KindOf(err); kind != KindInvalidHierarchy {
		t.Fatalf("expected invalid hierarchy for zero SSCCs, got %v", err)
	}
}
