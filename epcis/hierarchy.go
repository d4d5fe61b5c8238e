package epcis

// Level is one active hierarchy level with its serials and built keys,
// in consumption order. A level that is not part of the configured
// hierarchy simply does not appear; builders never see optional fields.
type Level struct {
	Kind    LevelKind
	Serials []string
	Keys    []string
}

// Group assigns a contiguous slice of child keys to one parent key.
type Group struct {
	ParentKey string
	ChildKeys []string
}

// Pairing is the parent/child aggregation relationship between two
// adjacent active levels.
type Pairing struct {
	Parent LevelKind
	Child  LevelKind
	Groups []Group
}

// Hierarchy is the fully partitioned packaging tree. Levels are ordered
// smallest unit first (Item, [Inner Case], [Case], SSCC) and every
// downstream builder iterates this same order.
type Hierarchy struct {
	Levels   []Level
	Pairings []Pairing
}

// Level returns the active level of the given kind, if present.
func (h *Hierarchy) Level(kind LevelKind) (Level, bool) {
	for _, lvl := range h.Levels {
		if lvl.Kind == kind {
			return lvl, true
		}
	}
	return Level{}, false
}

// BuildHierarchy validates the configuration and serial counts, builds all
// GS1 keys, and partitions each child level into per-parent groups.
// Validation is fail-fast: counts are checked before any key is built so a
// partial document can never be produced.
func BuildHierarchy(cfg Configuration, set SerialNumberSet) (*Hierarchy, error) {
	if err := checkShape(cfg); err != nil {
		return nil, err
	}
	if err := checkCounts(cfg, set); err != nil {
		return nil, err
	}

	levels, err := buildLevels(cfg, set)
	if err != nil {
		return nil, err
	}

	h := &Hierarchy{Levels: levels}
	keys := make(map[LevelKind][]string, len(levels))
	for _, lvl := range levels {
		keys[lvl.Kind] = lvl.Keys
	}

	switch {
	case cfg.InnerCasesEnabled:
		h.Pairings = []Pairing{
			pairing(LevelInnerCase, keys[LevelInnerCase], LevelItem, keys[LevelItem], cfg.ItemsPerInnerCase),
			pairing(LevelCase, keys[LevelCase], LevelInnerCase, keys[LevelInnerCase], cfg.InnerCasesPerCase),
			pairing(LevelSSCC, keys[LevelSSCC], LevelCase, keys[LevelCase], cfg.CasesPerSSCC),
		}
	case cfg.CasesPerSSCC > 0:
		h.Pairings = []Pairing{
			pairing(LevelCase, keys[LevelCase], LevelItem, keys[LevelItem], cfg.ItemsPerCase),
			pairing(LevelSSCC, keys[LevelSSCC], LevelCase, keys[LevelCase], cfg.CasesPerSSCC),
		}
	default:
		// Direct item-to-pallet packing: no case level exists at all.
		h.Pairings = []Pairing{
			pairing(LevelSSCC, keys[LevelSSCC], LevelItem, keys[LevelItem], cfg.ItemsPerCase),
		}
	}
	return h, nil
}

func checkShape(cfg Configuration) error {
	if cfg.NumberOfSSCC <= 0 {
		return invalidHierarchy("numberOfSscc", "at least one SSCC is required, got %d", cfg.NumberOfSSCC)
	}
	if cfg.InnerCasesEnabled {
		if cfg.CasesPerSSCC <= 0 {
			return invalidHierarchy("casesPerSscc", "inner cases require a case level, got casesPerSscc=%d", cfg.CasesPerSSCC)
		}
		if cfg.InnerCasesPerCase <= 0 {
			return invalidHierarchy("innerCasesPerCase", "inner cases enabled with fan-out %d", cfg.InnerCasesPerCase)
		}
		if cfg.ItemsPerInnerCase <= 0 {
			return invalidHierarchy("itemsPerInnerCase", "inner cases enabled with fan-out %d", cfg.ItemsPerInnerCase)
		}
		return nil
	}
	if cfg.ItemsPerCase <= 0 {
		return invalidHierarchy("itemsPerCase", "item fan-out must be positive, got %d", cfg.ItemsPerCase)
	}
	return nil
}

func checkCounts(cfg Configuration, set SerialNumberSet) error {
	if len(set.SSCC) != cfg.NumberOfSSCC {
		return countMismatch("sscc", "expected %d SSCC serials, got %d", cfg.NumberOfSSCC, len(set.SSCC))
	}

	wantCases := cfg.NumberOfSSCC * cfg.CasesPerSSCC
	if len(set.Case) != wantCases {
		return countMismatch("case", "expected %d case serials, got %d", wantCases, len(set.Case))
	}

	wantInner := 0
	wantItems := 0
	if cfg.InnerCasesEnabled {
		wantInner = wantCases * cfg.InnerCasesPerCase
		wantItems = wantInner * cfg.ItemsPerInnerCase
	} else if cfg.CasesPerSSCC > 0 {
		wantItems = wantCases * cfg.ItemsPerCase
	} else {
		wantItems = cfg.NumberOfSSCC * cfg.ItemsPerCase
	}
	if len(set.InnerCase) != wantInner {
		return countMismatch("innerCase", "expected %d inner case serials, got %d", wantInner, len(set.InnerCase))
	}
	if len(set.Item) != wantItems {
		return countMismatch("item", "expected %d item serials, got %d", wantItems, len(set.Item))
	}
	return nil
}

// buildLevels produces the ordered active-level list with keys built for
// every serial. Order: Item, [Inner Case], [Case], SSCC.
func buildLevels(cfg Configuration, set SerialNumberSet) ([]Level, error) {
	levels := make([]Level, 0, 4)

	add := func(kind LevelKind, serials []string) error {
		keys := make([]string, len(serials))
		for i, serial := range serials {
			key, err := BuildKey(kind, cfg, serial)
			if err != nil {
				return err
			}
			keys[i] = key
		}
		levels = append(levels, Level{Kind: kind, Serials: serials, Keys: keys})
		return nil
	}

	if err := add(LevelItem, set.Item); err != nil {
		return nil, err
	}
	if cfg.InnerCasesEnabled {
		if err := add(LevelInnerCase, set.InnerCase); err != nil {
			return nil, err
		}
	}
	if cfg.CasesPerSSCC > 0 {
		if err := add(LevelCase, set.Case); err != nil {
			return nil, err
		}
	}
	if err := add(LevelSSCC, set.SSCC); err != nil {
		return nil, err
	}
	return levels, nil
}

// pairing slices childKeys into fixed-size contiguous groups, one per
// parent, in list order. Counts were validated up front so the slices are
// exhaustive and non-overlapping.
func pairing(parent LevelKind, parentKeys []string, child LevelKind, childKeys []string, fanout int) Pairing {
	groups := make([]Group, len(parentKeys))
	for i, parentKey := range parentKeys {
		groups[i] = Group{
			ParentKey: parentKey,
			ChildKeys: childKeys[i*fanout : (i+1)*fanout],
		}
	}
	return Pairing{Parent: parent, Child: child, Groups: groups}
}
