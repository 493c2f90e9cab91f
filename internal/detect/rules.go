package detect

// DimensionRange is an inclusive min/max interval in meters.
type DimensionRange struct {
	Min float64
	Max float64
}

// Contains reports whether v falls inside the inclusive range.
func (r DimensionRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Rule describes how one fixture type is recognized: by lowercase keyword
// substrings in the object name, and by typical real-world dimension ranges.
type Rule struct {
	Type     FixtureType
	Keywords []string
	Width    DimensionRange
	Height   DimensionRange
	Depth    DimensionRange
}

// DefaultRules returns the built-in fixture detection rules. Slice order is
// the resolution order: keyword matching returns the first rule with any
// matching keyword, and dimension-score ties resolve to the earliest rule.
func DefaultRules() []Rule {
	return []Rule{
		{
			Type:     FixtureToilet,
			Keywords: []string{"toilet", "wc", "water closet", "commode", "lavatory"},
			Width:    DimensionRange{0.35, 0.45},
			Height:   DimensionRange{0.4, 0.8},
			Depth:    DimensionRange{0.5, 0.75},
		},
		{
			Type:     FixtureSink,
			Keywords: []string{"sink", "washbasin", "basin", "lavabo", "hand basin"},
			Width:    DimensionRange{0.4, 0.8},
			Height:   DimensionRange{0.15, 0.25},
			Depth:    DimensionRange{0.4, 0.6},
		},
		{
			Type:     FixtureFaucet,
			Keywords: []string{"faucet", "tap", "mixer", "valve", "spout"},
			Width:    DimensionRange{0.05, 0.15},
			Height:   DimensionRange{0.15, 0.35},
			Depth:    DimensionRange{0.05, 0.15},
		},
		{
			Type:     FixtureShower,
			Keywords: []string{"shower", "douche", "shower head", "rain shower"},
			Width:    DimensionRange{0.15, 0.25},
			Height:   DimensionRange{0.15, 0.3},
			Depth:    DimensionRange{0.05, 0.15},
		},
		{
			Type:     FixtureBathtub,
			Keywords: []string{"bathtub", "bath", "tub", "baignoire", "jacuzzi"},
			Width:    DimensionRange{0.7, 0.9},
			Height:   DimensionRange{0.4, 0.6},
			Depth:    DimensionRange{1.4, 1.8},
		},
		{
			Type:     FixtureBidet,
			Keywords: []string{"bidet"},
			Width:    DimensionRange{0.35, 0.45},
			Height:   DimensionRange{0.35, 0.45},
			Depth:    DimensionRange{0.5, 0.65},
		},
		{
			Type:     FixtureUrinal,
			Keywords: []string{"urinal", "urinals", "wall urinal"},
			Width:    DimensionRange{0.3, 0.45},
			Height:   DimensionRange{0.45, 0.65},
			Depth:    DimensionRange{0.3, 0.4},
		},
		{
			Type:     FixtureWashbasin,
			Keywords: []string{"washbasin", "wash basin", "pedestal basin"},
			Width:    DimensionRange{0.45, 0.65},
			Height:   DimensionRange{0.15, 0.25},
			Depth:    DimensionRange{0.45, 0.55},
		},
		{
			Type:     FixtureShowerTray,
			Keywords: []string{"shower tray", "shower base", "shower pan", "receveur"},
			Width:    DimensionRange{0.7, 1.2},
			Height:   DimensionRange{0.05, 0.15},
			Depth:    DimensionRange{0.7, 1.2},
		},
		{
			Type:     FixtureShowerCabin,
			Keywords: []string{"shower cabin", "shower enclosure", "shower cubicle", "cabine"},
			Width:    DimensionRange{0.8, 1.2},
			Height:   DimensionRange{1.9, 2.3},
			Depth:    DimensionRange{0.8, 1.2},
		},
		{
			Type:     FixtureAccessories,
			Keywords: []string{"towel", "holder", "rack", "dispenser", "mirror", "shelf"},
			Width:    DimensionRange{0.1, 0.5},
			Height:   DimensionRange{0.05, 0.5},
			Depth:    DimensionRange{0.05, 0.3},
		},
		{
			Type:     FixtureOther,
			Keywords: nil, // never matched by name
			Width:    DimensionRange{0.1, 2},
			Height:   DimensionRange{0.1, 2},
			Depth:    DimensionRange{0.1, 2},
		},
	}
}
