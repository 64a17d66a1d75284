package engine

// Weights is the scoring table of the arrangement engine. All values are
// signed contributions summed into a candidate's score; penalties are
// negative. The table is heuristic merchandising tuning, not algorithm
// structure, so it is overridable as a whole.
type Weights struct {
	// Vibe cohesion. The row leader (slot 0) sets the row's vibe.
	VibeClash      int // themed row, candidate carries a different strong theme
	VibeContinue   int // candidate continues the row's theme
	VibeLateTheme  int // versatile row, candidate would introduce a strong theme mid-row
	VibeRowStarter int // empty row, candidate starts it with a strong theme

	// Color blocking. Neutrals are light, dark, and denim.
	ColorMatch       int // candidate matches the row's dominant color
	ColorNeutralFill int // neutral candidate joins a color block
	ColorClash       int // second strong color against the dominant one
	ColorStoryStart  int // first strong color in a neutral row

	// CampaignMatch rewards joining an already placed campaign of the same name.
	CampaignMatch int

	// Outfit complementarity.
	OutfitPair  int // top next to bottom or bottom next to top
	OutfitShoes int // shoes next to a top or full-body item

	// LowPriority overrides everything else for deprioritized items.
	LowPriority int

	// Demographic fit against the row rule.
	AgeExact       int
	AgeAdjacent    int
	AgeFar         int
	AgeNoRule      int
	GenderMatch    int
	GenderUnisex   int
	GenderMismatch int

	// Strategic hero placement (video and campaign media).
	HeroVideoLead    int // video in slot 0 with enough rows since the last hero
	HeroCampaignLead int // campaign in slot 0 with enough rows since the last hero
	HeroTooClose     int // slot 0 but too soon after the previous hero row
	HeroSecondary    int // slot 2 or 3, the intercalated second visual
	HeroOffSlot      int // slot 1, wasted on a middle position
	ModelFiller      int // model shots are good fillers anywhere

	// ScanBase seeds the bonus favoring earlier positions in a bounded
	// scan; each candidate checked costs one point.
	ScanBase int

	// Complementary-fallback category scoring.
	ComplementSame  int // same normalized category as the requested type
	ComplementOther int // different category accepted as a substitute

	// FallbackPenalty handicaps untargeted picks so targeted ones win
	// whenever both exist.
	FallbackPenalty int
}

// DefaultWeights returns the canonical tuning.
func DefaultWeights() Weights {
	return Weights{
		VibeClash:      -10000,
		VibeContinue:   2000,
		VibeLateTheme:  -1000,
		VibeRowStarter: 500,

		ColorMatch:       3000,
		ColorNeutralFill: 500,
		ColorClash:       -5000,
		ColorStoryStart:  1000,

		CampaignMatch: 5000,

		OutfitPair:  1000,
		OutfitShoes: 800,

		LowPriority: -50000,

		AgeExact:       5000,
		AgeAdjacent:    2000,
		AgeFar:         500,
		AgeNoRule:      2000,
		GenderMatch:    3000,
		GenderUnisex:   1500,
		GenderMismatch: -10000,

		HeroVideoLead:    50000,
		HeroCampaignLead: 45000,
		HeroTooClose:     -20000,
		HeroSecondary:    5000,
		HeroOffSlot:      -5000,
		ModelFiller:      2000,

		ScanBase: 500,

		ComplementSame:  5000,
		ComplementOther: 2000,

		FallbackPenalty: -2000,
	}
}

// ReducedWeights returns the tuning of the legacy engine, which ordered by
// demographics and stock alone: the hard visual constraints still apply,
// but color, vibe, and outfit harmony contribute nothing.
func ReducedWeights() Weights {
	w := DefaultWeights()
	w.VibeClash = 0
	w.VibeContinue = 0
	w.VibeLateTheme = 0
	w.VibeRowStarter = 0
	w.ColorMatch = 0
	w.ColorNeutralFill = 0
	w.ColorClash = 0
	w.ColorStoryStart = 0
	w.OutfitPair = 0
	w.OutfitShoes = 0
	return w
}
