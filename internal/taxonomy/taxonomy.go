// Package taxonomy maps free-text product attributes from the feeds onto
// small canonical category sets. All three classifiers are first-match-wins
// lookups over ordered keyword tables; table order is a business decision
// and changing it changes results.
package taxonomy

import (
	"strings"
)

// Color families.
const (
	ColorNeutralLight = "NEUTRAL_LIGHT"
	ColorNeutralDark  = "NEUTRAL_DARK"
	ColorDenim        = "DENIM"
	ColorBlue         = "BLUE"
	ColorPink         = "PINK"
	ColorRed          = "RED"
	ColorGreen        = "GREEN"
	ColorYellow       = "YELLOW"
	ColorEarth        = "EARTH"
	ColorPurple       = "PURPLE"
	ColorOrange       = "ORANGE"
	ColorNeon         = "NEON"
	ColorOther        = "OTHER"
	ColorUnknown      = "UNKNOWN"
)

// Garment categories.
const (
	CategoryTop       = "TOP"
	CategoryBottom    = "BOTTOM"
	CategoryFullBody  = "FULL_BODY"
	CategoryOuterwear = "OUTERWEAR"
	CategoryShoes     = "SHOES"
	CategoryAccessory = "ACCESSORY"
)

// Style vibes.
const (
	VibeFormal      = "FORMAL"
	VibeBeach       = "BEACH"
	VibeCasualSport = "CASUAL_SPORT"
	VibeCasualChic  = "CASUAL_CHIC"
)

// keywordRule pairs a category with the substrings that select it.
type keywordRule struct {
	category string
	keywords []string
}

// Color names arrive in Spanish or English depending on which upstream team
// loaded the product. Neutrals come first so mixed names like
// "BLANCO Y AZUL" resolve as neutral.
var colorTable = []keywordRule{
	{ColorNeutralLight, []string{"BLANCO", "WHITE", "CRUDO", "MARFIL", "NATURAL"}},
	{ColorNeutralDark, []string{"NEGRO", "BLACK", "GRIS", "GREY", "MELANGE", "ACERO"}},
	{ColorDenim, []string{"JEAN", "DENIM", "INDIGO"}},
	{ColorBlue, []string{"AZUL", "BLUE", "MARINO", "CELESTE", "PETROLEO"}},
	{ColorPink, []string{"ROSA", "PINK", "FUCSIA", "SALMON", "MAGENTA"}},
	{ColorRed, []string{"ROJO", "RED", "BORDO", "RUBI"}},
	{ColorGreen, []string{"VERDE", "GREEN", "OLIVA", "MILITAR", "LIMA", "ESMERALDA"}},
	{ColorYellow, []string{"AMARILLO", "YELLOW", "MOSTAZA", "OCRE"}},
	{ColorEarth, []string{"BEIGE", "ARENA", "CAMEL", "MARRON", "TOSTADO", "CHOCOLATE"}},
	{ColorPurple, []string{"VIOLETA", "LILA", "PURPURA", "UVA"}},
	{ColorOrange, []string{"NARANJA", "ORANGE", "CORAL"}},
	{ColorNeon, []string{"FLUOR", "NEON"}},
}

var categoryTable = []keywordRule{
	{CategoryTop, []string{"REMERA", "BUZO", "CAMISA", "CHOMBA", "TOP", "CARDIGAN", "SWAETER", "SWEATER", "POLERA", "MUSCULOSA"}},
	{CategoryBottom, []string{"PANTALON", "JEAN", "SHORT", "POLLERA", "CALZA", "BERMUDA", "JOGGING", "FALDA"}},
	{CategoryFullBody, []string{"VESTIDO", "ENTERITO", "JARDINERO", "MONO"}},
	{CategoryOuterwear, []string{"CAMPERA", "CHALECO", "SACO", "MONTGO", "ABRIGO", "PARKA"}},
	{CategoryShoes, []string{"ZAPATILLA", "SANDALIA", "OJOTA", "BOTA", "CALZADO", "GUILLERMINA"}},
}

// Vibe priority: formal beats beach beats sport. A linen beach shirt reads
// formal before it reads beach.
var vibeTable = []keywordRule{
	{VibeFormal, []string{"LINO", "FIESTA", "SEDA", "VOILE", "VESTIR", "GASA", "ENCAJE", "PUNTILLA", "SATEEN"}},
	{VibeBeach, []string{"SUNNY", "PLAYA", "OJOTA", "MALLA", "BIKINI", "SHORTS DE BAÑO", "TRAJE DE BAÑO", "FLUOR", "NEON", "TOALLA", "LONITA"}},
	{VibeCasualSport, []string{"DEPORT", "JOGGING", "RUSTICO", "ACTIVE", "ALGODON", "BÁSICO", "BASICO", "SPORT"}},
}

func classify(text string, table []keywordRule, fallback string) string {
	upper := strings.ToUpper(text)
	for _, rule := range table {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.category
			}
		}
	}
	return fallback
}

// ColorFamily maps a free-text color name to its canonical family.
// Empty input yields UNKNOWN, an unmatched name yields OTHER.
func ColorFamily(color string) string {
	if color == "" {
		return ColorUnknown
	}
	return classify(color, colorTable, ColorOther)
}

// IsNeutralColor reports whether a color family reads as neutral for
// color-block purposes. Denim pairs with everything.
func IsNeutralColor(family string) bool {
	return family == ColorNeutralLight || family == ColorNeutralDark || family == ColorDenim
}

// Category maps a garment-type string to its canonical category.
// Anything unrecognized is an accessory.
func Category(garmentType string) string {
	return classify(garmentType, categoryTable, CategoryAccessory)
}

// Vibe classifies the combined title and garment-type text into a style vibe.
// CASUAL_CHIC is the versatile default when no themed keyword matches.
func Vibe(title, garmentType string) string {
	return classify(title+" "+garmentType, vibeTable, VibeCasualChic)
}
