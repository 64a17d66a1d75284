package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/taxonomy"
)

func styled(vibe, colorFamily, category string) domain.ProductVariant {
	return domain.ProductVariant{
		Media:       domain.MediaProduct,
		Vibe:        vibe,
		ColorFamily: colorFamily,
		Category:    category,
	}
}

// --- vibe cohesion ---

func TestHarmony_ThemedRowRewardsContinuation(t *testing.T) {
	w := DefaultWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeBeach, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)}

	same := styled(taxonomy.VibeBeach, taxonomy.ColorNeutralLight, taxonomy.CategoryBottom)
	clash := styled(taxonomy.VibeFormal, taxonomy.ColorNeutralLight, taxonomy.CategoryBottom)
	versatile := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryBottom)

	sameScore := w.harmony(row, same, false)
	clashScore := w.harmony(row, clash, false)
	versatileScore := w.harmony(row, versatile, false)

	assert.Greater(t, sameScore, versatileScore)
	assert.Greater(t, versatileScore, clashScore, "a clashing theme scores below a neutral candidate")
	assert.LessOrEqual(t, clashScore, w.VibeClash+w.OutfitPair, "clash penalty dominates")
}

func TestHarmony_VersatileRowResistsLateThemes(t *testing.T) {
	w := DefaultWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)}

	themed := styled(taxonomy.VibeBeach, taxonomy.ColorNeutralLight, taxonomy.CategoryAccessory)
	plain := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryAccessory)

	assert.Equal(t, w.VibeLateTheme, w.harmony(row, themed, false)-w.harmony(row, plain, false))
}

func TestHarmony_EmptyRowRewardsStrongStarter(t *testing.T) {
	w := DefaultWeights()
	themed := styled(taxonomy.VibeFormal, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)
	plain := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)

	assert.Equal(t, w.VibeRowStarter, w.harmony(nil, themed, false)-w.harmony(nil, plain, false))
}

// --- color blocking ---

func TestHarmony_ColorBlock(t *testing.T) {
	w := DefaultWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeCasualChic, taxonomy.ColorPink, taxonomy.CategoryTop)}

	match := styled(taxonomy.VibeCasualChic, taxonomy.ColorPink, taxonomy.CategoryAccessory)
	neutral := styled(taxonomy.VibeCasualChic, taxonomy.ColorDenim, taxonomy.CategoryAccessory)
	clash := styled(taxonomy.VibeCasualChic, taxonomy.ColorGreen, taxonomy.CategoryAccessory)

	assert.Equal(t, w.ColorMatch, w.harmony(row, match, false))
	assert.Equal(t, w.ColorNeutralFill, w.harmony(row, neutral, false))
	assert.Equal(t, w.ColorClash, w.harmony(row, clash, false))
}

func TestHarmony_NeutralRowRewardsFirstColor(t *testing.T) {
	w := DefaultWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralDark, taxonomy.CategoryTop)}

	color := styled(taxonomy.VibeCasualChic, taxonomy.ColorRed, taxonomy.CategoryAccessory)
	neutral := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryAccessory)
	unknown := styled(taxonomy.VibeCasualChic, taxonomy.ColorUnknown, taxonomy.CategoryAccessory)

	assert.Equal(t, w.ColorStoryStart, w.harmony(row, color, false))
	assert.Zero(t, w.harmony(row, neutral, false))
	assert.Zero(t, w.harmony(row, unknown, false), "an unknown color never starts a color story")
}

// --- outfit complementarity and campaign grouping ---

func TestHarmony_OutfitPairs(t *testing.T) {
	w := DefaultWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)}

	bottom := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryBottom)
	shoes := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryShoes)
	top := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)

	assert.Equal(t, w.OutfitPair, w.harmony(row, bottom, false))
	assert.Equal(t, w.OutfitShoes, w.harmony(row, shoes, false))
	assert.Zero(t, w.harmony(row, top, false), "a second top earns nothing")
}

func TestHarmony_CampaignMatchBonus(t *testing.T) {
	w := DefaultWeights()
	inCampaign := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryTop)
	inCampaign.Media = domain.MediaCampaign
	inCampaign.CampaignName = "VERANO26"

	row := []domain.ProductVariant{inCampaign, product()}

	joiner := styled(taxonomy.VibeCasualChic, taxonomy.ColorNeutralLight, taxonomy.CategoryBottom)
	joiner.Media = domain.MediaCampaign
	joiner.CampaignName = "VERANO26"

	withBonus := w.harmony(row, joiner, false)
	joiner.CampaignName = "OTRA"
	withoutBonus := w.harmony(row, joiner, false)

	assert.Equal(t, w.CampaignMatch, withBonus-withoutBonus)
}

func TestHarmony_LowPriorityOverridesEverything(t *testing.T) {
	w := DefaultWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeBeach, taxonomy.ColorPink, taxonomy.CategoryTop)}
	perfect := styled(taxonomy.VibeBeach, taxonomy.ColorPink, taxonomy.CategoryBottom)

	assert.Negative(t, w.harmony(row, perfect, true))
}

// --- demographics ---

func TestAgeProximity(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, w.AgeExact, w.ageProximity(domain.AgeKids, domain.AgeKids))
	assert.Equal(t, w.AgeAdjacent, w.ageProximity(domain.AgeKids, domain.AgeToddler))
	assert.Equal(t, w.AgeFar, w.ageProximity(domain.AgeKids, domain.AgeBebe))
	assert.Equal(t, w.AgeAdjacent, w.ageProximity(domain.AgeBebe, domain.AgeToddler))
	assert.Equal(t, w.AgeFar, w.ageProximity(domain.AgeBebe, domain.AgeKids))
	assert.Equal(t, w.AgeAdjacent, w.ageProximity(domain.AgeToddler, domain.AgeBebe))
	assert.Equal(t, w.AgeAdjacent, w.ageProximity(domain.AgeToddler, domain.AgeKids))
	assert.Zero(t, w.ageProximity("", domain.AgeKids))
	assert.Zero(t, w.ageProximity(domain.AgeKids, ""))
	assert.Zero(t, w.ageProximity(domain.AgeKids, "Sin Edad"))
}

func TestDemographic_GenderWaterfall(t *testing.T) {
	w := DefaultWeights()
	girl := domain.ProductVariant{Gender: domain.GenderFemenino}
	boy := domain.ProductVariant{Gender: domain.GenderMasculino}
	unisex := domain.ProductVariant{Gender: domain.GenderUnisex}

	match := w.demographic("", domain.GenderFemenino, girl)
	fallback := w.demographic("", domain.GenderFemenino, unisex)
	mismatch := w.demographic("", domain.GenderFemenino, boy)

	assert.Greater(t, match, fallback)
	assert.Greater(t, fallback, mismatch)
	assert.Negative(t, mismatch-w.AgeNoRule, "a wrong gender outweighs the neutral age bonus")
}

func TestDemographic_NoRuleIsNeutral(t *testing.T) {
	w := DefaultWeights()
	v := domain.ProductVariant{Age: domain.AgeKids, Gender: domain.GenderFemenino}

	assert.Equal(t, w.AgeNoRule+w.GenderMatch, w.demographic("", "", v))
}

func TestDemographic_UnisexRuleMatchesUnisexExactly(t *testing.T) {
	w := DefaultWeights()
	unisex := domain.ProductVariant{Gender: domain.GenderUnisex}
	girl := domain.ProductVariant{Gender: domain.GenderFemenino}

	assert.Equal(t, w.AgeNoRule+w.GenderMatch, w.demographic("", domain.GenderUnisex, unisex))
	assert.Equal(t, w.AgeNoRule+w.GenderUnisex, w.demographic("", domain.GenderUnisex, girl))
}

// --- strategic media ---

func TestStrategicMedia_LeadSlotWithSpacing(t *testing.T) {
	w := DefaultWeights()
	video := domain.ProductVariant{Media: domain.MediaVideo}
	campaign := domain.ProductVariant{Media: domain.MediaCampaign}

	assert.Equal(t, w.HeroVideoLead, w.strategicMedia(video, 0, 2, 2))
	assert.Equal(t, w.HeroCampaignLead, w.strategicMedia(campaign, 0, 3, 2))
	assert.Greater(t, w.HeroVideoLead, w.HeroCampaignLead, "videos outrank campaigns for the lead slot")
}

func TestStrategicMedia_TooCloseToLastHeroRow(t *testing.T) {
	w := DefaultWeights()
	video := domain.ProductVariant{Media: domain.MediaVideo}

	assert.Equal(t, w.HeroTooClose, w.strategicMedia(video, 0, 1, 2))
}

func TestStrategicMedia_SecondaryAndOffSlots(t *testing.T) {
	w := DefaultWeights()
	campaign := domain.ProductVariant{Media: domain.MediaCampaign}

	assert.Equal(t, w.HeroSecondary, w.strategicMedia(campaign, 2, 0, 2))
	assert.Equal(t, w.HeroSecondary, w.strategicMedia(campaign, 3, 0, 2))
	assert.Equal(t, w.HeroOffSlot, w.strategicMedia(campaign, 1, 5, 2))
}

func TestStrategicMedia_ModelFillerAndPlainProduct(t *testing.T) {
	w := DefaultWeights()
	model := domain.ProductVariant{Media: domain.MediaModel}
	plain := domain.ProductVariant{Media: domain.MediaProduct}

	assert.Equal(t, w.ModelFiller, w.strategicMedia(model, 1, 0, 2))
	assert.Zero(t, w.strategicMedia(plain, 0, 5, 2))
}

func TestReducedWeights_DisableHarmonyOnly(t *testing.T) {
	w := ReducedWeights()
	row := []domain.ProductVariant{styled(taxonomy.VibeBeach, taxonomy.ColorPink, taxonomy.CategoryTop)}
	clash := styled(taxonomy.VibeFormal, taxonomy.ColorGreen, taxonomy.CategoryTop)

	assert.Zero(t, w.harmony(row, clash, false), "reduced tuning scores no vibe or color harmony")
	assert.Equal(t, DefaultWeights().AgeExact, w.AgeExact, "demographics keep their weight")
	assert.Equal(t, DefaultWeights().LowPriority, w.LowPriority)
}
