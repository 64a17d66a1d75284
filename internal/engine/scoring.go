package engine

import (
	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/taxonomy"
)

// harmony scores the visual and style cohesion of a candidate against the
// row built so far: vibe continuity, color blocking, campaign grouping, and
// outfit complementarity. A deprioritized candidate gets the overriding
// low-priority penalty on top of everything else.
func (w Weights) harmony(row []domain.ProductVariant, c domain.ProductVariant, isLowPriority bool) int {
	score := 0

	if len(row) > 0 {
		mainVibe := row[0].Vibe
		if mainVibe != taxonomy.VibeCasualChic {
			// The row is strongly themed; enforce it.
			if c.Vibe == mainVibe {
				score += w.VibeContinue
			} else if c.Vibe != taxonomy.VibeCasualChic {
				score += w.VibeClash
			}
		} else if c.Vibe != taxonomy.VibeCasualChic {
			// A versatile row resists strong themes arriving mid-row.
			score += w.VibeLateTheme
		}
	} else if c.Vibe != taxonomy.VibeCasualChic {
		score += w.VibeRowStarter
	}

	candidateNeutral := taxonomy.IsNeutralColor(c.ColorFamily)
	dominant := ""
	for _, item := range row {
		if !taxonomy.IsNeutralColor(item.ColorFamily) && item.ColorFamily != taxonomy.ColorUnknown {
			dominant = item.ColorFamily
			break
		}
	}
	if dominant != "" {
		switch {
		case c.ColorFamily == dominant:
			score += w.ColorMatch
		case candidateNeutral:
			score += w.ColorNeutralFill
		default:
			score += w.ColorClash
		}
	} else if !candidateNeutral && c.ColorFamily != taxonomy.ColorUnknown {
		score += w.ColorStoryStart
	}

	if c.Media == domain.MediaCampaign {
		for _, item := range row {
			if item.CampaignName == c.CampaignName {
				score += w.CampaignMatch
				break
			}
		}
	}

	hasCategory := func(cat string) bool {
		for _, item := range row {
			if item.Category == cat {
				return true
			}
		}
		return false
	}
	if c.Category == taxonomy.CategoryTop && hasCategory(taxonomy.CategoryBottom) {
		score += w.OutfitPair
	}
	if c.Category == taxonomy.CategoryBottom && hasCategory(taxonomy.CategoryTop) {
		score += w.OutfitPair
	}
	if c.Category == taxonomy.CategoryShoes &&
		(hasCategory(taxonomy.CategoryTop) || hasCategory(taxonomy.CategoryFullBody)) {
		score += w.OutfitShoes
	}

	if isLowPriority {
		score += w.LowPriority
	}

	return score
}

// ageProximity scores a candidate's age group against the rule's target
// over the BEBE <-> TODDLER <-> KIDS ladder: exact match best, adjacent
// rungs partial, distant rungs a token amount.
func (w Weights) ageProximity(target, candidate string) int {
	if target == "" || candidate == "" {
		return 0
	}
	if target == candidate {
		return w.AgeExact
	}

	switch target {
	case domain.AgeBebe:
		if candidate == domain.AgeToddler {
			return w.AgeAdjacent
		}
		if candidate == domain.AgeKids {
			return w.AgeFar
		}
	case domain.AgeToddler:
		if candidate == domain.AgeBebe || candidate == domain.AgeKids {
			return w.AgeAdjacent
		}
	case domain.AgeKids:
		if candidate == domain.AgeToddler {
			return w.AgeAdjacent
		}
		if candidate == domain.AgeBebe {
			return w.AgeFar
		}
	}
	return 0
}

// demographic scores the candidate against the rule's age and gender
// targeting. Gender match beats unisex beats mismatch; an absent rule
// dimension is neutral, not penalizing.
func (w Weights) demographic(ruleAge, ruleGender string, c domain.ProductVariant) int {
	score := 0

	if ruleAge != "" {
		score += w.ageProximity(ruleAge, c.Age)
	} else {
		score += w.AgeNoRule
	}

	switch {
	case ruleGender == "" || ruleGender == c.Gender:
		score += w.GenderMatch
	case c.Gender == domain.GenderUnisex || ruleGender == domain.GenderUnisex:
		score += w.GenderUnisex
	default:
		score += w.GenderMismatch
	}

	return score
}

// strategicMedia scores hero placement: heroes belong in slot 0, spaced at
// least minSpacing rows from the previous hero row, or in slots 2-3 as the
// row's intercalated second visual. Model shots get a flat filler bonus.
func (w Weights) strategicMedia(c domain.ProductVariant, col, rowsSinceLastHero, minSpacing int) int {
	score := 0

	if c.Media.IsHero() {
		switch {
		case col == 0:
			if rowsSinceLastHero >= minSpacing {
				if c.Media == domain.MediaVideo {
					score += w.HeroVideoLead
				} else {
					score += w.HeroCampaignLead
				}
			} else {
				score += w.HeroTooClose
			}
		case col >= 2:
			score += w.HeroSecondary
		default:
			score += w.HeroOffSlot
		}
	}

	if c.Media == domain.MediaModel {
		score += w.ModelFiller
	}

	return score
}
