package engine

import (
	"github.com/vidriera/showcase/internal/domain"
)

// Visual composition limits for a row of four.
const (
	maxVisualsPerRow = 2
	maxVideosPerRow  = 1
)

// rowAdmits is the hard gate on visual composition: it reports whether the
// candidate may occupy the next slot of the row built so far. Non-visual
// candidates always pass. A violation rejects the candidate outright,
// whatever its score.
func rowAdmits(row []domain.ProductVariant, candidate domain.ProductVariant) bool {
	if !candidate.Media.IsVisual() {
		return true
	}

	// Never two visual items adjacent; a buffer product must sit between.
	if len(row) > 0 && row[len(row)-1].Media.IsVisual() {
		return false
	}

	visuals := 0
	for _, item := range row {
		if item.Media.IsVisual() {
			visuals++
		}
	}
	if visuals >= maxVisualsPerRow {
		return false
	}

	// A row shows one campaign only: a second campaign item must carry the
	// exact same campaign name.
	if candidate.Media == domain.MediaCampaign {
		for _, item := range row {
			if item.Media == domain.MediaCampaign && item.CampaignName != candidate.CampaignName {
				return false
			}
		}
	}

	if candidate.Media == domain.MediaVideo {
		videos := 0
		for _, item := range row {
			if item.Media == domain.MediaVideo {
				videos++
			}
		}
		if videos >= maxVideosPerRow {
			return false
		}
	}

	return true
}
