package feed

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/taxonomy"
)

// Defaults applied when the representative row leaves a field blank.
const (
	defaultTitle       = "Sin Título"
	defaultGarmentType = "Sin Tipo"
	defaultAge         = "Sin Edad"
	defaultGender      = "Sin Género"
	defaultColor       = "Sin Color"
)

// Synchronize reconciles the two feeds into one ProductVariant per group
// key. Inventory rows are grouped by their group key with the `%` wrapper
// characters stripped; rows without a key are dropped. The first row of
// each group supplies the scalar fields, stocks are summed across the
// group, and validity flags hold if any row of the group satisfies them.
// A catalog match contributes image and description; a miss degrades to
// empty strings. Group order follows first appearance in the inventory
// feed, which keeps the output deterministic.
func Synchronize(catalog []CatalogEntry, inventory []InventoryRow) []domain.ProductVariant {
	// Duplicate catalog keys keep the last entry, matching how the feed
	// exporter resolves re-uploads.
	catalogByKey := make(map[string]CatalogEntry, len(catalog))
	for _, entry := range catalog {
		catalogByKey[entry.GroupKey] = entry
	}

	groups := make(map[string][]InventoryRow)
	var order []string
	for _, row := range inventory {
		key := strings.ReplaceAll(row.GroupKey, "%", "")
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	variants := make([]domain.ProductVariant, 0, len(order))
	for _, key := range order {
		rows := groups[key]
		rep := rows[0]

		hasStock, hasPrice := false, false
		stockEcommerce, stockStores := 0, 0
		for _, row := range rows {
			if row.StockEcommerce > 0 || row.StockStores > 0 {
				hasStock = true
			}
			if row.PriceCents > 0 {
				hasPrice = true
			}
			stockEcommerce += row.StockEcommerce
			stockStores += row.StockStores
		}

		media, campaignName := classifyMedia(rep)

		title := valueOr(rep.Title, defaultTitle)
		garmentType := valueOr(rep.GarmentType, defaultGarmentType)
		color := valueOr(rep.Color, defaultColor)

		entry := catalogByKey[key]

		variants = append(variants, domain.ProductVariant{
			GroupKey:       key,
			CommercialCode: rep.CommercialCode,
			Title:          title,
			Description:    entry.Description,
			ImageURL:       entry.ImageURL,
			Color:          color,
			Sizes:          collectSizes(rows),
			GarmentType:    garmentType,
			Age:            valueOr(rep.Age, defaultAge),
			Gender:         valueOr(rep.Gender, defaultGender),
			StockEcommerce: stockEcommerce,
			StockStores:    stockStores,
			RankAnalytics:  rep.RankAnalytics,
			RankStores:     rep.RankStores,
			NewInDate:      ParseNewInDate(rep.NewIn),
			FamilyName:     familyName(title, garmentType),
			Media:          media,
			CampaignName:   campaignName,
			HasStock:       hasStock,
			HasPrice:       hasPrice,
			ColorFamily:    taxonomy.ColorFamily(color),
			Category:       taxonomy.Category(garmentType),
			Vibe:           taxonomy.Vibe(title, garmentType),
		})
	}
	return variants
}

// classifyMedia picks the richest media reference present on the row:
// campaign photo over model photo over video over the plain product shot.
func classifyMedia(row InventoryRow) (domain.MediaType, string) {
	switch {
	case row.CampaignPhoto != "" && row.CampaignPhoto != NotAvailable:
		return domain.MediaCampaign, row.CampaignPhoto
	case row.ModelPhoto != "" && row.ModelPhoto != NotAvailable:
		return domain.MediaModel, ""
	case row.Video != "" && row.Video != NotAvailable:
		return domain.MediaVideo, ""
	default:
		return domain.MediaProduct, ""
	}
}

// collectSizes deduplicates and sorts the non-empty size labels of a group.
func collectSizes(rows []InventoryRow) []string {
	seen := make(map[string]bool, len(rows))
	sizes := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Size == "" || seen[row.Size] {
			continue
		}
		seen[row.Size] = true
		sizes = append(sizes, row.Size)
	}
	sort.Strings(sizes)
	return sizes
}

// familyName extracts a product family label from the title: the last word
// longer than two characters that is neither a number, a connective, nor
// the garment type itself.
func familyName(title, garmentType string) string {
	stop := map[string]bool{
		"DE": true, "Y": true, "A": true, "CON": true,
		"LA": true, "EL": true, "LOS": true, "LAS": true,
		"UN": true, "UNA": true,
		strings.ToUpper(garmentType): true,
	}

	last := ""
	for _, word := range strings.Fields(strings.ToUpper(title)) {
		if len(word) <= 2 || stop[word] {
			continue
		}
		if _, err := strconv.ParseFloat(word, 64); err == nil {
			continue
		}
		last = word
	}
	return last
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
