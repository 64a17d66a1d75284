package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidriera/showcase/internal/domain"
)

func TestOrder_CoverageHolds(t *testing.T) {
	var variants []domain.ProductVariant
	for i := 0; i < 30; i++ {
		i := i
		variants = append(variants, sellable(fmt.Sprintf("K%02d", i), func(v *domain.ProductVariant) {
			switch i % 5 {
			case 0:
				v.HasStock = false // invalid
			case 1:
				v.GarmentType = "Ojota" // excluded below
			case 2:
				v.Title = "Prenda Basica Promo" // deprioritized below
			}
		}))
	}

	rs := domain.RuleSet{
		RowRules:            []domain.RowRule{{Age: domain.AgeKids}},
		ExcludedTypes:       []string{"OJOTA"},
		LowPriorityKeywords: []string{"PROMO"},
	}

	res := New(DefaultOptions()).Order(variants, rs)

	assert.Len(t, res.Ordered, len(variants))
	assert.Equal(t, len(variants), res.Arranged+res.Basic+res.Invalid+res.Excluded)

	seen := map[string]bool{}
	for _, v := range res.Ordered {
		assert.False(t, seen[v.GroupKey], "duplicate %s", v.GroupKey)
		seen[v.GroupKey] = true
	}
}

func TestOrder_GroupKeysUntouched(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("ABCDEFGHIJ"),
		sellable("ZYXWVUTSRQ", func(v *domain.ProductVariant) { v.HasPrice = false }),
	}

	res := New(DefaultOptions()).Order(variants, domain.RuleSet{})

	input := map[string]bool{"ABCDEFGHIJ": true, "ZYXWVUTSRQ": true}
	for _, v := range res.Ordered {
		assert.True(t, input[v.GroupKey], "output key %s not in input", v.GroupKey)
	}
}

func TestOrder_ExcludedTypesComeLast(t *testing.T) {
	// Scenario: OJOTA variants, valid or not, trail everything else.
	variants := []domain.ProductVariant{
		sellable("OJO1", func(v *domain.ProductVariant) { v.GarmentType = "OJOTA" }),
		sellable("VAL1"),
		sellable("INV1", func(v *domain.ProductVariant) { v.HasStock = false }),
		sellable("OJO2", func(v *domain.ProductVariant) {
			v.GarmentType = "Ojota"
			v.HasPrice = false
		}),
		sellable("BAS1", func(v *domain.ProductVariant) { v.Title = "Prenda Promo" }),
		sellable("VAL2"),
	}

	rs := domain.RuleSet{
		ExcludedTypes:       []string{"ojota"},
		LowPriorityKeywords: []string{"PROMO"},
	}
	res := New(DefaultOptions()).Order(variants, rs)
	require.Len(t, res.Ordered, 6)

	got := keys(res.Ordered)
	assert.Equal(t, []string{"OJO1", "OJO2"}, got[4:], "excluded variants close the sequence in input order")
	assert.Equal(t, "BAS1", got[2], "deprioritized bucket follows the arranged items")
	assert.Equal(t, "INV1", got[3], "invalid bucket follows the deprioritized one")
}

func TestOrder_InvalidNeverBeforeValid(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("INV1", func(v *domain.ProductVariant) {
			v.HasStock, v.HasPrice = false, false
			v.Title = "AAA primero por titulo"
		}),
		sellable("VAL1", func(v *domain.ProductVariant) { v.Title = "ZZZ ultimo por titulo" }),
	}

	res := New(DefaultOptions()).Order(variants, domain.RuleSet{})
	require.Len(t, res.Ordered, 2)
	assert.Equal(t, "VAL1", res.Ordered[0].GroupKey)
	assert.Equal(t, "INV1", res.Ordered[1].GroupKey)
}

func TestOrder_Determinism(t *testing.T) {
	var variants []domain.ProductVariant
	for i := 0; i < 25; i++ {
		i := i
		variants = append(variants, sellable(fmt.Sprintf("K%02d", i), func(v *domain.ProductVariant) {
			v.StockEcommerce = i % 4
			if i%6 == 0 {
				v.Media = domain.MediaVideo
			}
		}))
	}
	rs := domain.RuleSet{RowRules: []domain.RowRule{{Gender: domain.GenderFemenino, GarmentTypes: []string{"REMERA"}}}}

	eng := New(DefaultOptions())
	first := eng.Order(variants, rs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, keys(first.Ordered), keys(eng.Order(variants, rs).Ordered))
	}
}

// --- partition ---

func TestPartition_Buckets(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("ELI1"),
		sellable("EXC1", func(v *domain.ProductVariant) { v.GarmentType = "Gorro" }),
		sellable("INV1", func(v *domain.ProductVariant) { v.ImageURL = "" }),
		sellable("BAS1", func(v *domain.ProductVariant) { v.Title = "Remera Liquidacion" }),
	}

	rs := domain.RuleSet{
		ExcludedTypes:       []string{"GORRO"},
		LowPriorityKeywords: []string{"LIQUIDACION"},
	}
	b := partition(variants, rs, false)

	assert.Equal(t, []string{"ELI1"}, keys(b.eligible))
	assert.Equal(t, []string{"BAS1"}, keys(b.basic))
	assert.Equal(t, []string{"INV1"}, keys(b.invalid))
	assert.Equal(t, []string{"EXC1"}, keys(b.excluded))
	assert.Empty(t, b.lowPriority)
}

func TestPartition_ExclusionBeatsInvalidity(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("X", func(v *domain.ProductVariant) {
			v.GarmentType = "Ojota"
			v.HasStock = false
		}),
	}

	b := partition(variants, domain.RuleSet{ExcludedTypes: []string{"OJOTA"}}, false)
	assert.Len(t, b.excluded, 1)
	assert.Empty(t, b.invalid)
}

func TestPartition_CodeMatchDeprioritizes(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("ABCDEFGHIJ"), // commercial code ABCDEFGH
	}

	b := partition(variants, domain.RuleSet{LowPriorityKeywords: []string{"abcdefgh"}}, false)
	assert.Empty(t, b.eligible)
	assert.Equal(t, []string{"ABCDEFGHIJ"}, keys(b.basic))
}

func TestPartition_BasicAndInvalidSortedByTitle(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("B2", func(v *domain.ProductVariant) { v.Title = "Zeta Promo" }),
		sellable("B1", func(v *domain.ProductVariant) { v.Title = "Alfa Promo" }),
		sellable("I2", func(v *domain.ProductVariant) { v.Title = "Zeta"; v.HasStock = false }),
		sellable("I1", func(v *domain.ProductVariant) { v.Title = "Alfa"; v.HasStock = false }),
	}

	b := partition(variants, domain.RuleSet{LowPriorityKeywords: []string{"PROMO"}}, false)
	assert.Equal(t, []string{"B1", "B2"}, keys(b.basic))
	assert.Equal(t, []string{"I1", "I2"}, keys(b.invalid))
}

func TestPartition_LegacyModeKeepsDeprioritizedInPool(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("NORM"),
		sellable("LOW", func(v *domain.ProductVariant) { v.Title = "Remera Promo" }),
	}

	b := partition(variants, domain.RuleSet{LowPriorityKeywords: []string{"PROMO"}}, true)
	assert.Len(t, b.eligible, 2)
	assert.Empty(t, b.basic)
	assert.True(t, b.lowPriority["LOW"])
}

func TestOrder_LegacyModeSinksDeprioritized(t *testing.T) {
	variants := []domain.ProductVariant{
		sellable("LOW", func(v *domain.ProductVariant) {
			v.Title = "Remera Promo"
			v.StockEcommerce = 999
		}),
		sellable("NORM", func(v *domain.ProductVariant) { v.StockEcommerce = 1 }),
	}

	opts := DefaultOptions()
	opts.DeprioritizeInPool = true
	res := New(opts).Order(variants, domain.RuleSet{LowPriorityKeywords: []string{"PROMO"}})

	require.Len(t, res.Ordered, 2)
	assert.Equal(t, "NORM", res.Ordered[0].GroupKey, "penalty outweighs the stock advantage")
	assert.Equal(t, 2, res.Arranged)
	assert.Zero(t, res.Basic)
}
