package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/taxonomy"
)

// runState is the only mutable state of an allocation run. It is owned by
// the arrange call, so concurrent runs never interfere.
type runState struct {
	placed      []domain.ProductVariant
	used        map[string]bool
	rowIndex    int
	lastHeroRow int
}

// presort orders the eligible pool: deprioritized items sink to the end,
// hero media floats up slightly so the bounded scans can reach it, then the
// base business comparator decides. The sort is stable, so equal items keep
// their synchronization order and runs stay deterministic.
func presort(pool []domain.ProductVariant, lowPriority map[string]bool) []domain.ProductVariant {
	sorted := make([]domain.ProductVariant, len(pool))
	copy(sorted, pool)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		aLow, bLow := lowPriority[a.GroupKey], lowPriority[b.GroupKey]
		if aLow != bLow {
			return bLow
		}

		aHero, bHero := a.Media.IsHero(), b.Media.IsHero()
		if aHero != bHero {
			return aHero
		}

		return baseLess(a, b)
	})
	return sorted
}

// baseLess is the business comparator: e-commerce stock descending, both
// rankings ascending, arrival recency descending with undated items last,
// store stock descending.
func baseLess(a, b domain.ProductVariant) bool {
	if a.StockEcommerce != b.StockEcommerce {
		return a.StockEcommerce > b.StockEcommerce
	}
	if a.RankAnalytics != b.RankAnalytics {
		return a.RankAnalytics < b.RankAnalytics
	}
	if a.RankStores != b.RankStores {
		return a.RankStores < b.RankStores
	}
	switch {
	case a.NewInDate != nil && b.NewInDate != nil:
		if !a.NewInDate.Equal(*b.NewInDate) {
			return a.NewInDate.After(*b.NewInDate)
		}
	case a.NewInDate != nil:
		return true
	case b.NewInDate != nil:
		return false
	}
	return a.StockStores > b.StockStores
}

// arrange runs the greedy row loop over an already partitioned eligible
// pool and returns the full pool reordered: allocated rows first, then any
// leftovers in presort order. Every pool item appears exactly once.
func arrange(pool []domain.ProductVariant, rules []domain.RowRule, lowPriority map[string]bool, opts Options) []domain.ProductVariant {
	pool = presort(pool, lowPriority)

	if len(rules) == 0 {
		rules = []domain.RowRule{{}}
	}

	st := &runState{
		placed: make([]domain.ProductVariant, 0, len(pool)),
		used:   make(map[string]bool, len(pool)),
		// Negative so the very first row can hold a hero.
		lastHeroRow: -opts.HeroSpacing,
	}

	for len(st.placed) < len(pool) {
		if st.rowIndex > len(pool)*opts.MaxRowFactor {
			break
		}

		rule := rules[st.rowIndex%len(rules)]
		requested := rule.RequestedTypes()
		rowStart := (len(st.placed) / domain.SlotsPerRow) * domain.SlotsPerRow
		rowHasHero := false

		for col := 0; col < domain.SlotsPerRow; col++ {
			if len(st.placed) >= len(pool) {
				break
			}

			row := st.placed[rowStart:]
			targetType := ""
			if col < len(requested) {
				targetType = requested[col]
			}

			idx := pickCandidate(pool, st, row, rule, targetType, col, lowPriority, opts)
			if idx < 0 {
				continue
			}

			c := pool[idx]
			st.placed = append(st.placed, c)
			st.used[c.GroupKey] = true
			if c.Media.IsHero() {
				rowHasHero = true
			}
		}

		if rowHasHero {
			st.lastHeroRow = st.rowIndex
		}
		st.rowIndex++
	}

	// Flush whatever the row loop never reached so coverage holds even
	// under pathological rule configurations.
	for _, c := range pool {
		if !st.used[c.GroupKey] {
			st.placed = append(st.placed, c)
		}
	}
	return st.placed
}

// pickCandidate runs the three-phase bounded search for one slot and
// returns the index of the best admissible pool item, or -1.
func pickCandidate(pool []domain.ProductVariant, st *runState, row []domain.ProductVariant, rule domain.RowRule, targetType string, col int, lowPriority map[string]bool, opts Options) int {
	w := opts.Weights
	bestIdx := -1
	bestScore := math.MinInt

	leftCategory := ""
	if len(row) > 0 {
		leftCategory = row[len(row)-1].Category
	}

	// Phase 1: exact garment-type match against the rule's requested type.
	if targetType != "" {
		checked := 0
		for i, c := range pool {
			if st.used[c.GroupKey] {
				continue
			}
			if checked >= opts.TypedWindow && bestIdx >= 0 {
				break
			}
			if !strings.EqualFold(c.GarmentType, targetType) {
				continue
			}
			checked++

			if !rowAdmits(row, c) {
				continue
			}

			score := w.demographic(rule.Age, rule.Gender, c) +
				w.harmony(row, c, lowPriority[c.GroupKey]) +
				w.strategicMedia(c, col, st.rowIndex-st.lastHeroRow, opts.HeroSpacing) +
				w.ScanBase - checked
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
	}

	// Phase 2: complementary fallback. Demographics become hard filters,
	// and the left neighbor's category may not repeat.
	if bestIdx < 0 && targetType != "" {
		intended := taxonomy.Category(targetType)
		checked := 0
		for i, c := range pool {
			if st.used[c.GroupKey] {
				continue
			}
			if checked >= opts.TypedWindow && bestIdx >= 0 {
				break
			}
			if rule.Age != "" && c.Age != rule.Age {
				continue
			}
			if rule.Gender != "" && c.Gender != rule.Gender {
				continue
			}
			checked++

			if !rowAdmits(row, c) {
				continue
			}
			if leftCategory != "" && c.Category == leftCategory {
				continue
			}

			complement := w.ComplementOther
			if c.Category == intended {
				complement = w.ComplementSame
			}

			score := complement +
				w.harmony(row, c, lowPriority[c.GroupKey]) +
				w.ScanBase - checked
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
	}

	// Phase 3: general fallback, handicapped so targeted picks outrank it.
	if bestIdx < 0 {
		checked := 0
		for i, c := range pool {
			if st.used[c.GroupKey] {
				continue
			}
			if checked > opts.FallbackWindow {
				break
			}
			checked++

			if !rowAdmits(row, c) {
				continue
			}

			score := w.demographic(rule.Age, rule.Gender, c) +
				w.harmony(row, c, lowPriority[c.GroupKey]) +
				w.FallbackPenalty
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
	}

	return bestIdx
}
