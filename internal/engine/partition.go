package engine

import (
	"sort"
	"strings"

	"github.com/vidriera/showcase/internal/domain"
)

// buckets is the four-way split of the variant set performed before
// allocation. Only eligible feeds the allocator; the other buckets become
// the deterministic tail.
type buckets struct {
	eligible []domain.ProductVariant
	basic    []domain.ProductVariant
	invalid  []domain.ProductVariant
	excluded []domain.ProductVariant
	// lowPriority marks eligible items kept in the pool with a penalty
	// when DeprioritizeInPool is set.
	lowPriority map[string]bool
}

// partition classifies every variant: excluded garment types first, then
// variants missing stock, price, or an image, then keyword/code-matched
// deprioritized items, and finally the eligible pool. Basic and invalid
// buckets are sorted by title; excluded keeps input order.
func partition(variants []domain.ProductVariant, rs domain.RuleSet, deprioritizeInPool bool) buckets {
	exclusions := make(map[string]bool, len(rs.ExcludedTypes))
	for _, t := range rs.ExcludedTypes {
		exclusions[strings.ToLower(t)] = true
	}

	keywords := make([]string, 0, len(rs.LowPriorityKeywords))
	for _, k := range rs.LowPriorityKeywords {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keywords = append(keywords, strings.ToUpper(trimmed))
		}
	}

	b := buckets{lowPriority: make(map[string]bool)}
	for _, v := range variants {
		if exclusions[strings.ToLower(v.GarmentType)] {
			b.excluded = append(b.excluded, v)
			continue
		}
		if !v.IsSellable() {
			b.invalid = append(b.invalid, v)
			continue
		}
		if matchesLowPriority(v, keywords) {
			if deprioritizeInPool {
				b.lowPriority[v.GroupKey] = true
			} else {
				b.basic = append(b.basic, v)
				continue
			}
		}
		b.eligible = append(b.eligible, v)
	}

	byTitle := func(s []domain.ProductVariant) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Title < s[j].Title })
	}
	byTitle(b.basic)
	byTitle(b.invalid)

	return b
}

// matchesLowPriority reports whether the variant is deprioritized: a
// keyword appearing in its title, or a keyword equal to its commercial
// code or group key.
func matchesLowPriority(v domain.ProductVariant, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	title := strings.ToUpper(v.Title)
	code := strings.ToUpper(v.CommercialCode)
	key := strings.ToUpper(v.GroupKey)
	for _, kw := range keywords {
		if strings.Contains(title, kw) || kw == code || kw == key {
			return true
		}
	}
	return false
}
