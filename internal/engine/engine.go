// Package engine arranges synchronized product variants into a fixed-width
// merchandising grid. It is a pure, synchronous batch computation: one call
// takes the full variant set plus a rule set and returns a complete
// publish-ready ordering. Nothing inside the package does I/O or keeps
// state between runs.
package engine

import (
	"github.com/vidriera/showcase/internal/domain"
)

// Options bounds the allocator's search and carries the scoring table.
type Options struct {
	// TypedWindow bounds the candidate scans of the exact-type and
	// complementary phases. The scan extends past the window until at
	// least one candidate is found.
	TypedWindow int
	// FallbackWindow bounds the general-fallback scan.
	FallbackWindow int
	// HeroSpacing is the minimum number of rows between hero rows for a
	// lead-slot hero to score its full bonus.
	HeroSpacing int
	// MaxRowFactor caps the row loop at MaxRowFactor times the pool size,
	// guarding against rule configurations that starve every slot.
	MaxRowFactor int
	// DeprioritizeInPool keeps keyword-matched items inside the eligible
	// pool with a scoring penalty, the way the legacy engine did, instead
	// of moving them to the tail.
	DeprioritizeInPool bool

	Weights Weights
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		TypedWindow:    300,
		FallbackWindow: 100,
		HeroSpacing:    2,
		MaxRowFactor:   2,
		Weights:        DefaultWeights(),
	}
}

// Result is the outcome of one arrangement run: the complete reordered
// variant sequence and how many items landed in each bucket.
type Result struct {
	Ordered  []domain.ProductVariant
	Arranged int
	Basic    int
	Invalid  int
	Excluded int
}

// Engine arranges variants according to its options. The zero-cost way to
// get one is New(DefaultOptions()).
type Engine struct {
	opts Options
}

// New builds an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Order runs the full arrangement: partition the variants into eligible,
// deprioritized, invalid, and excluded buckets, allocate the eligible pool
// into rows, and append the tail buckets. The output always contains every
// input variant exactly once, with group keys untouched.
func (e *Engine) Order(variants []domain.ProductVariant, rs domain.RuleSet) Result {
	b := partition(variants, rs, e.opts.DeprioritizeInPool)

	arranged := arrange(b.eligible, rs.RowRules, b.lowPriority, e.opts)

	ordered := make([]domain.ProductVariant, 0, len(variants))
	ordered = append(ordered, arranged...)
	ordered = append(ordered, b.basic...)
	ordered = append(ordered, b.invalid...)
	ordered = append(ordered, b.excluded...)

	return Result{
		Ordered:  ordered,
		Arranged: len(arranged),
		Basic:    len(b.basic),
		Invalid:  len(b.invalid),
		Excluded: len(b.excluded),
	}
}
