package repository

import (
	"context"

	"github.com/vidriera/showcase/internal/domain"
)

// RuleSetFilter defines filter criteria for listing rule sets.
type RuleSetFilter struct {
	Page    int
	PerPage int
}

// RuleSetRepository defines the interface for rule set persistence operations.
type RuleSetRepository interface {
	// Create inserts a new rule set into the store.
	Create(ctx context.Context, rs *domain.RuleSet) error

	// GetByID retrieves a rule set by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.RuleSet, error)

	// GetByName retrieves a rule set by its unique name.
	GetByName(ctx context.Context, name string) (*domain.RuleSet, error)

	// List returns rule sets matching the given filter along with the total count.
	List(ctx context.Context, filter RuleSetFilter) ([]domain.RuleSet, int, error)

	// Update modifies an existing rule set in the store.
	Update(ctx context.Context, rs *domain.RuleSet) error

	// Delete removes a rule set by its ID.
	Delete(ctx context.Context, id string) error
}

// ArrangementCache stores the most recently published arrangement per rule
// set so the storefront can re-read an ordering without re-running the
// engine.
type ArrangementCache interface {
	// SaveLatest stores the arrangement as the latest for its rule set.
	SaveLatest(ctx context.Context, a *domain.Arrangement) error

	// GetLatest retrieves the latest arrangement for the given rule set.
	GetLatest(ctx context.Context, rulesetID string) (*domain.Arrangement, error)

	// Invalidate drops the cached arrangement for the given rule set.
	Invalidate(ctx context.Context, rulesetID string) error
}
