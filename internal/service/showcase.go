package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/engine"
	"github.com/vidriera/showcase/internal/event"
	"github.com/vidriera/showcase/internal/feed"
	"github.com/vidriera/showcase/internal/repository"
	apperrors "github.com/vidriera/showcase/pkg/errors"
)

// ShowcaseService implements the business logic for rule set management and
// arrangement runs.
type ShowcaseService struct {
	ruleSets repository.RuleSetRepository
	cache    repository.ArrangementCache
	producer *event.Producer
	engine   *engine.Engine
	logger   *slog.Logger
}

// NewShowcaseService creates a new showcase service.
func NewShowcaseService(
	ruleSets repository.RuleSetRepository,
	cache repository.ArrangementCache,
	producer *event.Producer,
	eng *engine.Engine,
	logger *slog.Logger,
) *ShowcaseService {
	return &ShowcaseService{
		ruleSets: ruleSets,
		cache:    cache,
		producer: producer,
		engine:   eng,
		logger:   logger,
	}
}

// CreateRuleSetInput holds the parameters for creating a rule set.
type CreateRuleSetInput struct {
	Name                string
	RowRules            []domain.RowRule
	ExcludedTypes       []string
	LowPriorityKeywords []string
}

// UpdateRuleSetInput holds the parameters for updating a rule set. Nil
// fields are left unchanged.
type UpdateRuleSetInput struct {
	Name                *string
	RowRules            []domain.RowRule
	ExcludedTypes       []string
	LowPriorityKeywords []string
}

// BuildArrangementInput holds the feeds and targeting configuration for one
// arrangement run.
type BuildArrangementInput struct {
	// Catalog is the media feed XML.
	Catalog io.Reader
	// Inventory is the inventory export CSV.
	Inventory io.Reader
	// RuleSetID selects a stored rule set. Empty means RuleSet (or no
	// rules at all) applies.
	RuleSetID string
	// RuleSet is an optional inline rule set for ad hoc runs.
	RuleSet *domain.RuleSet
}

// CreateRuleSet creates a new rule set with the given input.
func (s *ShowcaseService) CreateRuleSet(ctx context.Context, input *CreateRuleSetInput) (*domain.RuleSet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.InvalidInput("rule set name is required")
	}
	if err := validateRowRules(input.RowRules); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rs := &domain.RuleSet{
		ID:                  uuid.New().String(),
		Name:                name,
		RowRules:            input.RowRules,
		ExcludedTypes:       input.ExcludedTypes,
		LowPriorityKeywords: input.LowPriorityKeywords,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if rs.RowRules == nil {
		rs.RowRules = []domain.RowRule{}
	}
	if rs.ExcludedTypes == nil {
		rs.ExcludedTypes = []string{}
	}
	if rs.LowPriorityKeywords == nil {
		rs.LowPriorityKeywords = []string{}
	}

	if err := s.ruleSets.Create(ctx, rs); err != nil {
		return nil, fmt.Errorf("create rule set: %w", err)
	}

	if err := s.producer.PublishRuleSetCreated(ctx, rs); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish ruleset.created event",
			slog.String("ruleset_id", rs.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "rule set created",
		slog.String("ruleset_id", rs.ID),
		slog.String("name", rs.Name),
	)

	return rs, nil
}

// GetRuleSet retrieves a rule set by its ID.
func (s *ShowcaseService) GetRuleSet(ctx context.Context, id string) (*domain.RuleSet, error) {
	rs, err := s.ruleSets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rule set by id: %w", err)
	}
	return rs, nil
}

// GetRuleSetByName retrieves a rule set by its unique name.
func (s *ShowcaseService) GetRuleSetByName(ctx context.Context, name string) (*domain.RuleSet, error) {
	rs, err := s.ruleSets.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("get rule set by name: %w", err)
	}
	return rs, nil
}

// ListRuleSets returns a paginated list of rule sets.
func (s *ShowcaseService) ListRuleSets(ctx context.Context, filter repository.RuleSetFilter) ([]domain.RuleSet, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	ruleSets, total, err := s.ruleSets.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list rule sets: %w", err)
	}

	return ruleSets, total, nil
}

// UpdateRuleSet applies partial updates to an existing rule set and
// invalidates its cached arrangement.
func (s *ShowcaseService) UpdateRuleSet(ctx context.Context, id string, input *UpdateRuleSetInput) (*domain.RuleSet, error) {
	rs, err := s.ruleSets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rule set for update: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.InvalidInput("rule set name must not be empty")
		}
		rs.Name = name
	}

	if input.RowRules != nil {
		if err := validateRowRules(input.RowRules); err != nil {
			return nil, err
		}
		rs.RowRules = input.RowRules
	}

	if input.ExcludedTypes != nil {
		rs.ExcludedTypes = input.ExcludedTypes
	}

	if input.LowPriorityKeywords != nil {
		rs.LowPriorityKeywords = input.LowPriorityKeywords
	}

	if err := s.ruleSets.Update(ctx, rs); err != nil {
		return nil, fmt.Errorf("update rule set: %w", err)
	}

	// A stale arrangement under the old rules must not survive the update.
	if err := s.cache.Invalidate(ctx, rs.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate cached arrangement",
			slog.String("ruleset_id", rs.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishRuleSetUpdated(ctx, rs); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish ruleset.updated event",
			slog.String("ruleset_id", rs.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "rule set updated",
		slog.String("ruleset_id", rs.ID),
		slog.String("name", rs.Name),
	)

	return rs, nil
}

// DeleteRuleSet removes a rule set and its cached arrangement.
func (s *ShowcaseService) DeleteRuleSet(ctx context.Context, id string) error {
	rs, err := s.ruleSets.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get rule set for delete: %w", err)
	}

	if err := s.ruleSets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rule set: %w", err)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate cached arrangement",
			slog.String("ruleset_id", id),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishRuleSetDeleted(ctx, rs); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish ruleset.deleted event",
			slog.String("ruleset_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "rule set deleted",
		slog.String("ruleset_id", id),
	)

	return nil
}

// BuildArrangement decodes both feeds, synchronizes them into product
// variants, runs the arrangement engine, caches the result as the latest
// arrangement for the rule set, and publishes the run.
func (s *ShowcaseService) BuildArrangement(ctx context.Context, input *BuildArrangementInput) (*domain.Arrangement, error) {
	if input.Catalog == nil {
		return nil, apperrors.InvalidInput("catalog feed is required")
	}
	if input.Inventory == nil {
		return nil, apperrors.InvalidInput("inventory feed is required")
	}
	if input.RuleSetID != "" && input.RuleSet != nil {
		return nil, apperrors.InvalidInput("provide either a rule set id or inline rules, not both")
	}

	rs := domain.RuleSet{}
	if input.RuleSetID != "" {
		stored, err := s.ruleSets.GetByID(ctx, input.RuleSetID)
		if err != nil {
			return nil, fmt.Errorf("get rule set for arrangement: %w", err)
		}
		rs = *stored
	} else if input.RuleSet != nil {
		if err := validateRowRules(input.RuleSet.RowRules); err != nil {
			return nil, err
		}
		rs = *input.RuleSet
		rs.ID = ""
	}

	runID := uuid.New().String()

	catalog := feed.DecodeCatalog(input.Catalog)
	inventory := feed.DecodeInventory(input.Inventory)
	variants := feed.Synchronize(catalog, inventory)

	if err := s.producer.PublishFeedSynchronized(ctx, runID, len(catalog), len(inventory), len(variants)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish feed.synchronized event",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}

	result := s.engine.Order(variants, rs)

	arrangement := &domain.Arrangement{
		RunID:     runID,
		RuleSetID: rs.ID,
		Variants:  result.Ordered,
		Arranged:  result.Arranged,
		Basic:     result.Basic,
		Invalid:   result.Invalid,
		Excluded:  result.Excluded,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.cache.SaveLatest(ctx, arrangement); err != nil {
		s.logger.ErrorContext(ctx, "failed to cache arrangement",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		// The arrangement is still returned to the caller.
	}

	if err := s.producer.PublishArrangementPublished(ctx, arrangement); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish arrangement.published event",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "arrangement built",
		slog.String("run_id", runID),
		slog.String("ruleset_id", rs.ID),
		slog.Int("variants", len(arrangement.Variants)),
		slog.Int("arranged", arrangement.Arranged),
		slog.Int("basic", arrangement.Basic),
		slog.Int("invalid", arrangement.Invalid),
		slog.Int("excluded", arrangement.Excluded),
	)

	return arrangement, nil
}

// LatestArrangement returns the most recently published arrangement for the
// given rule set. An empty id addresses the ad hoc slot.
func (s *ShowcaseService) LatestArrangement(ctx context.Context, rulesetID string) (*domain.Arrangement, error) {
	arrangement, err := s.cache.GetLatest(ctx, rulesetID)
	if err != nil {
		return nil, fmt.Errorf("get latest arrangement: %w", err)
	}
	return arrangement, nil
}

// validateRowRules rejects rules whose age or gender is outside the known
// taxonomy. Empty values are allowed and mean "no filter".
func validateRowRules(rules []domain.RowRule) error {
	for i, rule := range rules {
		if rule.Age != "" && !domain.IsValidAge(rule.Age) {
			return apperrors.InvalidInput(fmt.Sprintf("row rule %d: invalid age %q, must be one of: %s", i, rule.Age, strings.Join(domain.ValidAges(), ", ")))
		}
		if rule.Gender != "" && !domain.IsValidGender(rule.Gender) {
			return apperrors.InvalidInput(fmt.Sprintf("row rule %d: invalid gender %q, must be one of: %s", i, rule.Gender, strings.Join(domain.ValidGenders(), ", ")))
		}
	}
	return nil
}
