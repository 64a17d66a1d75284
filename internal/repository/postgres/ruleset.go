package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/repository"
	"github.com/vidriera/showcase/pkg/database"
	apperrors "github.com/vidriera/showcase/pkg/errors"
)

// RuleSetRepository implements repository.RuleSetRepository using PostgreSQL.
type RuleSetRepository struct {
	pool database.DBTX
}

// NewRuleSetRepository creates a new PostgreSQL-backed rule set repository.
func NewRuleSetRepository(pool database.DBTX) *RuleSetRepository {
	return &RuleSetRepository{pool: pool}
}

// Create inserts a new rule set into the database.
func (r *RuleSetRepository) Create(ctx context.Context, rs *domain.RuleSet) error {
	rowRulesJSON, err := json.Marshal(rs.RowRules)
	if err != nil {
		return fmt.Errorf("marshal row_rules: %w", err)
	}
	excludedJSON, err := json.Marshal(rs.ExcludedTypes)
	if err != nil {
		return fmt.Errorf("marshal excluded_types: %w", err)
	}
	lowPriorityJSON, err := json.Marshal(rs.LowPriorityKeywords)
	if err != nil {
		return fmt.Errorf("marshal low_priority_keywords: %w", err)
	}

	query := `
		INSERT INTO rule_sets (
			id, name, row_rules, excluded_types, low_priority_keywords,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.pool.Exec(ctx, query,
		rs.ID,
		rs.Name,
		rowRulesJSON,
		excludedJSON,
		lowPriorityJSON,
		rs.CreatedAt,
		rs.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("rule set", "name", rs.Name)
		}
		return fmt.Errorf("insert rule set: %w", err)
	}

	return nil
}

// GetByID retrieves a rule set by its ID.
func (r *RuleSetRepository) GetByID(ctx context.Context, id string) (*domain.RuleSet, error) {
	query := `
		SELECT id, name, row_rules, excluded_types, low_priority_keywords,
			   created_at, updated_at
		FROM rule_sets
		WHERE id = $1`

	return r.scanRuleSet(ctx, query, id)
}

// GetByName retrieves a rule set by its unique name.
func (r *RuleSetRepository) GetByName(ctx context.Context, name string) (*domain.RuleSet, error) {
	query := `
		SELECT id, name, row_rules, excluded_types, low_priority_keywords,
			   created_at, updated_at
		FROM rule_sets
		WHERE name = $1`

	return r.scanRuleSet(ctx, query, name)
}

// List returns rule sets with the total count, newest first.
func (r *RuleSetRepository) List(ctx context.Context, filter repository.RuleSetFilter) ([]domain.RuleSet, int, error) {
	query := `
		SELECT id, name, row_rules, excluded_types, low_priority_keywords,
			   created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM rule_sets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list rule sets: %w", err)
	}
	defer rows.Close()

	var (
		ruleSets   []domain.RuleSet
		totalCount int
	)

	for rows.Next() {
		var (
			rs              domain.RuleSet
			rowRulesJSON    []byte
			excludedJSON    []byte
			lowPriorityJSON []byte
		)

		if err := rows.Scan(
			&rs.ID,
			&rs.Name,
			&rowRulesJSON,
			&excludedJSON,
			&lowPriorityJSON,
			&rs.CreatedAt,
			&rs.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rule set row: %w", err)
		}

		if err := unmarshalRuleSetColumns(&rs, rowRulesJSON, excludedJSON, lowPriorityJSON); err != nil {
			return nil, 0, err
		}

		ruleSets = append(ruleSets, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rule set rows: %w", err)
	}

	if ruleSets == nil {
		ruleSets = []domain.RuleSet{}
	}

	return ruleSets, totalCount, nil
}

// Update modifies an existing rule set in the database.
func (r *RuleSetRepository) Update(ctx context.Context, rs *domain.RuleSet) error {
	rowRulesJSON, err := json.Marshal(rs.RowRules)
	if err != nil {
		return fmt.Errorf("marshal row_rules: %w", err)
	}
	excludedJSON, err := json.Marshal(rs.ExcludedTypes)
	if err != nil {
		return fmt.Errorf("marshal excluded_types: %w", err)
	}
	lowPriorityJSON, err := json.Marshal(rs.LowPriorityKeywords)
	if err != nil {
		return fmt.Errorf("marshal low_priority_keywords: %w", err)
	}

	rs.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE rule_sets
		SET name = $1, row_rules = $2, excluded_types = $3,
		    low_priority_keywords = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query,
		rs.Name,
		rowRulesJSON,
		excludedJSON,
		lowPriorityJSON,
		rs.UpdatedAt,
		rs.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("rule set", "name", rs.Name)
		}
		return fmt.Errorf("update rule set: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("rule set", rs.ID)
	}

	return nil
}

// Delete removes a rule set by its ID.
func (r *RuleSetRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM rule_sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rule set: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("rule set", id)
	}

	return nil
}

// scanRuleSet is a helper that executes a query expected to return a single rule set row.
func (r *RuleSetRepository) scanRuleSet(ctx context.Context, query string, args ...any) (*domain.RuleSet, error) {
	var (
		rs              domain.RuleSet
		rowRulesJSON    []byte
		excludedJSON    []byte
		lowPriorityJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rs.ID,
		&rs.Name,
		&rowRulesJSON,
		&excludedJSON,
		&lowPriorityJSON,
		&rs.CreatedAt,
		&rs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan rule set: %w", err)
	}

	if err := unmarshalRuleSetColumns(&rs, rowRulesJSON, excludedJSON, lowPriorityJSON); err != nil {
		return nil, err
	}

	return &rs, nil
}

func unmarshalRuleSetColumns(rs *domain.RuleSet, rowRulesJSON, excludedJSON, lowPriorityJSON []byte) error {
	if rowRulesJSON != nil {
		if err := json.Unmarshal(rowRulesJSON, &rs.RowRules); err != nil {
			return fmt.Errorf("unmarshal row_rules: %w", err)
		}
	}
	if rs.RowRules == nil {
		rs.RowRules = []domain.RowRule{}
	}

	if excludedJSON != nil {
		if err := json.Unmarshal(excludedJSON, &rs.ExcludedTypes); err != nil {
			return fmt.Errorf("unmarshal excluded_types: %w", err)
		}
	}
	if rs.ExcludedTypes == nil {
		rs.ExcludedTypes = []string{}
	}

	if lowPriorityJSON != nil {
		if err := json.Unmarshal(lowPriorityJSON, &rs.LowPriorityKeywords); err != nil {
			return fmt.Errorf("unmarshal low_priority_keywords: %w", err)
		}
	}
	if rs.LowPriorityKeywords == nil {
		rs.LowPriorityKeywords = []string{}
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
