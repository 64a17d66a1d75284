package domain

import (
	"strings"
	"time"
)

// SlotsPerRow is the fixed grid width.
const SlotsPerRow = 4

// RowRule is one configured targeting spec, consumed round-robin to generate
// successive rows. Age and Gender are optional; GarmentTypes requests one
// garment type per slot, left to right, and may be shorter than a full row.
type RowRule struct {
	Age          string   `json:"age,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	GarmentTypes []string `json:"garment_types,omitempty"`
}

// RequestedTypes returns the non-blank garment types of the rule.
func (r RowRule) RequestedTypes() []string {
	types := make([]string, 0, len(r.GarmentTypes))
	for _, t := range r.GarmentTypes {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			types = append(types, trimmed)
		}
	}
	return types
}

// RuleSet is the persistent configuration surface consumed by the engine:
// an ordered list of row rules, a set of excluded garment types, and a set
// of keywords/codes that deprioritize matching variants.
type RuleSet struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	RowRules            []RowRule `json:"row_rules"`
	ExcludedTypes       []string  `json:"excluded_types"`
	LowPriorityKeywords []string  `json:"low_priority_keywords"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Arrangement is the published result of one engine run: the full ordered
// variant sequence plus per-bucket counts.
type Arrangement struct {
	RunID     string           `json:"run_id"`
	RuleSetID string           `json:"ruleset_id,omitempty"`
	Variants  []ProductVariant `json:"variants"`
	Arranged  int              `json:"arranged"`
	Basic     int              `json:"basic"`
	Invalid   int              `json:"invalid"`
	Excluded  int              `json:"excluded"`
	CreatedAt time.Time        `json:"created_at"`
}
