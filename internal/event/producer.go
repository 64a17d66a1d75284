package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vidriera/showcase/internal/domain"
	pkgkafka "github.com/vidriera/showcase/pkg/kafka"
)

// Kafka topics for showcase domain events.
var (
	TopicArrangementPublished = pkgkafka.Topic("arrangement", "published")
	TopicFeedSynchronized     = pkgkafka.Topic("feed", "synchronized")
	TopicRuleSetCreated       = pkgkafka.Topic("ruleset", "created")
	TopicRuleSetUpdated       = pkgkafka.Topic("ruleset", "updated")
	TopicRuleSetDeleted       = pkgkafka.Topic("ruleset", "deleted")
)

// Aggregate type constants.
const (
	AggregateTypeArrangement = "arrangement"
	AggregateTypeFeed        = "feed"
	AggregateTypeRuleSet     = "ruleset"
)

// Source identifier for events originating from the showcase service.
const SourceShowcaseService = "showcase-service"

// ArrangementPublishedData is the payload for an arrangement.published event.
type ArrangementPublishedData struct {
	RunID     string `json:"run_id"`
	RuleSetID string `json:"ruleset_id,omitempty"`
	Total     int    `json:"total"`
	Arranged  int    `json:"arranged"`
	Basic     int    `json:"basic"`
	Invalid   int    `json:"invalid"`
	Excluded  int    `json:"excluded"`
}

// FeedSynchronizedData is the payload for a feed.synchronized event.
type FeedSynchronizedData struct {
	RunID          string `json:"run_id"`
	CatalogEntries int    `json:"catalog_entries"`
	InventoryRows  int    `json:"inventory_rows"`
	Variants       int    `json:"variants"`
}

// RuleSetData is the payload for ruleset lifecycle events.
type RuleSetData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RowRules int    `json:"row_rules"`
}

// Producer publishes showcase domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the showcase service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishArrangementPublished publishes an arrangement.published event.
func (p *Producer) PublishArrangementPublished(ctx context.Context, a *domain.Arrangement) error {
	data := ArrangementPublishedData{
		RunID:     a.RunID,
		RuleSetID: a.RuleSetID,
		Total:     len(a.Variants),
		Arranged:  a.Arranged,
		Basic:     a.Basic,
		Invalid:   a.Invalid,
		Excluded:  a.Excluded,
	}

	event, err := pkgkafka.NewEvent(TopicArrangementPublished, a.RunID, AggregateTypeArrangement, SourceShowcaseService, data)
	if err != nil {
		return fmt.Errorf("create arrangement.published event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicArrangementPublished, event); err != nil {
		return fmt.Errorf("publish arrangement.published event: %w", err)
	}

	p.logger.DebugContext(ctx, "published arrangement.published event",
		slog.String("run_id", a.RunID),
		slog.String("ruleset_id", a.RuleSetID),
		slog.Int("total", len(a.Variants)),
	)

	return nil
}

// PublishFeedSynchronized publishes a feed.synchronized event.
func (p *Producer) PublishFeedSynchronized(ctx context.Context, runID string, catalogEntries, inventoryRows, variants int) error {
	data := FeedSynchronizedData{
		RunID:          runID,
		CatalogEntries: catalogEntries,
		InventoryRows:  inventoryRows,
		Variants:       variants,
	}

	event, err := pkgkafka.NewEvent(TopicFeedSynchronized, runID, AggregateTypeFeed, SourceShowcaseService, data)
	if err != nil {
		return fmt.Errorf("create feed.synchronized event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicFeedSynchronized, event); err != nil {
		return fmt.Errorf("publish feed.synchronized event: %w", err)
	}

	p.logger.DebugContext(ctx, "published feed.synchronized event",
		slog.String("run_id", runID),
		slog.Int("variants", variants),
	)

	return nil
}

// PublishRuleSetCreated publishes a ruleset.created event.
func (p *Producer) PublishRuleSetCreated(ctx context.Context, rs *domain.RuleSet) error {
	return p.publishRuleSetEvent(ctx, TopicRuleSetCreated, rs)
}

// PublishRuleSetUpdated publishes a ruleset.updated event.
func (p *Producer) PublishRuleSetUpdated(ctx context.Context, rs *domain.RuleSet) error {
	return p.publishRuleSetEvent(ctx, TopicRuleSetUpdated, rs)
}

// PublishRuleSetDeleted publishes a ruleset.deleted event.
func (p *Producer) PublishRuleSetDeleted(ctx context.Context, rs *domain.RuleSet) error {
	return p.publishRuleSetEvent(ctx, TopicRuleSetDeleted, rs)
}

func (p *Producer) publishRuleSetEvent(ctx context.Context, topic string, rs *domain.RuleSet) error {
	data := RuleSetData{
		ID:       rs.ID,
		Name:     rs.Name,
		RowRules: len(rs.RowRules),
	}

	event, err := pkgkafka.NewEvent(topic, rs.ID, AggregateTypeRuleSet, SourceShowcaseService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published ruleset event",
		slog.String("topic", topic),
		slog.String("ruleset_id", rs.ID),
		slog.String("name", rs.Name),
	)

	return nil
}
