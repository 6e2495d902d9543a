package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studysphere/backend/internal/domain"
	pkgkafka "github.com/studysphere/backend/pkg/kafka"
	"github.com/studysphere/backend/pkg/logger"
)

// Kafka topic constants for account and group domain events.
const (
	TopicUserRegistered = "studysphere.user.registered"
	TopicGroupCreated   = "studysphere.group.created"
	TopicGroupDeleted   = "studysphere.group.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeUser  = "user"
	AggregateTypeGroup = "group"
)

// Source identifier for events originating from this backend.
const SourceBackend = "studysphere-backend"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// GroupCreatedData is the payload for a group.created event.
type GroupCreatedData struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// GroupDeletedData is the payload for a group.deleted event.
type GroupDeletedData struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// publish wraps data in the standard envelope, stamps the request's
// correlation ID when one is present, and sends it to topic.
func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
	return p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data)
}

// PublishGroupCreated publishes a group.created event.
func (p *Producer) PublishGroupCreated(ctx context.Context, group *domain.Group) error {
	data := GroupCreatedData{
		ID:      group.ID,
		OwnerID: group.OwnerID,
		Name:    group.Name,
	}
	return p.publish(ctx, TopicGroupCreated, group.ID, AggregateTypeGroup, data)
}

// PublishGroupDeleted publishes a group.deleted event.
func (p *Producer) PublishGroupDeleted(ctx context.Context, group *domain.Group) error {
	data := GroupDeletedData{
		ID:      group.ID,
		OwnerID: group.OwnerID,
		Name:    group.Name,
	}
	return p.publish(ctx, TopicGroupDeleted, group.ID, AggregateTypeGroup, data)
}
