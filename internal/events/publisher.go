// Package events publishes domain events over watermill, to Kafka when
// brokers are configured and an in-process pub/sub otherwise.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const eventSource = "learning-platform"

// Event topics.
const (
	TopicUserRegistered = "user.registered"
	TopicCourseCreated  = "course.created"
	TopicCourseEnrolled = "course.enrolled"
)

// Event is the envelope every published message carries.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
	Close() error
}

type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewGoChannelPublisher builds an in-process publisher, the default when no
// Kafka brokers are configured.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &watermillPublisher{publisher: pubsub, logger: logger}
}

// NewKafkaPublisher builds a Kafka-backed publisher.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return &watermillPublisher{publisher: publisher, logger: logger}, nil
}

func (p *watermillPublisher) Publish(_ context.Context, eventType string, data any) error {
	event := Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    eventSource,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", eventType)
	msg.Metadata.Set("source", eventSource)

	if err := p.publisher.Publish(eventType, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher records events in memory for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(_ context.Context, eventType string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    eventSource,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	m.logger.Debug("mock event published", "type", eventType)
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
