package pubsub

import (
	"context"
	"fmt"
	"sync"

	"oneflex/internal/config"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// NewPublisher creates a new PubSubPublisher using the GCP project from config.
// The client picks up PUBSUB_EMULATOR_HOST on its own.
func NewPublisher(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*PubSubPublisher, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("failed to create Pub/Sub client: GCP_PROJECT_ID is not set")
	}
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client, topics: make(map[string]*pubsub.Topic)}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	t := p.topicFor(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload, Attributes: attrs})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

// topicFor returns the cached handle for name. Each handle owns its own
// batching goroutines, so one is kept per topic until Close.
func (p *PubSubPublisher) topicFor(name string) *pubsub.Topic {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.topics[name]; ok {
		return t
	}
	t := p.client.Topic(name)
	p.topics[name] = t
	return t
}

// Close flushes and stops every cached topic, then closes the client.
func (p *PubSubPublisher) Close() error {
	p.mu.Lock()
	topics := p.topics
	p.topics = make(map[string]*pubsub.Topic)
	p.mu.Unlock()

	for _, t := range topics {
		t.Stop()
	}
	return p.client.Close()
}

// NoopPublisher drops every message. It is used when no topic is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	return "", nil
}
