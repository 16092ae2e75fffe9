// Package redis publishes audit events over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/interfaces"
)

// Publisher sends JSON-encoded audit events to Redis channels. Each topic
// maps to its own channel under the configured prefix.
type Publisher struct {
	client *redis.Client
	prefix string
}

var _ interfaces.EventPublisher = (*Publisher)(nil)

// NewPublisher connects a publisher to the Redis instance at addr. prefix
// namespaces the channels; empty means the topic is used as-is.
func NewPublisher(addr, password, prefix string) *Publisher {
	return &Publisher{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
	}
}

// Publish marshals event to JSON and publishes it on the topic's channel.
func (p *Publisher) Publish(topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	channel := topic
	if p.prefix != "" {
		channel = fmt.Sprintf("%s.%s", p.prefix, topic)
	}
	return p.client.Publish(context.Background(), channel, data).Err()
}

// Close releases the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
