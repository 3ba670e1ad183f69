package repository

import (
	"context"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/internal/domain/repository"
	pkgkafka "DugoutEdge/pkg/kafka"
)

// KafkaAlerts implements AlertPublisher for Kafka. Messages are keyed by
// player name so reruns of the same slate compact per player.
type KafkaAlerts struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlerts creates a Kafka alert publisher.
func NewKafkaAlerts(producer *pkgkafka.Producer, topic string) repository.AlertPublisher {
	return &KafkaAlerts{producer: producer, topic: topic}
}

func (p *KafkaAlerts) PublishAlert(ctx context.Context, c models.RankedCandidate) error {
	return p.producer.Publish(ctx, p.topic, []byte(c.Player.Name), map[string]interface{}{
		"player":    c.Player.Name,
		"team":      c.Player.Team,
		"slot":      c.Player.Position,
		"pitcher":   c.Pitcher.Name,
		"matchup":   c.Matchup.Key,
		"tier":      string(c.Tier),
		"rank":      c.Rank,
		"composite": c.Scores.Composite,
	})
}

// PublishMessage sends an arbitrary payload to a topic. This satisfies the
// logger.Publisher interface so aggregated error logs can ride the same
// broker.
func (p *KafkaAlerts) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaAlerts) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
