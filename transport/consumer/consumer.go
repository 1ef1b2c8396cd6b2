package consumer

import (
	"context"
	"fmt"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/kafka"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/events"

	"github.com/rs/zerolog/log"
)

// Consumer runs the event handlers against their topics.
type Consumer struct {
	Config      *config.Config
	Client      kafka.Client
	Reservation events.Reservation
}

func New(cfg *config.Config, client kafka.Client, reservation events.Reservation) *Consumer {
	return &Consumer{
		Config:      cfg,
		Client:      client,
		Reservation: reservation,
	}
}

// Run blocks until ctx is cancelled or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.Client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client.")
		}
	}()

	topic := c.Config.Kafka.Topics.Reservation

	if err := c.Client.Consume(ctx, c.Config.Kafka.ConsumerGroup, topic, c.Reservation.Handle); err != nil {
		return fmt.Errorf("failed to consume %s: %w", topic, err)
	}

	return nil
}
