package events

import (
	"context"
	"fmt"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/kafka"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/cache"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Reservation consumes the reservation topic. Every API instance invalidates
// its own writes asynchronously; the consumer repeats that for writes whose
// process died before the invalidation ran, and keeps an audit trail.
type Reservation struct {
	cache cache.RedisCache
	otel  otel.Otel
}

func NewReservation(cache cache.RedisCache, otel otel.Otel) Reservation {
	return Reservation{
		cache: cache,
		otel:  otel,
	}
}

func (handler *Reservation) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Reservation")
	defer scope.End()
	defer scope.TraceIfError(&err)

	evt, err := kafka.Decode[model.Event](msg)
	if err != nil {
		return fmt.Errorf("failed to decode reservation event: %w", err)
	}

	if evt.StoreID == "" {
		return fmt.Errorf("reservation event %q has no store id", evt.Type)
	}

	scope.SetAttributes(map[string]any{
		"event.type":     evt.Type,
		"reservation.id": evt.ReservationID,
		"store.id":       evt.StoreID,
	})

	for _, prefix := range service.CachePrefixes(evt.StoreID) {
		shared.InvalidateCaches(ctx, handler.cache, prefix)
	}

	log.Info().
		Str("type", evt.Type).
		Str("reservationID", evt.ReservationID).
		Str("storeID", evt.StoreID).
		Str("date", evt.Date).
		Str("status", evt.Status).
		Str("actor", evt.Actor).
		Time("occurredAt", evt.OccurredAt).
		Msg("reservation event")

	return nil
}
