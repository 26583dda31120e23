package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
	"github.com/ledgermart/ledgermart/internal/repository"
)

const (
	eventsExchange = "market.events"
	archiveQueue   = "market.events.archive"
	dlxExchange    = "market.events.dlx"
	dlqQueueName   = "market.events.dlq"
)

// EventWorker drains the ledger's event feed: every event is journaled to
// Postgres, order events update the archive, notifications fan out over
// RabbitMQ, and affected cache entries are invalidated. Each sink is
// optional so partial deployments keep working.
type EventWorker struct {
	events      <-chan ledger.Event
	repo        repository.ArchiveRepository
	channel     *amqp.Channel
	redisClient *redis.Client
	log         *slog.Logger
	done        chan struct{}
}

func NewEventWorker(
	events <-chan ledger.Event,
	repo repository.ArchiveRepository,
	ch *amqp.Channel,
	redisClient *redis.Client,
	log *slog.Logger,
) *EventWorker {
	return &EventWorker{
		events:      events,
		repo:        repo,
		channel:     ch,
		redisClient: redisClient,
		log:         log,
		done:        make(chan struct{}),
	}
}

// SetupRabbitMQ declares the notification exchange and a durable archive
// queue with DLX/DLQ for downstream consumers.
func SetupRabbitMQ(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(eventsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare events exchange: %w", err)
	}
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, archiveQueue, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(archiveQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": archiveQueue,
	}); err != nil {
		return fmt.Errorf("declare archive queue: %w", err)
	}
	if err := ch.QueueBind(archiveQueue, "#", eventsExchange, false, nil); err != nil {
		return fmt.Errorf("bind archive queue: %w", err)
	}
	return nil
}

func (w *EventWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case ev, ok := <-w.events:
				if !ok {
					return
				}
				w.processEvent(ctx, ev)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	w.log.Info("event worker started")
}

func (w *EventWorker) Stop() { close(w.done) }

func (w *EventWorker) processEvent(ctx context.Context, ev ledger.Event) {
	log := w.log.With("kind", ev.Kind, "actor", ev.Actor.Short())

	if w.repo != nil {
		rec := &repository.EventRecord{
			Kind:    ev.Kind,
			Actor:   ev.Actor.String(),
			Payload: ev.Data,
		}
		if err := w.repo.InsertEvent(ctx, rec); err != nil {
			log.Error("journal event", "error", err)
		}
		w.archiveOrder(ctx, ev, log)
	}

	if w.channel != nil {
		body, err := json.Marshal(map[string]any{
			"kind":  ev.Kind,
			"actor": ev.Actor.String(),
			"data":  ev.Data,
		})
		if err == nil {
			err = w.channel.PublishWithContext(ctx, eventsExchange, ev.Kind, false, false, amqp.Publishing{
				ContentType:  "application/json",
				Body:         body,
				DeliveryMode: amqp.Persistent,
			})
		}
		if err != nil {
			log.Error("publish event", "error", err)
		}
	}

	w.invalidateCaches(ctx, ev)
}

// archiveOrder mirrors order lifecycle events into the queryable archive.
func (w *EventWorker) archiveOrder(ctx context.Context, ev ledger.Event, log *slog.Logger) {
	var status string
	switch ev.Kind {
	case market.EventOrderCreated:
		status = "created"
	case market.EventOrderCompleted:
		status = "completed"
	case market.EventOrderRefunded:
		status = "refunded"
	default:
		return
	}

	rec := &repository.OrderRecord{
		Address: ev.Actor.String(),
		Shop:    stringField(ev.Data, "shop"),
		Buyer:   stringField(ev.Data, "buyer"),
		Item:    stringField(ev.Data, "item"),
		OrderID: uintField(ev.Data, "id"),
		Status:  status,
	}
	if price, ok := ev.Data["price"].(uint64); ok {
		rec.PriceNano = price
	}
	if err := w.repo.UpsertOrder(ctx, rec); err != nil {
		log.Error("archive order", "error", err)
	}
}

// invalidateCaches drops the read-query cache entries an event made stale.
func (w *EventWorker) invalidateCaches(ctx context.Context, ev ledger.Event) {
	if w.redisClient == nil {
		return
	}
	switch ev.Kind {
	case market.EventItemTransferred:
		w.redisClient.Del(ctx, "item:"+ev.Actor.String())
	case market.EventItemListed:
		w.redisClient.Del(ctx, "item:"+ev.Actor.String())
		if shop := stringField(ev.Data, "shop"); shop != "" {
			w.redisClient.Del(ctx, "shop:"+shop)
		}
	case market.EventOrderCreated, market.EventOrderCompleted, market.EventOrderRefunded:
		if shop := stringField(ev.Data, "shop"); shop != "" {
			w.redisClient.Del(ctx, "shop:"+shop)
		}
	case market.EventShopCreated:
		w.redisClient.Del(ctx, "shop:"+ev.Actor.String())
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func uintField(data map[string]any, key string) uint64 {
	v, _ := data[key].(uint64)
	return v
}
