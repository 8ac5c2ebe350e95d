package main

import (
	"context"
	"errors"
	"fmt"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/rs/zerolog"

	"github.com/imrishuroy/novamart/internal/aws"
	"github.com/imrishuroy/novamart/internal/events"
	"github.com/imrishuroy/novamart/internal/orders"
)

// Metric names published by the worker.
const (
	metricOrdersPlaced       = "OrdersPlaced"
	metricOrderRevenue       = "OrderRevenue"
	metricOrderStatusChanged = "OrderStatusChanged"
)

var errMissingSnapshot = errors.New("order.placed event without order snapshot")

// Processor archives order events from the queue and records metrics for them.
type Processor struct {
	archive *orders.Archive
	metrics *aws.Metrics
	log     zerolog.Logger
}

// NewProcessor creates a new worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, ordersTable, namespace string, log zerolog.Logger) *Processor {
	return &Processor{
		archive: orders.NewArchive(clients.DynamoDB, ordersTable),
		metrics: aws.NewMetrics(clients.CloudWatch, namespace),
		log:     log,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev lambdaevents.SQSEvent) error {
	p.log.Debug().Int("records", len(ev.Records)).Msg("received batch")
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			p.log.Error().Err(err).Str("message_id", rec.MessageId).Msg("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec lambdaevents.SQSMessage) error {
	ev, err := events.Decode(rec.Body)
	if err != nil {
		return err
	}

	log := p.log.With().
		Str("event_type", string(ev.Type)).
		Str("order_id", ev.OrderID).
		Str("session_id", ev.SessionID).
		Logger()

	switch ev.Type {
	case events.TypeOrderPlaced:
		return p.orderPlaced(ctx, ev, log)
	case events.TypeOrderStatusChanged:
		return p.statusChanged(ctx, ev, log)
	default:
		log.Warn().Msg("skipping unknown event type")
		return nil
	}
}

func (p *Processor) orderPlaced(ctx context.Context, ev events.OrderEvent, log zerolog.Logger) error {
	if ev.Order == nil {
		return fmt.Errorf("%w: %s", errMissingSnapshot, ev.OrderID)
	}
	if err := p.archive.Put(ctx, orders.NewArchivedOrder(ev.SessionID, *ev.Order)); err != nil {
		return fmt.Errorf("archive order %s: %w", ev.OrderID, err)
	}

	// metric failures are logged only; the archive write already succeeded
	if err := p.metrics.Put(ctx, metricOrdersPlaced, 1, cwtypes.StandardUnitCount, nil); err != nil {
		log.Warn().Err(err).Msg("metric failed")
	}
	revenue := ev.Order.Total.InexactFloat64()
	if err := p.metrics.Put(ctx, metricOrderRevenue, revenue, cwtypes.StandardUnitNone, nil); err != nil {
		log.Warn().Err(err).Msg("metric failed")
	}

	log.Info().Str("total", ev.Total).Msg("order archived")
	return nil
}

func (p *Processor) statusChanged(ctx context.Context, ev events.OrderEvent, log zerolog.Logger) error {
	status, err := orders.ParseStatus(ev.Status)
	if err != nil {
		return err
	}
	// ErrNotArchived is retried: the placed event may not have been processed yet.
	applied, err := p.archive.UpdateStatus(ctx, ev.OrderID, status, ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("update archived status: %w", err)
	}
	if !applied {
		log.Info().Str("status", string(status)).Time("occurred_at", ev.OccurredAt).Msg("stale status event skipped")
		return nil
	}

	dims := map[string]string{"Status": string(status)}
	if err := p.metrics.Put(ctx, metricOrderStatusChanged, 1, cwtypes.StandardUnitCount, dims); err != nil {
		log.Warn().Err(err).Msg("metric failed")
	}

	log.Info().Str("status", string(status)).Msg("archived status updated")
	return nil
}
