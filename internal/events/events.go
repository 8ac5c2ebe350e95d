// Package events defines the order events sent from the API to the worker queue.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imrishuroy/novamart/internal/orders"
)

// Type names an order event.
type Type string

const (
	TypeOrderPlaced        Type = "order.placed"
	TypeOrderStatusChanged Type = "order.status_changed"
)

// OrderEvent is the payload sent from API -> SQS -> Worker.
type OrderEvent struct {
	Type       Type          `json:"type"`
	OrderID    string        `json:"order_id"`
	SessionID  string        `json:"session_id"`
	Status     string        `json:"status"`
	Total      string        `json:"total"`
	Order      *orders.Order `json:"order,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewOrderPlaced builds the event for a freshly checked-out order, carrying the full snapshot.
func NewOrderPlaced(sessionID string, o orders.Order) OrderEvent {
	snap := o.Clone()
	return OrderEvent{
		Type:       TypeOrderPlaced,
		OrderID:    o.ID,
		SessionID:  sessionID,
		Status:     string(o.Status),
		Total:      o.Total.StringFixed(2),
		Order:      &snap,
		OccurredAt: time.Now().UTC(),
	}
}

// NewStatusChanged builds the event for an admin status update committed at at.
// The worker orders status events by OccurredAt.
func NewStatusChanged(sessionID string, o orders.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       TypeOrderStatusChanged,
		OrderID:    o.ID,
		SessionID:  sessionID,
		Status:     string(o.Status),
		Total:      o.Total.StringFixed(2),
		OccurredAt: at.UTC(),
	}
}

// Decode parses a message body into an OrderEvent.
func Decode(body string) (OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal([]byte(body), &ev); err != nil {
		return ev, fmt.Errorf("invalid event body: %w", err)
	}
	if ev.OrderID == "" {
		return ev, fmt.Errorf("invalid event body: missing order_id")
	}
	return ev, nil
}

// Sender delivers a message body with string attributes. *aws.Publisher satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, messageBody string, attributes map[string]string) error
}

// QueueSink forwards session order events to a queue.
type QueueSink struct {
	sender Sender
}

// NewQueueSink returns a sink publishing through sender.
func NewQueueSink(sender Sender) *QueueSink {
	return &QueueSink{sender: sender}
}

// OrderPlaced publishes an order.placed event.
func (s *QueueSink) OrderPlaced(ctx context.Context, sessionID string, o orders.Order) error {
	return s.publish(ctx, NewOrderPlaced(sessionID, o))
}

// OrderStatusChanged publishes an order.status_changed event.
func (s *QueueSink) OrderStatusChanged(ctx context.Context, sessionID string, o orders.Order, at time.Time) error {
	return s.publish(ctx, NewStatusChanged(sessionID, o, at))
}

func (s *QueueSink) publish(ctx context.Context, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	attrs := map[string]string{
		"event_type": string(ev.Type),
		"order_id":   ev.OrderID,
		"session_id": ev.SessionID,
	}
	if err := s.sender.SendMessage(ctx, string(body), attrs); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}
